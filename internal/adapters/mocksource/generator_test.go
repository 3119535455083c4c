package mocksource

import (
	"context"
	"errors"
	"testing"
	"time"

	"tradeDashboard/internal/domain"
	"tradeDashboard/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

var fixedNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func newTestSource(t *testing.T, cfg Config) *Source {
	t.Helper()
	cfg.Logger = &mockLogger{}
	cfg.Now = func() time.Time { return fixedNow }
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err, "logger required")

	_, err = New(Config{Logger: &mockLogger{}, TradeCount: -1})
	assert.True(t, errors.Is(err, ports.ErrConfigurationError))

	s := newTestSource(t, Config{})
	assert.Equal(t, int64(DefaultSeed), s.seed)
	assert.Equal(t, DefaultTradeCount, s.count)
	assert.Equal(t, DefaultHistoryDays, s.historyDays)
	assert.Equal(t, "mock", s.Name())
}

func TestSineRand(t *testing.T) {
	a, b := newSineRand(7), newSineRand(7)
	for i := 0; i < 100; i++ {
		v := a.Float()
		assert.Equal(t, v, b.Float())
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
	r := newSineRand(1)
	for i := 0; i < 100; i++ {
		v := r.Range(5, 6)
		assert.GreaterOrEqual(t, v, 5.0)
		assert.Less(t, v, 6.0)
	}
}

func TestTrades_Deterministic(t *testing.T) {
	s := newTestSource(t, Config{})
	first := s.Trades()
	second := s.Trades()
	require.Len(t, first, DefaultTradeCount)
	assert.Equal(t, first, second)

	other := newTestSource(t, Config{Seed: 999}).Trades()
	assert.NotEqual(t, first[0].ID, other[0].ID)
}

func TestTrades_Shape(t *testing.T) {
	s := newTestSource(t, Config{TradeCount: 300})
	trades := s.Trades()
	require.Len(t, trades, 300)

	start := fixedNow.Add(-DefaultHistoryDays * 24 * time.Hour).UnixMilli()
	ids := make(map[string]bool)
	for i, tr := range trades {
		assert.False(t, ids[tr.ID], "duplicate id %s", tr.ID)
		ids[tr.ID] = true

		if i > 0 {
			assert.LessOrEqual(t, tr.Timestamp, trades[i-1].Timestamp, "newest first")
		}
		assert.GreaterOrEqual(t, tr.Timestamp, start)
		assert.LessOrEqual(t, tr.Timestamp, fixedNow.UnixMilli())
		assert.Contains(t, symbols, tr.Symbol)
		assert.InDelta(t, tr.Size*tr.EntryPrice*takerFeeRate, tr.Fee, 1e-9)
		require.NotNil(t, tr.FeeType)

		if tr.Market == domain.MarketPerp {
			require.NotNil(t, tr.Leverage)
			assert.GreaterOrEqual(t, *tr.Leverage, 1)
			assert.LessOrEqual(t, *tr.Leverage, 19)
		} else {
			assert.Nil(t, tr.Leverage)
		}

		if tr.Status == domain.StatusClosed {
			require.NotNil(t, tr.PnL)
			require.NotNil(t, tr.ExitPrice)
			require.NotNil(t, tr.Duration)
			assert.GreaterOrEqual(t, *tr.Duration, int64(60_000))
			assert.Less(t, *tr.Duration, int64(86_400_000))

			lev := 1.0
			if tr.Leverage != nil {
				lev = float64(*tr.Leverage)
			}
			diff := (*tr.ExitPrice - tr.EntryPrice) * tr.Size * lev
			if tr.Side == domain.SideShort {
				diff = -diff
			}
			assert.InDelta(t, diff, *tr.PnL, 1e-6)
		} else {
			assert.Nil(t, tr.PnL)
			assert.Nil(t, tr.ExitPrice)
			assert.Nil(t, tr.Duration)
		}
	}
}

func TestFetchTrades_Since(t *testing.T) {
	s := newTestSource(t, Config{})
	ctx := context.Background()

	all, err := s.FetchTrades(ctx, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, DefaultTradeCount)

	since := fixedNow.Add(-7 * 24 * time.Hour)
	recent, err := s.FetchTrades(ctx, since)
	require.NoError(t, err)
	assert.Less(t, len(recent), len(all))
	for _, tr := range recent {
		assert.GreaterOrEqual(t, tr.Timestamp, since.UnixMilli())
	}
}

func TestFetch_Canceled(t *testing.T) {
	s := newTestSource(t, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FetchTrades(ctx, time.Time{})
	assert.True(t, errors.Is(err, ports.ErrContextCanceled))
	_, err = s.FetchPositions(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPositions(t *testing.T) {
	s := newTestSource(t, Config{})
	positions, err := s.FetchPositions(context.Background())
	require.NoError(t, err)
	assert.LessOrEqual(t, len(positions), len(perpSymbols))
	assert.Equal(t, positions, s.Positions())

	for _, p := range positions {
		assert.Equal(t, domain.MarketPerp, p.Market)
		require.NotNil(t, p.Leverage)
		lev := float64(*p.Leverage)
		assert.GreaterOrEqual(t, lev, 2.0)
		assert.LessOrEqual(t, lev, 9.0)
		assert.InDelta(t, p.Size*p.EntryPrice/lev, *p.Margin, 1e-9)
		if p.Side == domain.SideLong {
			assert.Less(t, *p.LiquidationPrice, p.EntryPrice)
		} else {
			assert.Greater(t, *p.LiquidationPrice, p.EntryPrice)
		}
		diff := (p.CurrentPrice - p.EntryPrice) * p.Size * lev
		if p.Side == domain.SideShort {
			diff = -diff
		}
		assert.InDelta(t, diff, p.UnrealizedPnL, 1e-6)
	}
}

func TestJournalEntries(t *testing.T) {
	s := newTestSource(t, Config{})
	trades := s.Trades()
	entries := s.JournalEntries(trades)
	require.NotEmpty(t, entries)
	assert.LessOrEqual(t, len(entries), maxJournalSamples)
	assert.Equal(t, entries, s.JournalEntries(trades))

	byID := make(map[string]domain.Trade, len(trades))
	for _, tr := range trades {
		byID[tr.ID] = tr
	}
	for i, e := range entries {
		tr, ok := byID[e.TradeID]
		require.True(t, ok)
		assert.Equal(t, domain.StatusClosed, tr.Status)
		assert.True(t, e.Sentiment.Valid())
		assert.GreaterOrEqual(t, e.Rating, 1)
		assert.LessOrEqual(t, e.Rating, 5)
		assert.NotEmpty(t, e.Tags)
		assert.Contains(t, journalStrategies, e.Strategy)
		assert.Equal(t, tr.PnLOrZero() < 0, len(e.Mistakes) == 1)
		if tr.PnLOrZero() < 0 {
			assert.Equal(t, domain.SentimentBearish, e.Sentiment)
		}
		if i > 0 {
			assert.LessOrEqual(t, e.Date, entries[i-1].Date)
		}
	}
}
