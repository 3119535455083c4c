package analytics

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"tradeDashboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func at(offset time.Duration) int64 {
	return baseTime.Add(offset).UnixMilli()
}

func closedTrade(id string, ts int64, side domain.TradeSide, pnl float64) domain.Trade {
	return domain.Trade{
		ID:         id,
		Timestamp:  ts,
		Market:     domain.MarketPerp,
		Symbol:     "SOL-PERP",
		Side:       side,
		OrderType:  domain.OrderLimit,
		Size:       1,
		EntryPrice: 100,
		ExitPrice:  domain.Float(101),
		PnL:        domain.Float(pnl),
		Status:     domain.StatusClosed,
	}
}

func openTrade(id string, ts int64) domain.Trade {
	return domain.Trade{
		ID:         id,
		Timestamp:  ts,
		Market:     domain.MarketPerp,
		Symbol:     "SOL-PERP",
		Side:       domain.SideLong,
		OrderType:  domain.OrderMarket,
		Size:       2,
		EntryPrice: 100,
		Fee:        1,
		Status:     domain.StatusOpen,
	}
}

func TestComputeAnalytics_Empty(t *testing.T) {
	s := ComputeAnalytics(nil)
	assert.Equal(t, Snapshot{}, s)
	assert.Equal(t, 0, s.TotalTrades)
	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.ProfitFactor)
	assert.False(t, math.IsNaN(s.Expectancy))
}

func TestComputeAnalytics_Example(t *testing.T) {
	trades := []domain.Trade{
		closedTrade("a", at(0), domain.SideLong, 100),
		closedTrade("b", at(time.Hour), domain.SideShort, -50),
		closedTrade("c", at(2*time.Hour), domain.SideLong, 200),
	}

	s := ComputeAnalytics(trades)

	assert.Equal(t, 250.0, s.TotalPnL)
	assert.InDelta(t, 66.6667, s.WinRate, 0.001)
	assert.Equal(t, 300.0, s.GrossProfit)
	assert.Equal(t, 50.0, s.GrossLoss)
	assert.Equal(t, 6.0, s.ProfitFactor)
	assert.Equal(t, 150.0, s.AvgWin)
	assert.Equal(t, 50.0, s.AvgLoss)
	assert.Equal(t, 200.0, s.LargestWin)
	assert.Equal(t, -50.0, s.LargestLoss)
	assert.InDelta(t, 83.3333, s.Expectancy, 0.001)
	assert.Equal(t, 3, s.ClosedTrades)
	assert.Equal(t, 0, s.OpenTrades)
	assert.Equal(t, 2, s.LongTrades)
	assert.Equal(t, 1, s.ShortTrades)
	assert.Equal(t, 300.0, s.LongPnL)
	assert.Equal(t, -50.0, s.ShortPnL)
	assert.Equal(t, 100.0, s.LongWinRate)
	assert.Equal(t, 0.0, s.ShortWinRate)
	assert.Equal(t, 2.0, s.LongShortRatio)
}

func TestComputeAnalytics_ProfitFactorEdges(t *testing.T) {
	tests := []struct {
		name   string
		pnls   []float64
		expect func(t *testing.T, pf float64)
	}{
		{
			name: "wins without losses is infinite",
			pnls: []float64{10, 20},
			expect: func(t *testing.T, pf float64) {
				assert.True(t, math.IsInf(pf, 1))
				assert.Equal(t, "∞", FormatRatio(pf))
			},
		},
		{
			name: "only breakeven trades is zero",
			pnls: []float64{0, 0},
			expect: func(t *testing.T, pf float64) {
				assert.Equal(t, 0.0, pf)
			},
		},
		{
			name: "only losses is zero",
			pnls: []float64{-5},
			expect: func(t *testing.T, pf float64) {
				assert.Equal(t, 0.0, pf)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var trades []domain.Trade
			for i, p := range tt.pnls {
				trades = append(trades, closedTrade(string(rune('a'+i)), at(time.Duration(i)*time.Minute), domain.SideLong, p))
			}
			tt.expect(t, ComputeAnalytics(trades).ProfitFactor)
		})
	}
}

func TestComputeAnalytics_BreakevenCountsAsClosedOnly(t *testing.T) {
	s := ComputeAnalytics([]domain.Trade{
		closedTrade("a", at(0), domain.SideLong, 0),
		closedTrade("b", at(time.Minute), domain.SideLong, 10),
	})
	assert.Equal(t, 2, s.ClosedTrades)
	assert.Equal(t, 50.0, s.WinRate)
	assert.Equal(t, 0.0, s.LargestLoss)
	assert.Equal(t, 0.0, s.AvgLoss)
}

func TestComputeAnalytics_OpenAndMalformedTrades(t *testing.T) {
	malformed := closedTrade("m", at(time.Minute), domain.SideShort, 0)
	malformed.PnL = nil

	trades := []domain.Trade{
		openTrade("o", at(0)),
		malformed,
		closedTrade("c", at(2*time.Minute), domain.SideLong, 40),
	}
	s := ComputeAnalytics(trades)

	assert.Equal(t, 3, s.TotalTrades)
	assert.Equal(t, 1, s.ClosedTrades)
	assert.Equal(t, 1, s.OpenTrades)
	assert.Equal(t, 400.0, s.TotalVolume) // 2*100 + 1*100 + 1*100
	assert.Equal(t, 1.0, s.TotalFees)
	assert.Equal(t, 0, s.ShortTrades)
	// No shorts: ratio falls back to the raw long count.
	assert.Equal(t, 1.0, s.LongShortRatio)
}

func TestComputeAnalytics_AvgDurationSkipsUndefined(t *testing.T) {
	a := closedTrade("a", at(0), domain.SideLong, 5)
	a.Duration = domain.Int64(60_000)
	b := closedTrade("b", at(time.Minute), domain.SideLong, 5)
	c := closedTrade("c", at(2*time.Minute), domain.SideLong, 5)
	c.Duration = domain.Int64(120_000)

	s := ComputeAnalytics([]domain.Trade{a, b, c})
	assert.Equal(t, 90_000.0, s.AvgDuration)
}

func TestComputeAnalytics_OrderIndependent(t *testing.T) {
	trades := []domain.Trade{
		closedTrade("a", at(0), domain.SideLong, 100),
		closedTrade("b", at(time.Hour), domain.SideShort, -25),
		openTrade("c", at(2*time.Hour)),
		closedTrade("d", at(3*time.Hour), domain.SideShort, 75),
	}
	reversed := make([]domain.Trade, len(trades))
	for i := range trades {
		reversed[i] = trades[len(trades)-1-i]
	}
	assert.Equal(t, ComputeAnalytics(trades), ComputeAnalytics(reversed))
}

func TestComputeAnalytics_WinRateBounds(t *testing.T) {
	for n := 0; n < 20; n++ {
		var trades []domain.Trade
		for i := 0; i < n; i++ {
			pnl := float64(i%3) - 1
			trades = append(trades, closedTrade("t", at(time.Duration(i)*time.Minute), domain.SideLong, pnl))
		}
		wr := ComputeAnalytics(trades).WinRate
		assert.GreaterOrEqual(t, wr, 0.0)
		assert.LessOrEqual(t, wr, 100.0)
	}
}

func TestSnapshot_MarshalJSON(t *testing.T) {
	s := ComputeAnalytics([]domain.Trade{closedTrade("a", at(0), domain.SideLong, 10)})

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "∞", decoded["profitFactor"])
	assert.Equal(t, 0.0, decoded["profitFactorValue"])
	assert.Equal(t, 10.0, decoded["totalPnl"])
	assert.Equal(t, 100.0, decoded["winRate"])
}
