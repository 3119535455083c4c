// Package mocksource generates a reproducible demo account: trades, open positions and
// journal entries. It implements ports.TradeSource so the dashboard runs without an exchange.
package mocksource

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"tradeDashboard/internal/domain"
	"tradeDashboard/internal/ports"
)

const (
	DefaultSeed        = 12345
	DefaultTradeCount  = 200
	DefaultHistoryDays = 90

	positionSeed = 54321
	journalSeed  = 22222

	takerFeeRate      = 0.0006
	maxJournalSamples = 50
)

var (
	symbols     = []string{"SOL-PERP", "BTC-PERP", "ETH-PERP", "SOL/USDC", "BTC/USDC", "ETH/USDC"}
	perpSymbols = []string{"SOL-PERP", "BTC-PERP", "ETH-PERP"}

	journalTags       = []string{"scalp", "swing", "breakout", "reversal", "trend", "range", "news"}
	journalStrategies = []string{"Momentum", "Mean Reversion", "Breakout", "Support/Resistance", "VWAP"}
	journalMistakes   = []string{"Entered too early", "Sized too large", "Ignored stop loss", "FOMO entry", "Revenge trading"}
	journalLessons    = []string{"Wait for confirmation", "Stick to the plan", "Risk management is key", "Patience pays", "Cut losses quickly"}
)

// Config holds configuration for the mock source.
type Config struct {
	Seed        int64
	TradeCount  int
	HistoryDays int
	Logger      ports.Logger
	Now         func() time.Time // defaults to time.Now
}

// Source implements ports.TradeSource with generated data.
type Source struct {
	seed        int64
	count       int
	historyDays int
	logger      ports.Logger
	now         func() time.Time
}

// New creates a mock source. Zero values in cfg select the defaults.
func New(cfg Config) (*Source, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for mock source")
	}
	if cfg.TradeCount < 0 || cfg.HistoryDays < 0 {
		return nil, fmt.Errorf("trade count and history days must not be negative: %w", ports.ErrConfigurationError)
	}
	s := &Source{
		seed:        cfg.Seed,
		count:       cfg.TradeCount,
		historyDays: cfg.HistoryDays,
		logger:      cfg.Logger,
		now:         cfg.Now,
	}
	if s.seed == 0 {
		s.seed = DefaultSeed
	}
	if s.count == 0 {
		s.count = DefaultTradeCount
	}
	if s.historyDays == 0 {
		s.historyDays = DefaultHistoryDays
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// Name identifies the source.
func (s *Source) Name() string { return "mock" }

// FetchTrades generates the trade history and returns the trades at or after since.
func (s *Source) FetchTrades(ctx context.Context, since time.Time) ([]domain.Trade, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("mock FetchTrades canceled: %w: %w", ports.ErrContextCanceled, err)
	}
	all := s.Trades()
	if since.IsZero() {
		return all, nil
	}
	cutoff := since.UnixMilli()
	out := make([]domain.Trade, 0, len(all))
	for _, t := range all {
		if t.Timestamp >= cutoff {
			out = append(out, t)
		}
	}
	s.logger.Debug(ctx, "Generated mock trades", map[string]interface{}{"total": len(all), "returned": len(out)})
	return out, nil
}

// FetchPositions generates the open positions.
func (s *Source) FetchPositions(ctx context.Context) ([]domain.Position, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("mock FetchPositions canceled: %w: %w", ports.ErrContextCanceled, err)
	}
	return s.Positions(), nil
}

// Trades generates the full history, newest first. Repeated calls with the same clock
// return identical trades.
func (s *Source) Trades() []domain.Trade {
	rnd := newSineRand(s.seed)
	ids := newIDSource(s.seed)

	now := s.now().UnixMilli()
	start := now - int64(s.historyDays)*24*int64(time.Hour/time.Millisecond)

	trades := make([]domain.Trade, 0, s.count)
	for i := 0; i < s.count; i++ {
		ts := start + int64(rnd.Float()*float64(now-start))
		symbol := pick(rnd, symbols)
		market := domain.MarketSpot
		if isPerp(symbol) {
			market = domain.MarketPerp
		}

		side := domain.SideShort
		if rnd.Float() > 0.48 {
			side = domain.SideLong
		}
		orderType := domain.OrderMarket
		if rnd.Float() > 0.6 {
			orderType = domain.OrderLimit
		} else if rnd.Float() > 0.5 {
			orderType = domain.OrderIOC
		}

		entry := basePrice(rnd, symbol, tradePriceBands) * (1 + rnd.Range(-0.02, 0.02))
		closed := rnd.Float() > 0.15
		win := rnd.Float() > 0.45
		change := rnd.Range(0.001, 0.05)
		if !win {
			change = -change
		}
		size := rnd.Range(0.1, 10) * sizeMultiplier(symbol)

		t := domain.Trade{
			ID:         ids.Next(),
			Timestamp:  ts,
			Market:     market,
			Symbol:     symbol,
			Side:       side,
			OrderType:  orderType,
			Size:       size,
			EntryPrice: entry,
			Fee:        size * entry * takerFeeRate,
			FeeType:    feeTypeFor(orderType),
			Status:     domain.StatusOpen,
		}

		leverage := 0
		if market == domain.MarketPerp {
			leverage = int(math.Floor(rnd.Range(1, 20)))
			t.Leverage = domain.Int(leverage)
		}

		if closed {
			dir := change
			if side != domain.SideLong {
				dir = -change
			}
			exit := entry * (1 + dir)
			pnl := (exit - entry) * size
			if side != domain.SideLong {
				pnl = -pnl
			}
			if leverage > 0 {
				pnl *= float64(leverage)
			}
			t.ExitPrice = domain.Float(exit)
			t.PnL = domain.Float(pnl)
			t.Status = domain.StatusClosed
			t.Duration = domain.Int64(int64(rnd.Range(60_000, 86_400_000)))
		}
		trades = append(trades, t)
	}

	sort.SliceStable(trades, func(i, j int) bool { return trades[i].Timestamp > trades[j].Timestamp })
	return trades
}

// Positions generates between zero and three perp positions.
func (s *Source) Positions() []domain.Position {
	rnd := newSineRand(positionSeed)
	ids := newIDSource(positionSeed)
	now := s.now().UnixMilli()

	positions := make([]domain.Position, 0, len(perpSymbols))
	for _, symbol := range perpSymbols {
		if rnd.Float() <= 0.5 {
			continue
		}
		entry := basePrice(rnd, symbol, positionPriceBands) * (1 + rnd.Range(-0.02, 0.02))
		current := entry * (1 + rnd.Range(-0.05, 0.08))
		side := domain.SideShort
		if rnd.Float() > 0.5 {
			side = domain.SideLong
		}
		size := rnd.Range(1, 20) * sizeMultiplier(symbol)
		leverage := int(math.Floor(rnd.Range(2, 10)))

		diff := current - entry
		if side != domain.SideLong {
			diff = -diff
		}
		liq := entry * (1 - 1/float64(leverage)*0.9)
		if side != domain.SideLong {
			liq = entry * (1 + 1/float64(leverage)*0.9)
		}

		positions = append(positions, domain.Position{
			ID:               ids.Next(),
			Symbol:           symbol,
			Market:           domain.MarketPerp,
			Side:             side,
			Size:             size,
			EntryPrice:       entry,
			CurrentPrice:     current,
			UnrealizedPnL:    diff * size * float64(leverage),
			Leverage:         domain.Int(leverage),
			LiquidationPrice: domain.Float(liq),
			Margin:           domain.Float(size * entry / float64(leverage)),
			Timestamp:        now - int64(rnd.Range(3_600_000, 3*86_400_000)),
		})
	}
	return positions
}

// JournalEntries writes sample notes for some of the most recent closed trades, newest date first.
func (s *Source) JournalEntries(trades []domain.Trade) []domain.JournalEntry {
	rnd := newSineRand(journalSeed)
	ids := newIDSource(journalSeed)

	closed := make([]domain.Trade, 0, maxJournalSamples)
	for _, t := range trades {
		if t.Status == domain.StatusClosed {
			closed = append(closed, t)
			if len(closed) == maxJournalSamples {
				break
			}
		}
	}

	entries := make([]domain.JournalEntry, 0)
	for _, t := range closed {
		if rnd.Float() <= 0.6 {
			continue
		}
		pnl := t.PnLOrZero()
		sentiment := domain.SentimentNeutral
		notes := fmt.Sprintf("Trade on %s. Need to review entry timing.", t.Symbol)
		switch {
		case pnl > 0:
			sentiment = domain.SentimentBullish
			notes = fmt.Sprintf("Trade on %s. Good execution.", t.Symbol)
		case pnl < 0:
			sentiment = domain.SentimentBearish
		}

		tags := make([]string, 0, 3)
		for n := int(math.Floor(rnd.Range(1, 4))); n > 0; n-- {
			tag := pick(rnd, journalTags)
			if !contains(tags, tag) {
				tags = append(tags, tag)
			}
		}

		e := domain.JournalEntry{
			ID:        ids.Next(),
			TradeID:   t.ID,
			Date:      t.Time().UTC().Format("2006-01-02"),
			Notes:     notes,
			Tags:      tags,
			Sentiment: sentiment,
			Rating:    int(math.Floor(rnd.Range(1, 6))),
			Strategy:  pick(rnd, journalStrategies),
		}
		if pnl < 0 {
			e.Mistakes = []string{pick(rnd, journalMistakes)}
		}
		if rnd.Float() > 0.5 {
			e.Lessons = []string{pick(rnd, journalLessons)}
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
	return entries
}

type priceBands struct {
	btcMin, btcMax, ethMin, ethMax, otherMin, otherMax float64
}

var (
	tradePriceBands    = priceBands{40000, 70000, 2000, 4000, 80, 200}
	positionPriceBands = priceBands{45000, 65000, 2500, 3500, 100, 180}
)

func basePrice(rnd *sineRand, symbol string, b priceBands) float64 {
	switch {
	case strings.Contains(symbol, "BTC"):
		return rnd.Range(b.btcMin, b.btcMax)
	case strings.Contains(symbol, "ETH"):
		return rnd.Range(b.ethMin, b.ethMax)
	default:
		return rnd.Range(b.otherMin, b.otherMax)
	}
}

func sizeMultiplier(symbol string) float64 {
	switch {
	case strings.Contains(symbol, "BTC"):
		return 0.1
	case strings.Contains(symbol, "ETH"):
		return 1
	default:
		return 10
	}
}

func isPerp(symbol string) bool {
	return contains(perpSymbols, symbol)
}

// feeTypeFor treats resting LIMIT orders as maker fills.
func feeTypeFor(o domain.OrderType) *domain.FeeType {
	if o == domain.OrderLimit {
		return domain.Fee(domain.FeeMaker)
	}
	return domain.Fee(domain.FeeTaker)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
