package analytics

import (
	"encoding/json"
	"math"

	"tradeDashboard/internal/domain"
)

// Snapshot holds the overall performance metrics computed from a trade list.
type Snapshot struct {
	// Totals
	TotalPnL     float64 `json:"totalPnl"`
	TotalVolume  float64 `json:"totalVolume"`
	TotalFees    float64 `json:"totalFees"`
	TotalTrades  int     `json:"totalTrades"`
	ClosedTrades int     `json:"closedTrades"`
	OpenTrades   int     `json:"openTrades"`

	// Performance
	WinRate      float64 `json:"winRate"`
	ProfitFactor float64 `json:"-"` // +Inf when there are wins and no losses
	GrossProfit  float64 `json:"grossProfit"`
	GrossLoss    float64 `json:"grossLoss"`
	AvgWin       float64 `json:"avgWin"`
	AvgLoss      float64 `json:"avgLoss"` // positive magnitude
	LargestWin   float64 `json:"largestWin"`
	LargestLoss  float64 `json:"largestLoss"` // negative or zero
	Expectancy   float64 `json:"expectancy"`
	AvgDuration  float64 `json:"avgDuration"` // milliseconds

	// Direction
	LongTrades     int     `json:"longTrades"`
	ShortTrades    int     `json:"shortTrades"`
	LongPnL        float64 `json:"longPnl"`
	ShortPnL       float64 `json:"shortPnl"`
	LongWinRate    float64 `json:"longWinRate"`
	ShortWinRate   float64 `json:"shortWinRate"`
	LongShortRatio float64 `json:"longShortRatio"`
}

// MarshalJSON renders the profit factor through FormatRatio so +Inf survives as "∞".
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type plain Snapshot
	return json.Marshal(struct {
		plain
		ProfitFactor        string  `json:"profitFactor"`
		ProfitFactorNumeric float64 `json:"profitFactorValue"`
	}{
		plain:               plain(s),
		ProfitFactor:        FormatRatio(s.ProfitFactor),
		ProfitFactorNumeric: finiteOrZero(s.ProfitFactor),
	})
}

// ComputeAnalytics aggregates trades into a Snapshot. The result does not depend on input order.
func ComputeAnalytics(trades []domain.Trade) Snapshot {
	var s Snapshot
	if len(trades) == 0 {
		return s
	}

	s.TotalTrades = len(trades)

	var wins, losses int
	var durationSum float64
	var durationCount int
	var longWins, shortWins int

	for i := range trades {
		t := &trades[i]
		s.TotalVolume += t.Volume()
		s.TotalFees += t.Fee
		if t.Status == domain.StatusOpen {
			s.OpenTrades++
		}
		if !t.IsClosedWithPnL() {
			continue
		}

		pnl := *t.PnL
		s.ClosedTrades++
		s.TotalPnL += pnl

		switch {
		case pnl > 0:
			wins++
			s.GrossProfit += pnl
			if wins == 1 || pnl > s.LargestWin {
				s.LargestWin = pnl
			}
		case pnl < 0:
			losses++
			s.GrossLoss += pnl
			if losses == 1 || pnl < s.LargestLoss {
				s.LargestLoss = pnl
			}
		}

		if d := t.DurationOrZero(); d != 0 {
			durationSum += float64(d)
			durationCount++
		}

		switch t.Side {
		case domain.SideLong:
			s.LongTrades++
			s.LongPnL += pnl
			if pnl > 0 {
				longWins++
			}
		case domain.SideShort:
			s.ShortTrades++
			s.ShortPnL += pnl
			if pnl > 0 {
				shortWins++
			}
		}
	}

	s.GrossLoss = math.Abs(s.GrossLoss)
	s.AvgWin = safeDiv(s.GrossProfit, float64(wins))
	s.AvgLoss = safeDiv(s.GrossLoss, float64(losses))
	s.WinRate = percent(wins, s.ClosedTrades)
	s.ProfitFactor = ProfitFactor(s.GrossProfit, s.GrossLoss)
	s.Expectancy = s.WinRate/100*s.AvgWin - (100-s.WinRate)/100*s.AvgLoss
	s.AvgDuration = safeDiv(durationSum, float64(durationCount))
	s.LongWinRate = percent(longWins, s.LongTrades)
	s.ShortWinRate = percent(shortWins, s.ShortTrades)

	if s.ShortTrades > 0 {
		s.LongShortRatio = float64(s.LongTrades) / float64(s.ShortTrades)
	} else {
		s.LongShortRatio = float64(s.LongTrades)
	}

	return s
}

// ProfitFactor divides gross profit by gross loss magnitude.
// It returns +Inf when grossLoss is 0 and grossProfit is positive, and 0 when both are 0.
func ProfitFactor(grossProfit, grossLoss float64) float64 {
	if grossLoss > 0 {
		return grossProfit / grossLoss
	}
	if grossProfit > 0 {
		return math.Inf(1)
	}
	return 0
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func finiteOrZero(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}
