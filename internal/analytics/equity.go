package analytics

import (
	"math"
	"sort"

	"tradeDashboard/internal/domain"
)

// DefaultInitialEquity is the starting balance used when the caller has no account balance.
const DefaultInitialEquity = 10000.0

// EquityPoint represents a point on the equity curve.
type EquityPoint struct {
	Timestamp       int64   `json:"timestamp"`
	Equity          float64 `json:"equity"`
	Drawdown        float64 `json:"drawdown"`
	DrawdownPercent float64 `json:"drawdownPercent"`
}

// EquityCurve replays closed trades in chronological order starting from initialEquity.
// Each trade moves equity by pnl minus fee. The first point is a seed at the first
// trade's timestamp with zero drawdown, so a non-empty result has len(closed)+1 points.
func EquityCurve(trades []domain.Trade, initialEquity float64) []EquityPoint {
	closed := closedChronological(trades)
	if len(closed) == 0 {
		return []EquityPoint{}
	}

	equity := initialEquity
	peak := equity
	curve := make([]EquityPoint, 0, len(closed)+1)
	curve = append(curve, EquityPoint{Timestamp: closed[0].Timestamp, Equity: equity})

	for _, t := range closed {
		equity += *t.PnL - t.Fee
		peak = math.Max(peak, equity)
		drawdown := peak - equity
		var drawdownPct float64
		if peak > 0 {
			drawdownPct = drawdown / peak * 100
		}
		curve = append(curve, EquityPoint{
			Timestamp:       t.Timestamp,
			Equity:          equity,
			Drawdown:        drawdown,
			DrawdownPercent: drawdownPct,
		})
	}
	return curve
}

// closedChronological returns closed trades with PnL, oldest first. Ties keep input order.
func closedChronological(trades []domain.Trade) []domain.Trade {
	closed := make([]domain.Trade, 0, len(trades))
	for _, t := range trades {
		if t.IsClosedWithPnL() {
			closed = append(closed, t)
		}
	}
	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].Timestamp < closed[j].Timestamp
	})
	return closed
}
