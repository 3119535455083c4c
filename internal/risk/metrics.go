// Package risk derives drawdown, return and exposure metrics from an equity curve,
// the analytics snapshot and the open positions.
package risk

import (
	"encoding/json"
	"math"

	"tradeDashboard/internal/analytics"
)

// Level classifies the overall risk profile of the account.
type Level string

const (
	LevelHigh   Level = "High"
	LevelMedium Level = "Medium"
	LevelLow    Level = "Low"
)

// tradingDaysPerYear annualizes the per-trade Sharpe ratio.
const tradingDaysPerYear = 252

// Thresholds holds the limits used to classify a risk Level.
type Thresholds struct {
	HighDrawdown       float64 // percent
	HighWinRate        float64 // below this is High
	HighProfitFactor   float64
	MediumDrawdown     float64
	MediumWinRate      float64
	MediumProfitFactor float64
}

// DefaultThresholds returns the limits the dashboard ships with.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighDrawdown:       30,
		HighWinRate:        40,
		HighProfitFactor:   1,
		MediumDrawdown:     15,
		MediumWinRate:      50,
		MediumProfitFactor: 1.5,
	}
}

// Metrics is the risk panel of the dashboard.
type Metrics struct {
	MaxDrawdown     float64 `json:"maxDrawdown"`     // percent
	CurrentDrawdown float64 `json:"currentDrawdown"` // percent
	SharpeRatio     float64 `json:"sharpeRatio"`
	RiskReward      float64 `json:"-"` // +Inf when there are wins and no losses
	WinRate         float64 `json:"winRate"`
	ProfitFactor    float64 `json:"-"`
	AvgWin          float64 `json:"avgWin"`
	AvgLoss         float64 `json:"avgLoss"`
	TotalTrades     int     `json:"totalTrades"`
	Level           Level   `json:"level"`
}

// MarshalJSON encodes the two ratios that may be infinite as display strings.
func (m Metrics) MarshalJSON() ([]byte, error) {
	type plain Metrics
	return json.Marshal(struct {
		plain
		RiskReward   string `json:"riskReward"`
		ProfitFactor string `json:"profitFactor"`
	}{
		plain:        plain(m),
		RiskReward:   analytics.FormatRatio(m.RiskReward),
		ProfitFactor: analytics.FormatRatio(m.ProfitFactor),
	})
}

// Compute derives Metrics using DefaultThresholds.
func Compute(curve []analytics.EquityPoint, s analytics.Snapshot) Metrics {
	return DefaultThresholds().Compute(curve, s)
}

// Compute derives Metrics from an equity curve and the snapshot of the same trades.
func (th Thresholds) Compute(curve []analytics.EquityPoint, s analytics.Snapshot) Metrics {
	m := Metrics{
		SharpeRatio:  SharpeRatio(curve),
		RiskReward:   RiskReward(s.AvgWin, s.AvgLoss),
		WinRate:      s.WinRate,
		ProfitFactor: s.ProfitFactor,
		AvgWin:       s.AvgWin,
		AvgLoss:      s.AvgLoss,
		TotalTrades:  s.ClosedTrades,
	}
	for _, p := range curve {
		m.MaxDrawdown = math.Max(m.MaxDrawdown, p.DrawdownPercent)
	}
	if len(curve) > 0 {
		m.CurrentDrawdown = curve[len(curve)-1].DrawdownPercent
	}
	m.Level = th.Classify(m.MaxDrawdown, s.WinRate, s.ProfitFactor)
	return m
}

// Classify maps drawdown, win rate and profit factor onto a Level. The first tier hit wins.
func (th Thresholds) Classify(maxDrawdown, winRate, profitFactor float64) Level {
	switch {
	case maxDrawdown > th.HighDrawdown || winRate < th.HighWinRate || profitFactor < th.HighProfitFactor:
		return LevelHigh
	case maxDrawdown > th.MediumDrawdown || winRate < th.MediumWinRate || profitFactor < th.MediumProfitFactor:
		return LevelMedium
	default:
		return LevelLow
	}
}

// SharpeRatio is the annualized mean over population deviation of step returns along the
// curve, with a zero risk-free rate. Steps from a non-positive equity are skipped.
func SharpeRatio(curve []analytics.EquityPoint) float64 {
	if len(curve) < 2 {
		return 0
	}
	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		if prev <= 0 {
			continue
		}
		returns = append(returns, (curve[i].Equity-prev)/prev)
	}
	if len(returns) == 0 {
		return 0
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	stdDev := math.Sqrt(variance / float64(len(returns)))
	if stdDev == 0 {
		return 0
	}
	return mean / stdDev * math.Sqrt(tradingDaysPerYear)
}

// RiskReward returns avgWin / |avgLoss|, +Inf when there is a win but no loss.
func RiskReward(avgWin, avgLoss float64) float64 {
	if avgLoss != 0 {
		return avgWin / math.Abs(avgLoss)
	}
	if avgWin > 0 {
		return math.Inf(1)
	}
	return 0
}
