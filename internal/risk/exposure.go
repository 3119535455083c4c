package risk

import (
	"tradeDashboard/internal/domain"
)

// Exposure summarizes the open positions of the account.
type Exposure struct {
	Positions        int     `json:"positions"`
	TotalNotional    float64 `json:"totalNotional"`
	TotalUnrealized  float64 `json:"totalUnrealizedPnl"`
	TotalMargin      float64 `json:"totalMargin"`
	LongNotional     float64 `json:"longNotional"`
	ShortNotional    float64 `json:"shortNotional"`
	WeightedLeverage float64 `json:"weightedLeverage"`
}

// ComputeExposure aggregates positions. Leverage is weighted by notional, positions without
// a leverage count as 1x. Margin falls back to notional / leverage when not reported.
func ComputeExposure(positions []domain.Position) Exposure {
	var e Exposure
	var levWeighted float64
	for i := range positions {
		p := &positions[i]
		notional := p.Notional()
		lev := 1
		if p.Leverage != nil && *p.Leverage > 0 {
			lev = *p.Leverage
		}

		e.Positions++
		e.TotalNotional += notional
		e.TotalUnrealized += p.UnrealizedPnL
		levWeighted += notional * float64(lev)
		if p.Margin != nil {
			e.TotalMargin += *p.Margin
		} else {
			e.TotalMargin += notional / float64(lev)
		}

		switch p.Side.Direction() {
		case domain.SideLong:
			e.LongNotional += notional
		case domain.SideShort:
			e.ShortNotional += notional
		}
	}
	if e.TotalNotional > 0 {
		e.WeightedLeverage = levWeighted / e.TotalNotional
	}
	return e
}
