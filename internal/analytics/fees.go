package analytics

import (
	"time"

	"tradeDashboard/internal/domain"
)

// FeeDay is one day of the fee series.
type FeeDay struct {
	Date       string  `json:"date"`
	Fees       float64 `json:"fees"`
	Cumulative float64 `json:"cumulative"`
}

// FeeSummary breaks trading costs down by day, market and liquidity role.
type FeeSummary struct {
	Daily          []FeeDay `json:"daily"`
	WindowFees     float64  `json:"windowFees"`
	AvgDailyFees   float64  `json:"avgDailyFees"`
	TotalFees      float64  `json:"totalFees"`
	SpotFees       float64  `json:"spotFees"`
	PerpFees       float64  `json:"perpFees"`
	MakerFees      float64  `json:"makerFees"`
	TakerFees      float64  `json:"takerFees"`
	UnknownFees    float64  `json:"unknownFees"`
	Rebates        float64  `json:"rebates"`
	NetFees        float64  `json:"netFees"`
	FeeToVolumePct float64  `json:"feeToVolumePct"`
}

// Fees builds the fee view. The daily series covers the last days calendar days
// ending at now (zero-filled); the market and role splits cover every trade.
func Fees(trades []domain.Trade, days int, now time.Time, loc *time.Location) FeeSummary {
	if loc == nil {
		loc = time.Local
	}
	keys := windowKeys(days, now, loc)
	perDay := make(map[string]float64, len(keys))
	for _, k := range keys {
		perDay[k] = 0
	}

	var out FeeSummary
	var volume float64
	for i := range trades {
		t := &trades[i]
		out.TotalFees += t.Fee
		out.Rebates += t.RebateOrZero()
		volume += t.Volume()

		switch t.Market {
		case domain.MarketSpot:
			out.SpotFees += t.Fee
		case domain.MarketPerp:
			out.PerpFees += t.Fee
		}

		switch {
		case t.FeeType == nil:
			out.UnknownFees += t.Fee
		case *t.FeeType == domain.FeeMaker:
			out.MakerFees += t.Fee
		case *t.FeeType == domain.FeeTaker:
			out.TakerFees += t.Fee
		}

		key := DayKey(t.Timestamp, loc)
		if _, ok := perDay[key]; ok {
			perDay[key] += t.Fee
		}
	}

	out.Daily = make([]FeeDay, 0, len(keys))
	var cumulative float64
	for _, k := range keys {
		cumulative += perDay[k]
		out.Daily = append(out.Daily, FeeDay{Date: k, Fees: perDay[k], Cumulative: cumulative})
	}
	out.WindowFees = cumulative
	out.AvgDailyFees = safeDiv(cumulative, float64(days))
	out.NetFees = out.TotalFees - out.Rebates
	out.FeeToVolumePct = safeDiv(out.TotalFees, volume) * 100
	return out
}

// windowKeys lists day keys from now-(days-1) through now, oldest first.
func windowKeys(days int, now time.Time, loc *time.Location) []string {
	if days <= 0 {
		return []string{}
	}
	end := now.In(loc)
	keys := make([]string, 0, days)
	for i := days - 1; i >= 0; i-- {
		keys = append(keys, end.AddDate(0, 0, -i).Format(DateLayout))
	}
	return keys
}
