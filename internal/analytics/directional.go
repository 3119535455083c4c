package analytics

import "tradeDashboard/internal/domain"

// Bias labels returned by Directional.
const (
	BiasLong    = "Long Bias"
	BiasShort   = "Short Bias"
	BiasNeutral = "Neutral"
)

// SideStat summarises closed trades on one side of the market.
type SideStat struct {
	Trades  int     `json:"trades"`
	PnL     float64 `json:"pnl"`
	Volume  float64 `json:"volume"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"winRate"`
}

// DirectionalStats compares long and short exposure.
type DirectionalStats struct {
	Long        SideStat `json:"long"`
	Short       SideStat `json:"short"`
	LongPercent float64  `json:"longPercent"`
	Bias        string   `json:"bias"`
}

// Directional splits closed trades with PnL by direction. Spot BUY counts as long
// and SELL as short.
func Directional(trades []domain.Trade) DirectionalStats {
	var out DirectionalStats
	for i := range trades {
		t := &trades[i]
		if !t.IsClosedWithPnL() {
			continue
		}
		var s *SideStat
		switch t.Side.Direction() {
		case domain.SideLong:
			s = &out.Long
		case domain.SideShort:
			s = &out.Short
		default:
			continue
		}
		s.Trades++
		s.PnL += *t.PnL
		s.Volume += t.Volume()
		if *t.PnL > 0 {
			s.Wins++
		}
	}

	out.Long.WinRate = percent(out.Long.Wins, out.Long.Trades)
	out.Short.WinRate = percent(out.Short.Wins, out.Short.Trades)
	out.LongPercent = percent(out.Long.Trades, out.Long.Trades+out.Short.Trades)

	switch {
	case out.Long.Trades+out.Short.Trades == 0:
		out.Bias = BiasNeutral
	case out.LongPercent > 60:
		out.Bias = BiasLong
	case out.LongPercent < 40:
		out.Bias = BiasShort
	default:
		out.Bias = BiasNeutral
	}
	return out
}
