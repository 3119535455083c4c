package analytics

import "tradeDashboard/internal/domain"

// OrderTypeStat summarises fills of one order type.
type OrderTypeStat struct {
	OrderType domain.OrderType `json:"orderType"`
	Trades    int              `json:"trades"`
	Volume    float64          `json:"volume"`
	PnL       float64          `json:"pnl"`
	Wins      int              `json:"wins"`
	WinRate   float64          `json:"winRate"`
	AvgPnL    float64          `json:"avgPnl"`
}

// ByOrderType returns IOC, LIMIT and MARKET stats in that order.
// Trades and volume count every fill; PnL and wins count closed fills with PnL;
// win rate and average PnL divide by fills of that type with status CLOSED.
func ByOrderType(trades []domain.Trade) []OrderTypeStat {
	stats := make([]OrderTypeStat, len(domain.OrderTypes))
	index := make(map[domain.OrderType]int, len(domain.OrderTypes))
	for i, ot := range domain.OrderTypes {
		stats[i].OrderType = ot
		index[ot] = i
	}
	closed := make([]int, len(stats))

	for i := range trades {
		t := &trades[i]
		idx, ok := index[t.OrderType]
		if !ok {
			continue
		}
		s := &stats[idx]
		s.Trades++
		s.Volume += t.Volume()
		if t.IsClosed() {
			closed[idx]++
		}
		if t.IsClosedWithPnL() {
			s.PnL += *t.PnL
			if *t.PnL > 0 {
				s.Wins++
			}
		}
	}

	for i := range stats {
		stats[i].WinRate = percent(stats[i].Wins, closed[i])
		stats[i].AvgPnL = safeDiv(stats[i].PnL, float64(closed[i]))
	}
	return stats
}
