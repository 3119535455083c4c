package analytics

import (
	"sort"

	"tradeDashboard/internal/domain"
)

// SymbolStat summarises activity on one symbol.
type SymbolStat struct {
	Symbol           string  `json:"symbol"`
	Trades           int     `json:"trades"`
	Volume           float64 `json:"volume"`
	PnL              float64 `json:"pnl"`
	WinRate          float64 `json:"winRate"`
	AvgTradeDuration float64 `json:"avgTradeDuration"` // milliseconds
}

// BySymbol groups trades per symbol, sorted by volume descending.
// Closed here means status CLOSED regardless of PnL; undefined PnL and duration count as 0.
func BySymbol(trades []domain.Trade) []SymbolStat {
	if len(trades) == 0 {
		return []SymbolStat{}
	}

	type acc struct {
		SymbolStat
		closed      int
		wins        int
		durationSum float64
	}
	groups := make(map[string]*acc)
	for i := range trades {
		t := &trades[i]
		a, ok := groups[t.Symbol]
		if !ok {
			a = &acc{SymbolStat: SymbolStat{Symbol: t.Symbol}}
			groups[t.Symbol] = a
		}
		a.Trades++
		a.Volume += t.Volume()
		if !t.IsClosed() {
			continue
		}
		a.closed++
		a.PnL += t.PnLOrZero()
		if t.PnLOrZero() > 0 {
			a.wins++
		}
		a.durationSum += float64(t.DurationOrZero())
	}

	stats := make([]SymbolStat, 0, len(groups))
	for _, a := range groups {
		a.WinRate = percent(a.wins, a.closed)
		a.AvgTradeDuration = safeDiv(a.durationSum, float64(a.closed))
		stats = append(stats, a.SymbolStat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Volume != stats[j].Volume {
			return stats[i].Volume > stats[j].Volume
		}
		return stats[i].Symbol < stats[j].Symbol
	})
	return stats
}
