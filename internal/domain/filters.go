package domain

import "time"

// DateRange is an inclusive time window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TradeFilters describes which trades to keep. Every field is optional;
// a nil pointer or empty list places no constraint on that dimension.
type TradeFilters struct {
	DateRange   *DateRange    `json:"dateRange,omitempty"`
	Symbols     []string      `json:"symbols,omitempty"`
	Sides       []TradeSide   `json:"sides,omitempty"`
	Markets     []MarketType  `json:"markets,omitempty"`
	OrderTypes  []OrderType   `json:"orderTypes,omitempty"`
	Status      []TradeStatus `json:"status,omitempty"`
	MinPnL      *float64      `json:"minPnl,omitempty"`
	MaxPnL      *float64      `json:"maxPnl,omitempty"`
	SearchQuery string        `json:"searchQuery,omitempty"`
}

// IsZero reports whether no constraint is set.
func (f TradeFilters) IsZero() bool {
	return f.DateRange == nil && len(f.Symbols) == 0 && len(f.Sides) == 0 &&
		len(f.Markets) == 0 && len(f.OrderTypes) == 0 && len(f.Status) == 0 &&
		f.MinPnL == nil && f.MaxPnL == nil && f.SearchQuery == ""
}
