package domain

// Position represents a currently open exposure reported by a trade source.
type Position struct {
	ID               string     `json:"id"`
	Symbol           string     `json:"symbol"`
	Market           MarketType `json:"market"`
	Side             TradeSide  `json:"side"`
	Size             float64    `json:"size"`
	EntryPrice       float64    `json:"entryPrice"`
	CurrentPrice     float64    `json:"currentPrice"`
	UnrealizedPnL    float64    `json:"unrealizedPnl"`
	Leverage         *int       `json:"leverage,omitempty"`
	LiquidationPrice *float64   `json:"liquidationPrice,omitempty"`
	Margin           *float64   `json:"margin,omitempty"`
	Timestamp        int64      `json:"timestamp"` // epoch milliseconds when opened
}

// Notional returns the position value at the current mark price.
func (p *Position) Notional() float64 {
	return p.Size * p.CurrentPrice
}
