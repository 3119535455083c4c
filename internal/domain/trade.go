package domain

import "time"

// Trade represents one executed order as ingested from a trade source.
// Optional values are pointers so an absent value stays distinguishable from zero.
type Trade struct {
	ID         string      `json:"id"`
	Timestamp  int64       `json:"timestamp"` // epoch milliseconds
	Market     MarketType  `json:"market"`
	Symbol     string      `json:"symbol"`
	Side       TradeSide   `json:"side"`
	OrderType  OrderType   `json:"orderType"`
	Size       float64     `json:"size"`
	EntryPrice float64     `json:"entryPrice"`
	ExitPrice  *float64    `json:"exitPrice,omitempty"`
	Fee        float64     `json:"fee"`
	FeeType    *FeeType    `json:"feeType,omitempty"`
	Rebate     *float64    `json:"rebate,omitempty"`
	PnL        *float64    `json:"pnl,omitempty"`
	Status     TradeStatus `json:"status"`
	Duration   *int64      `json:"duration,omitempty"` // milliseconds
	Leverage   *int        `json:"leverage,omitempty"`
}

// Time returns the trade timestamp as a time.Time.
func (t *Trade) Time() time.Time {
	return time.UnixMilli(t.Timestamp)
}

// Volume returns the notional value of the fill at entry.
func (t *Trade) Volume() float64 {
	return t.Size * t.EntryPrice
}

// HasPnL reports whether the trade carries a realized PnL.
func (t *Trade) HasPnL() bool {
	return t.PnL != nil
}

// PnLOrZero returns the realized PnL, or 0 when undefined.
func (t *Trade) PnLOrZero() float64 {
	if t.PnL == nil {
		return 0
	}
	return *t.PnL
}

// DurationOrZero returns the holding duration in ms, or 0 when undefined.
func (t *Trade) DurationOrZero() int64 {
	if t.Duration == nil {
		return 0
	}
	return *t.Duration
}

// RebateOrZero returns the rebate, or 0 when undefined.
func (t *Trade) RebateOrZero() float64 {
	if t.Rebate == nil {
		return 0
	}
	return *t.Rebate
}

// IsClosed checks if the trade status is closed.
func (t *Trade) IsClosed() bool {
	return t.Status == StatusClosed
}

// IsClosedWithPnL is the qualifying predicate for every PnL-dependent aggregate.
func (t *Trade) IsClosedWithPnL() bool {
	return t.Status == StatusClosed && t.PnL != nil
}

// Float returns a pointer to v. Used to populate optional trade fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// Fee returns a pointer to f.
func Fee(f FeeType) *FeeType { return &f }
