package app

import (
	"time"

	"tradeDashboard/internal/domain"
)

// State is the dashboard's application state. The service replaces slices wholesale
// and never mutates them in place, so a State handed out by Snapshot stays valid.
// Only Preferences is persisted across restarts.
type State struct {
	Trades      []domain.Trade        `json:"-"`
	Positions   []domain.Position     `json:"-"`
	Journal     []domain.JournalEntry `json:"-"`
	Filters     domain.TradeFilters   `json:"filters"`
	Preferences domain.Preferences    `json:"preferences"`

	Loading   bool      `json:"loading"`
	LastError string    `json:"lastError,omitempty"`
	LastSync  time.Time `json:"lastSync"`
	Version   uint64    `json:"version"`
}

// Status is the JSON-friendly summary of State.
type Status struct {
	State
	Source        string `json:"source"`
	TradeCount    int    `json:"tradeCount"`
	PositionCount int    `json:"positionCount"`
	JournalCount  int    `json:"journalCount"`
}

// DateRange returns the span covered by the loaded trades, or nil when there are none.
func (s State) DateRange() *domain.DateRange {
	if len(s.Trades) == 0 {
		return nil
	}
	first, last := s.Trades[0].Timestamp, s.Trades[0].Timestamp
	for i := range s.Trades {
		ts := s.Trades[i].Timestamp
		if ts < first {
			first = ts
		}
		if ts > last {
			last = ts
		}
	}
	return &domain.DateRange{Start: time.UnixMilli(first), End: time.UnixMilli(last)}
}

// TradesSince returns the trades at or after since. The zero time keeps everything.
func (s State) TradesSince(since time.Time) []domain.Trade {
	if since.IsZero() {
		return s.Trades
	}
	cutoff := since.UnixMilli()
	out := make([]domain.Trade, 0, len(s.Trades))
	for i := range s.Trades {
		if s.Trades[i].Timestamp >= cutoff {
			out = append(out, s.Trades[i])
		}
	}
	return out
}
