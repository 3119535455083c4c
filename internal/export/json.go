package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"tradeDashboard/internal/domain"
)

type jsonTrade struct {
	domain.Trade
	Date string `json:"date"`
}

// WriteJSON writes the trades as an indented JSON array. Each object carries the trade
// fields plus a formatted "date".
func WriteJSON(w io.Writer, trades []domain.Trade, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	out := make([]jsonTrade, 0, len(trades))
	for _, t := range trades {
		out = append(out, jsonTrade{Trade: t, Date: t.Time().In(loc).Format(DateTimeLayout)})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode trades: %w", err)
	}
	return nil
}
