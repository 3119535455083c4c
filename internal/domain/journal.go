package domain

// JournalEntry is the trader's note attached to a trade.
type JournalEntry struct {
	ID          string    `json:"id"`
	TradeID     string    `json:"tradeId"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Notes       string    `json:"notes"`
	Tags        []string  `json:"tags"`
	Sentiment   Sentiment `json:"sentiment"`
	Rating      int       `json:"rating"` // 1-5, 0 when unrated
	Screenshots []string  `json:"screenshots,omitempty"`
	Strategy    string    `json:"strategy,omitempty"`
	Mistakes    []string  `json:"mistakes,omitempty"`
	Lessons     []string  `json:"lessons,omitempty"`
}

// HasTag reports whether the entry carries tag.
func (e *JournalEntry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
