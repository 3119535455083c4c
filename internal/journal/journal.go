// Package journal queries and summarizes trade journal entries.
package journal

import (
	"fmt"
	"sort"
	"time"

	"tradeDashboard/internal/domain"
	"tradeDashboard/internal/ports"
)

const (
	maxRating  = 5
	maxTopTags = 5
	dateLayout = "2006-01-02"
)

// ByTradeID returns the first entry attached to tradeID.
func ByTradeID(entries []domain.JournalEntry, tradeID string) (domain.JournalEntry, bool) {
	for _, e := range entries {
		if e.TradeID == tradeID {
			return e, true
		}
	}
	return domain.JournalEntry{}, false
}

// ByDate returns the entries written for date (YYYY-MM-DD).
func ByDate(entries []domain.JournalEntry, date string) []domain.JournalEntry {
	return where(entries, func(e *domain.JournalEntry) bool { return e.Date == date })
}

// ByTag returns the entries carrying tag.
func ByTag(entries []domain.JournalEntry, tag string) []domain.JournalEntry {
	return where(entries, func(e *domain.JournalEntry) bool { return e.HasTag(tag) })
}

// BySentiment returns the entries with the given sentiment.
func BySentiment(entries []domain.JournalEntry, s domain.Sentiment) []domain.JournalEntry {
	return where(entries, func(e *domain.JournalEntry) bool { return e.Sentiment == s })
}

func where(entries []domain.JournalEntry, keep func(*domain.JournalEntry) bool) []domain.JournalEntry {
	out := make([]domain.JournalEntry, 0)
	for i := range entries {
		if keep(&entries[i]) {
			out = append(out, entries[i])
		}
	}
	return out
}

// AllTags returns every distinct tag, sorted.
func AllTags(entries []domain.JournalEntry) []string {
	seen := make(map[string]struct{})
	for _, e := range entries {
		for _, tag := range e.Tags {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Validate checks the fields a client may send when creating or editing an entry.
func Validate(e *domain.JournalEntry) error {
	if e.TradeID == "" {
		return fmt.Errorf("journal entry without trade id: %w", ports.ErrInvalidRequest)
	}
	if e.Rating < 0 || e.Rating > maxRating {
		return fmt.Errorf("rating %d outside 0-%d: %w", e.Rating, maxRating, ports.ErrInvalidRequest)
	}
	if !e.Sentiment.Valid() {
		return fmt.Errorf("unknown sentiment %q: %w", e.Sentiment, ports.ErrInvalidRequest)
	}
	if e.Date != "" {
		if _, err := time.Parse(dateLayout, e.Date); err != nil {
			return fmt.Errorf("invalid date %q: %w", e.Date, ports.ErrInvalidRequest)
		}
	}
	return nil
}
