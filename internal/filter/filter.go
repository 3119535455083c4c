// Package filter narrows, sorts and pages trade lists for display.
package filter

import (
	"strings"

	"tradeDashboard/internal/domain"
)

// Apply returns the trades that satisfy every constraint set in f, in input order.
// The input slice is never modified.
//
// PnL bounds only apply to trades that carry a PnL: open trades pass through
// MinPnL/MaxPnL untouched so they stay visible while browsing by result.
func Apply(trades []domain.Trade, f domain.TradeFilters) []domain.Trade {
	out := make([]domain.Trade, 0, len(trades))
	query := strings.ToLower(f.SearchQuery)
	for i := range trades {
		if matches(&trades[i], &f, query) {
			out = append(out, trades[i])
		}
	}
	return out
}

// Matches reports whether a single trade satisfies f.
func Matches(t domain.Trade, f domain.TradeFilters) bool {
	return matches(&t, &f, strings.ToLower(f.SearchQuery))
}

func matches(t *domain.Trade, f *domain.TradeFilters, query string) bool {
	if f.DateRange != nil {
		ts := t.Time()
		if ts.Before(f.DateRange.Start) || ts.After(f.DateRange.End) {
			return false
		}
	}
	if len(f.Symbols) > 0 && !contains(f.Symbols, t.Symbol) {
		return false
	}
	if len(f.Sides) > 0 && !contains(f.Sides, t.Side) {
		return false
	}
	if len(f.Markets) > 0 && !contains(f.Markets, t.Market) {
		return false
	}
	if len(f.OrderTypes) > 0 && !contains(f.OrderTypes, t.OrderType) {
		return false
	}
	if len(f.Status) > 0 && !contains(f.Status, t.Status) {
		return false
	}
	if t.PnL != nil {
		if f.MinPnL != nil && *t.PnL < *f.MinPnL {
			return false
		}
		if f.MaxPnL != nil && *t.PnL > *f.MaxPnL {
			return false
		}
	}
	if query != "" &&
		!strings.Contains(strings.ToLower(t.Symbol), query) &&
		!strings.Contains(strings.ToLower(t.ID), query) {
		return false
	}
	return true
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
