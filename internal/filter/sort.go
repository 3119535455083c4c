package filter

import (
	"fmt"
	"sort"

	"tradeDashboard/internal/domain"
)

// SortField names a sortable trade table column.
type SortField string

const (
	SortByTimestamp  SortField = "timestamp"
	SortBySymbol     SortField = "symbol"
	SortBySize       SortField = "size"
	SortByEntryPrice SortField = "entryPrice"
	SortByPnL        SortField = "pnl"
	SortByFee        SortField = "fee"
)

// ParseSortField validates a column name. An empty name selects SortByTimestamp.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(s); f {
	case "":
		return SortByTimestamp, nil
	case SortByTimestamp, SortBySymbol, SortBySize, SortByEntryPrice, SortByPnL, SortByFee:
		return f, nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// Sort returns a sorted copy of trades. Undefined PnL sorts as zero.
func Sort(trades []domain.Trade, field SortField, desc bool) []domain.Trade {
	out := make([]domain.Trade, len(trades))
	copy(out, trades)

	less := func(a, b *domain.Trade) bool {
		switch field {
		case SortBySymbol:
			return a.Symbol < b.Symbol
		case SortBySize:
			return a.Size < b.Size
		case SortByEntryPrice:
			return a.EntryPrice < b.EntryPrice
		case SortByPnL:
			return a.PnLOrZero() < b.PnLOrZero()
		case SortByFee:
			return a.Fee < b.Fee
		default:
			return a.Timestamp < b.Timestamp
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(&out[j], &out[i])
		}
		return less(&out[i], &out[j])
	})
	return out
}
