package filter

import (
	"errors"
	"fmt"

	"tradeDashboard/internal/domain"
)

// DefaultPageSize matches the trade table's default rows per page.
const DefaultPageSize = 20

// ErrInvalidPageSize is returned for a negative page size.
var ErrInvalidPageSize = errors.New("page size must not be negative")

// Page is one slice of a paginated trade list.
type Page struct {
	Items      []domain.Trade `json:"items"`
	Page       int            `json:"page"` // 1-based
	PageSize   int            `json:"pageSize"`
	TotalItems int            `json:"totalItems"`
	TotalPages int            `json:"totalPages"`
}

// Paginate returns page (1-based) of trades. A zero pageSize selects DefaultPageSize,
// a page below 1 is treated as 1, and a page past the end yields no items.
func Paginate(trades []domain.Trade, page, pageSize int) (Page, error) {
	if pageSize < 0 {
		return Page{}, fmt.Errorf("paginate with size %d: %w", pageSize, ErrInvalidPageSize)
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(trades)
	p := Page{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: (total + pageSize - 1) / pageSize,
		Items:      []domain.Trade{},
	}

	start := (page - 1) * pageSize
	if start >= total {
		return p, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	p.Items = append(p.Items, trades[start:end]...)
	return p, nil
}
