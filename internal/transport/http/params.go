package httpapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tradeDashboard/internal/app"
	"tradeDashboard/internal/domain"
	"tradeDashboard/internal/filter"
	"tradeDashboard/internal/ports"
)

const dateOnly = "2006-01-02"

var filterParams = []string{"symbol", "side", "market", "orderType", "status", "from", "to", "minPnl", "maxPnl", "q"}

// parseTradeQuery reads filters, sorting and paging from the query string.
// Bare dates are read in loc.
func parseTradeQuery(c *gin.Context, loc *time.Location) (app.TradeQuery, error) {
	var q app.TradeQuery
	filters, err := parseFilters(c, loc)
	if err != nil {
		return q, err
	}
	q.Filters = filters

	if raw := c.Query("sort"); raw != "" {
		if q.SortBy, err = filter.ParseSortField(raw); err != nil {
			return q, fmt.Errorf("%w: %v", ports.ErrInvalidRequest, err)
		}
		q.Desc = c.DefaultQuery("order", "desc") != "asc"
	}

	if q.Page, err = intParam(c, "page"); err != nil {
		return q, err
	}
	if q.PageSize, err = intParam(c, "pageSize"); err != nil {
		return q, err
	}
	return q, nil
}

// parseFilters returns nil when no filter parameter is present, so the active
// filters apply. Bare from/to dates are calendar days in loc.
func parseFilters(c *gin.Context, loc *time.Location) (*domain.TradeFilters, error) {
	present := false
	for _, p := range filterParams {
		if _, ok := c.GetQuery(p); ok {
			present = true
			break
		}
	}
	if !present {
		return nil, nil
	}

	f := &domain.TradeFilters{
		Symbols:     listParam(c, "symbol"),
		SearchQuery: c.Query("q"),
	}
	for _, s := range listParam(c, "side") {
		side := domain.TradeSide(strings.ToUpper(s))
		if !side.Valid() {
			return nil, fmt.Errorf("%w: unknown side %q", ports.ErrInvalidRequest, s)
		}
		f.Sides = append(f.Sides, side)
	}
	for _, s := range listParam(c, "market") {
		f.Markets = append(f.Markets, domain.MarketType(strings.ToUpper(s)))
	}
	for _, s := range listParam(c, "orderType") {
		f.OrderTypes = append(f.OrderTypes, domain.OrderType(strings.ToUpper(s)))
	}
	for _, s := range listParam(c, "status") {
		f.Status = append(f.Status, domain.TradeStatus(strings.ToUpper(s)))
	}

	var err error
	if f.MinPnL, err = floatParam(c, "minPnl"); err != nil {
		return nil, err
	}
	if f.MaxPnL, err = floatParam(c, "maxPnl"); err != nil {
		return nil, err
	}

	from, to := c.Query("from"), c.Query("to")
	if from != "" || to != "" {
		dr := &domain.DateRange{End: time.Now()}
		if from != "" {
			if dr.Start, err = parseTime(from, false, loc); err != nil {
				return nil, err
			}
		}
		if to != "" {
			if dr.End, err = parseTime(to, true, loc); err != nil {
				return nil, err
			}
		}
		f.DateRange = dr
	}
	return f, nil
}

// listParam accepts both repeated parameters and comma separated values.
func listParam(c *gin.Context, name string) []string {
	var out []string
	for _, raw := range c.QueryArray(name) {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func intParam(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ports.ErrInvalidRequest, name)
	}
	return v, nil
}

func floatParam(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", ports.ErrInvalidRequest, name)
	}
	return &v, nil
}

// parseTime accepts RFC 3339 or a bare date in loc (nil means time.Local).
// A bare end date covers the whole day.
func parseTime(raw string, endOfDay bool, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dateOnly, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ports.ErrInvalidRequest, raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
