// Package export renders trade lists as CSV, JSON and a plain-text performance report.
package export

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"tradeDashboard/internal/domain"

	"github.com/shopspring/decimal"
)

// DateTimeLayout is the timestamp format used in every export.
const DateTimeLayout = "2006-01-02 15:04:05"

const csvDecimals = 6

var csvHeader = []string{
	"ID", "Date", "Symbol", "Market", "Side", "Order Type", "Size", "Entry Price", "Exit Price",
	"Fee", "Fee Type", "Rebate", "PnL", "Status", "Leverage", "Duration (ms)",
}

// WriteCSV writes one header row and one row per trade. Header cells are bare, every data
// cell is double-quoted. Timestamps are rendered in loc (nil means time.Local).
func WriteCSV(w io.Writer, trades []domain.Trade, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.Join(csvHeader, ","))
	bw.WriteByte('\n')

	for i := range trades {
		for j, cell := range csvRow(&trades[i], loc) {
			if j > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(quote(cell))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func csvRow(t *domain.Trade, loc *time.Location) []string {
	feeType := "UNKNOWN"
	if t.FeeType != nil && *t.FeeType != "" {
		feeType = string(*t.FeeType)
	}
	rebate := "0"
	if t.Rebate != nil {
		rebate = fixed(*t.Rebate, csvDecimals)
	}
	leverage := ""
	if t.Leverage != nil && *t.Leverage != 0 {
		leverage = strconv.Itoa(*t.Leverage)
	}
	duration := ""
	if t.Duration != nil && *t.Duration != 0 {
		duration = strconv.FormatInt(*t.Duration, 10)
	}

	return []string{
		t.ID,
		t.Time().In(loc).Format(DateTimeLayout),
		t.Symbol,
		string(t.Market),
		string(t.Side),
		string(t.OrderType),
		fixed(t.Size, csvDecimals),
		fixed(t.EntryPrice, csvDecimals),
		optionalFixed(t.ExitPrice, csvDecimals),
		fixed(t.Fee, csvDecimals),
		feeType,
		rebate,
		optionalFixed(t.PnL, csvDecimals),
		string(t.Status),
		leverage,
		duration,
	}
}

func quote(cell string) string {
	return `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
}

func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

func optionalFixed(v *float64, places int32) string {
	if v == nil {
		return ""
	}
	return fixed(*v, places)
}
