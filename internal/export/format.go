package export

import (
	"fmt"
	"io"
	"time"

	"tradeDashboard/internal/domain"
	"tradeDashboard/internal/ports"
)

// Format selects an export representation.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatReport Format = "report"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatJSON, FormatReport:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q: %w", s, ports.ErrInvalidRequest)
}

// Extension is the file extension for f.
func (f Format) Extension() string {
	if f == FormatReport {
		return "txt"
	}
	return string(f)
}

// ContentType is the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// BaseName is the default file name stem for f.
func (f Format) BaseName() string {
	if f == FormatReport {
		return "report"
	}
	return "trades"
}

// Filename returns base-YYYY-MM-DD.ext using now's calendar date.
func Filename(base, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", base, now.Format("2006-01-02"), ext)
}

// Write renders trades in format f. now stamps the report header; loc controls trade dates.
func Write(w io.Writer, f Format, trades []domain.Trade, loc *time.Location, now time.Time) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, trades, loc)
	case FormatJSON:
		return WriteJSON(w, trades, loc)
	case FormatReport:
		return WriteReport(w, trades, now)
	}
	return fmt.Errorf("unknown export format %q: %w", f, ports.ErrInvalidRequest)
}
