package analytics

import (
	"fmt"
	"math"
	"time"
)

// Infinity is how an unbounded ratio is displayed.
const Infinity = "∞"

// FormatRatio renders a ratio with two decimals, or "∞" for +Inf.
func FormatRatio(v float64) string {
	if math.IsInf(v, 1) {
		return Infinity
	}
	if math.IsNaN(v) {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatCurrency renders v in dollars, compacting thousands and millions.
func FormatCurrency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%s$%.2fM", sign, v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%s$%.2fK", sign, v/1_000)
	}
	return fmt.Sprintf("%s$%.2f", sign, v)
}

// FormatPercent renders v with two decimals and a percent sign.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatDuration renders a millisecond duration as "1d 2h", "3h 4m", "5m" or "12s".
func FormatDuration(ms float64) string {
	d := time.Duration(ms) * time.Millisecond
	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%dd %dh", int(d/(24*time.Hour)), int(d%(24*time.Hour)/time.Hour))
	case d >= time.Hour:
		return fmt.Sprintf("%dh %dm", int(d/time.Hour), int(d%time.Hour/time.Minute))
	case d >= time.Minute:
		return fmt.Sprintf("%dm", int(d/time.Minute))
	}
	return fmt.Sprintf("%ds", int(d/time.Second))
}
