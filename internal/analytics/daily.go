package analytics

import (
	"math"
	"sort"
	"time"

	"tradeDashboard/internal/domain"
)

// DateLayout is the calendar-day key format.
const DateLayout = "2006-01-02"

// DailyStats aggregates every trade that falls on one calendar day.
type DailyStats struct {
	Date    string  `json:"date"`
	PnL     float64 `json:"pnl"`
	Trades  int     `json:"trades"`
	Volume  float64 `json:"volume"`
	Fees    float64 `json:"fees"`
	WinRate float64 `json:"winRate"`
}

// CalendarDay is one cell of the PnL heatmap.
type CalendarDay struct {
	Date      string  `json:"date"`
	PnL       float64 `json:"pnl"`
	Trades    int     `json:"trades"`
	Intensity int     `json:"intensity"` // -4..4, sign follows PnL
}

// PnLChartPoint is one bar of the daily PnL chart with its running total.
type PnLChartPoint struct {
	Date       string  `json:"date"`
	PnL        float64 `json:"pnl"`
	Cumulative float64 `json:"cumulative"`
}

// DayKey returns the calendar day of ts (epoch ms) in loc. A nil loc means time.Local.
func DayKey(ts int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ts).In(loc).Format(DateLayout)
}

// Daily buckets all trades, open or closed, by calendar day in loc.
// The win rate denominator is every trade in the bucket, not only closed ones.
func Daily(trades []domain.Trade, loc *time.Location) []DailyStats {
	if len(trades) == 0 {
		return []DailyStats{}
	}

	type bucket struct {
		DailyStats
		wins int
	}
	buckets := make(map[string]*bucket)

	for i := range trades {
		t := &trades[i]
		key := DayKey(t.Timestamp, loc)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{DailyStats: DailyStats{Date: key}}
			buckets[key] = b
		}
		b.Trades++
		b.Volume += t.Volume()
		b.Fees += t.Fee
		if t.PnL != nil {
			b.PnL += *t.PnL
			if *t.PnL > 0 {
				b.wins++
			}
		}
	}

	stats := make([]DailyStats, 0, len(buckets))
	for _, b := range buckets {
		b.WinRate = percent(b.wins, b.Trades)
		stats = append(stats, b.DailyStats)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Date < stats[j].Date })
	return stats
}

// CalendarData maps daily stats onto heatmap intensities.
func CalendarData(daily []DailyStats) []CalendarDay {
	days := make([]CalendarDay, 0, len(daily))
	for _, d := range daily {
		intensity := Intensity(d.PnL)
		days = append(days, CalendarDay{
			Date:      d.Date,
			PnL:       d.PnL,
			Trades:    d.Trades,
			Intensity: intensity,
		})
	}
	return days
}

// Intensity buckets |pnl| into 0..4 and carries the sign of pnl.
func Intensity(pnl float64) int {
	abs := math.Abs(pnl)
	var level int
	switch {
	case abs > 2000:
		level = 4
	case abs > 1000:
		level = 3
	case abs > 500:
		level = 2
	case abs > 0:
		level = 1
	}
	if pnl < 0 {
		return -level
	}
	return level
}

// PnLChartData adds a running cumulative PnL to the daily series.
func PnLChartData(daily []DailyStats) []PnLChartPoint {
	points := make([]PnLChartPoint, 0, len(daily))
	var cumulative float64
	for _, d := range daily {
		cumulative += d.PnL
		points = append(points, PnLChartPoint{Date: d.Date, PnL: d.PnL, Cumulative: cumulative})
	}
	return points
}
