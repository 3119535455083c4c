package analytics

import (
	"time"

	"tradeDashboard/internal/domain"
)

// TimeBucket holds performance for one hour, weekday or session.
type TimeBucket struct {
	Label   string  `json:"label"`
	Trades  int     `json:"trades"`
	PnL     float64 `json:"pnl"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"winRate"`
}

// TimeBreakdown is the time-of-trade view over closed trades with PnL.
type TimeBreakdown struct {
	Hourly    []TimeBucket `json:"hourly"`   // 24 entries, index = hour
	Weekday   []TimeBucket `json:"weekday"`  // 7 entries, Sun..Sat
	Sessions  []TimeBucket `json:"sessions"` // Asia, Europe, US
	BestHour  *TimeBucket  `json:"bestHour,omitempty"`
	WorstHour *TimeBucket  `json:"worstHour,omitempty"`
}

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Trading sessions by local hour: Asia [0,8), Europe [8,16), US [16,24).
var sessionNames = [3]string{"Asia", "Europe", "US"}

func sessionIndex(hour int) int {
	switch {
	case hour < 8:
		return 0
	case hour < 16:
		return 1
	default:
		return 2
	}
}

// ByTime buckets closed trades with PnL by hour of day, weekday and session in loc.
// Win rate is wins over trades in the same bucket.
func ByTime(trades []domain.Trade, loc *time.Location) TimeBreakdown {
	if loc == nil {
		loc = time.Local
	}

	out := TimeBreakdown{
		Hourly:   make([]TimeBucket, 24),
		Weekday:  make([]TimeBucket, 7),
		Sessions: make([]TimeBucket, 3),
	}
	for h := range out.Hourly {
		out.Hourly[h].Label = time.Date(2000, 1, 1, h, 0, 0, 0, time.UTC).Format("15:04")
	}
	for d := range out.Weekday {
		out.Weekday[d].Label = weekdayNames[d]
	}
	for s := range out.Sessions {
		out.Sessions[s].Label = sessionNames[s]
	}

	for i := range trades {
		t := &trades[i]
		if !t.IsClosedWithPnL() {
			continue
		}
		ts := t.Time().In(loc)
		pnl := *t.PnL
		addToBucket(&out.Hourly[ts.Hour()], pnl)
		addToBucket(&out.Weekday[int(ts.Weekday())], pnl)
		addToBucket(&out.Sessions[sessionIndex(ts.Hour())], pnl)
	}

	for _, buckets := range [][]TimeBucket{out.Hourly, out.Weekday, out.Sessions} {
		for i := range buckets {
			buckets[i].WinRate = percent(buckets[i].Wins, buckets[i].Trades)
		}
	}

	for i := range out.Hourly {
		h := out.Hourly[i]
		if h.Trades == 0 {
			continue
		}
		if out.BestHour == nil || h.PnL > out.BestHour.PnL {
			best := h
			out.BestHour = &best
		}
		if out.WorstHour == nil || h.PnL < out.WorstHour.PnL {
			worst := h
			out.WorstHour = &worst
		}
	}
	return out
}

func addToBucket(b *TimeBucket, pnl float64) {
	b.Trades++
	b.PnL += pnl
	if pnl > 0 {
		b.Wins++
	}
}
