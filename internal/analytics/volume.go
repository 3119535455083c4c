package analytics

import (
	"sort"
	"time"

	"tradeDashboard/internal/domain"
)

// VolumeDay is one day of the volume chart.
type VolumeDay struct {
	Date   string  `json:"date"`
	Volume float64 `json:"volume"`
	Fees   float64 `json:"fees"`
	Trades int     `json:"trades"`
}

// VolumeSeries returns per-day volume, fees and trade count for the last days
// calendar days ending at now. Days without trades are present with zeros.
func VolumeSeries(trades []domain.Trade, days int, now time.Time, loc *time.Location) []VolumeDay {
	if loc == nil {
		loc = time.Local
	}
	keys := windowKeys(days, now, loc)
	index := make(map[string]int, len(keys))
	series := make([]VolumeDay, len(keys))
	for i, k := range keys {
		series[i].Date = k
		index[k] = i
	}
	for i := range trades {
		t := &trades[i]
		idx, ok := index[DayKey(t.Timestamp, loc)]
		if !ok {
			continue
		}
		series[idx].Volume += t.Volume()
		series[idx].Fees += t.Fee
		series[idx].Trades++
	}
	return series
}

// AllocationSlice is one symbol's share of the portfolio.
type AllocationSlice struct {
	Symbol  string  `json:"symbol"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// Allocation groups value per symbol, largest first. With byVolume the value is
// traded volume; otherwise it is open position notional at the current price.
func Allocation(positions []domain.Position, trades []domain.Trade, byVolume bool) []AllocationSlice {
	values := make(map[string]float64)
	if byVolume {
		for i := range trades {
			values[trades[i].Symbol] += trades[i].Volume()
		}
	} else {
		for i := range positions {
			values[positions[i].Symbol] += positions[i].Notional()
		}
	}

	var total float64
	for _, v := range values {
		total += v
	}
	slices := make([]AllocationSlice, 0, len(values))
	for sym, v := range values {
		slices = append(slices, AllocationSlice{Symbol: sym, Value: v, Percent: safeDiv(v, total) * 100})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Value != slices[j].Value {
			return slices[i].Value > slices[j].Value
		}
		return slices[i].Symbol < slices[j].Symbol
	})
	return slices
}
