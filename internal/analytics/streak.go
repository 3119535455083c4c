package analytics

import "tradeDashboard/internal/domain"

// StreakType classifies a run of closed trades.
type StreakType string

const (
	StreakWin  StreakType = "win"
	StreakLoss StreakType = "loss"
	StreakNone StreakType = "none"
)

// maxRecentResults caps the sparkline of recent outcomes.
const maxRecentResults = 10

// StreakInfo describes winning and losing runs.
type StreakInfo struct {
	CurrentType       StreakType   `json:"currentType"`
	CurrentCount      int          `json:"currentCount"`
	CurrentPnL        float64      `json:"currentPnl"`
	LongestWinStreak  int          `json:"longestWinStreak"`
	LongestLossStreak int          `json:"longestLossStreak"`
	LongestWinPnL     float64      `json:"longestWinPnl"`
	LongestLossPnL    float64      `json:"longestLossPnl"`
	Recent            []StreakType `json:"recent"` // most recent first
}

// ComputeStreaks detects runs over closed trades with PnL. A trade with pnl > 0 is a
// win, anything else is a loss.
func ComputeStreaks(trades []domain.Trade) StreakInfo {
	info := StreakInfo{CurrentType: StreakNone, Recent: []StreakType{}}

	chrono := closedChronological(trades)
	if len(chrono) == 0 {
		return info
	}

	recentFirst := make([]domain.Trade, len(chrono))
	for i := range chrono {
		recentFirst[i] = chrono[len(chrono)-1-i]
	}

	info.CurrentType = outcome(recentFirst[0])
	for _, t := range recentFirst {
		if outcome(t) != info.CurrentType {
			break
		}
		info.CurrentCount++
		info.CurrentPnL += *t.PnL
	}

	var run int
	var runPnL float64
	var runType StreakType
	for _, t := range chrono {
		o := outcome(t)
		if o == runType {
			run++
			runPnL += *t.PnL
			continue
		}
		info.recordRun(runType, run, runPnL)
		runType = o
		run = 1
		runPnL = *t.PnL
	}
	info.recordRun(runType, run, runPnL)

	limit := len(recentFirst)
	if limit > maxRecentResults {
		limit = maxRecentResults
	}
	for _, t := range recentFirst[:limit] {
		info.Recent = append(info.Recent, outcome(t))
	}
	return info
}

// recordRun keeps the longest run per type. Only a strictly longer run replaces the stored one.
func (s *StreakInfo) recordRun(t StreakType, length int, pnl float64) {
	switch t {
	case StreakWin:
		if length > s.LongestWinStreak {
			s.LongestWinStreak = length
			s.LongestWinPnL = pnl
		}
	case StreakLoss:
		if length > s.LongestLossStreak {
			s.LongestLossStreak = length
			s.LongestLossPnL = pnl
		}
	}
}

func outcome(t domain.Trade) StreakType {
	if t.PnLOrZero() > 0 {
		return StreakWin
	}
	return StreakLoss
}
