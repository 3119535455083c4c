package analytics

// Maximum points per score category.
const (
	MaxWinRateScore      = 25
	MaxProfitFactorScore = 25
	MaxRiskScore         = 20
	MaxConsistencyScore  = 15
	MaxDisciplineScore   = 15
	MaxScore             = MaxWinRateScore + MaxProfitFactorScore + MaxRiskScore + MaxConsistencyScore + MaxDisciplineScore
)

// ScoreBreakdown is the composite trading score.
type ScoreBreakdown struct {
	WinRate      int     `json:"winRate"`
	ProfitFactor int     `json:"profitFactor"`
	Risk         int     `json:"riskManagement"`
	Consistency  int     `json:"consistency"`
	Discipline   int     `json:"discipline"`
	Total        int     `json:"total"`
	Max          int     `json:"max"`
	Percentage   float64 `json:"percentage"`
	Grade        string  `json:"grade"`
	Label        string  `json:"label"`
}

// ComputeScore grades a snapshot on a fixed 100 point rubric.
func ComputeScore(s Snapshot) ScoreBreakdown {
	b := ScoreBreakdown{
		WinRate:      winRateScore(s.WinRate),
		ProfitFactor: profitFactorScore(s.ProfitFactor),
		Risk:         riskScore(safeDiv(s.AvgWin, s.AvgLoss)),
		Consistency:  consistencyScore(s.TotalTrades, s.LongShortRatio),
		Discipline:   disciplineScore(s.Expectancy),
		Max:          MaxScore,
	}
	b.Total = b.WinRate + b.ProfitFactor + b.Risk + b.Consistency + b.Discipline
	b.Percentage = float64(b.Total) / float64(b.Max) * 100
	b.Grade, b.Label = Grade(b.Percentage)
	return b
}

func winRateScore(winRate float64) int {
	switch {
	case winRate >= 60:
		return 25
	case winRate >= 50:
		return 20
	case winRate >= 40:
		return 15
	case winRate > 0:
		return 10
	}
	return 0
}

// +Inf satisfies the top tier.
func profitFactorScore(pf float64) int {
	switch {
	case pf >= 2:
		return 25
	case pf >= 1.5:
		return 20
	case pf >= 1:
		return 15
	case pf > 0:
		return 5
	}
	return 0
}

func riskScore(ratio float64) int {
	switch {
	case ratio >= 2:
		return 20
	case ratio >= 1.5:
		return 15
	case ratio >= 1:
		return 10
	case ratio > 0:
		return 5
	}
	return 0
}

func consistencyScore(totalTrades int, longShortRatio float64) int {
	var score int
	switch {
	case totalTrades >= 50:
		score = 10
	case totalTrades >= 20:
		score = 7
	case totalTrades >= 10:
		score = 5
	}
	switch {
	case longShortRatio >= 0.5 && longShortRatio <= 2:
		score += 5
	case longShortRatio > 0:
		score += 2
	}
	return score
}

func disciplineScore(expectancy float64) int {
	var score int
	if expectancy > 0 {
		score += 10
	}
	if expectancy > 50 {
		score += 5
	}
	return score
}

// Grade maps a score percentage to a letter grade and label.
func Grade(pct float64) (grade, label string) {
	switch {
	case pct >= 90:
		return "A+", "Elite Trader"
	case pct >= 80:
		return "A", "Excellent"
	case pct >= 70:
		return "B+", "Very Good"
	case pct >= 60:
		return "B", "Good"
	case pct >= 50:
		return "C+", "Average"
	case pct >= 40:
		return "C", "Below Average"
	case pct >= 30:
		return "D", "Needs Work"
	}
	return "F", "Critical"
}
