package domain

import "time"

// Theme is the dashboard color scheme.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Period is the analytics lookback window selected by the user.
type Period string

const (
	Period1D  Period = "1D"
	Period1W  Period = "1W"
	Period1M  Period = "1M"
	Period3M  Period = "3M"
	Period1Y  Period = "1Y"
	PeriodAll Period = "ALL"
)

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	switch p {
	case Period1D, Period1W, Period1M, Period3M, Period1Y, PeriodAll:
		return true
	}
	return false
}

// Since returns the start of the window ending at now. ALL returns the zero time.
func (p Period) Since(now time.Time) time.Time {
	switch p {
	case Period1D:
		return now.AddDate(0, 0, -1)
	case Period1W:
		return now.AddDate(0, 0, -7)
	case Period1M:
		return now.AddDate(0, -1, 0)
	case Period3M:
		return now.AddDate(0, -3, 0)
	case Period1Y:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

// Preferences is the subset of dashboard state that survives a restart.
type Preferences struct {
	SidebarCollapsed bool   `json:"sidebarCollapsed" yaml:"sidebar_collapsed"`
	Theme            Theme  `json:"theme" yaml:"theme"`
	SelectedPeriod   Period `json:"selectedPeriod" yaml:"selected_period"`
}

// DefaultPreferences returns the preferences used when nothing was persisted yet.
func DefaultPreferences() Preferences {
	return Preferences{
		SidebarCollapsed: false,
		Theme:            ThemeDark,
		SelectedPeriod:   Period1M,
	}
}
