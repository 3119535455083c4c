package app

import (
	"context"
	"fmt"
	"time"

	"tradeDashboard/internal/analytics"
	"tradeDashboard/internal/domain"
	"tradeDashboard/internal/ports"
	"tradeDashboard/internal/risk"
	"tradeDashboard/internal/trace"
)

// bundleTTL bounds how long a memoized bundle is served. Period windows and the fee and
// volume series all end at the current time, so a bundle ages even without new trades.
const bundleTTL = time.Minute

// Bundle is every derived view of one trade snapshot for one period.
type Bundle struct {
	Version     uint64        `json:"version"`
	Period      domain.Period `json:"period"`
	GeneratedAt time.Time     `json:"generatedAt"`
	TradeCount  int           `json:"tradeCount"`

	Analytics   analytics.Snapshot          `json:"analytics"`
	Equity      []analytics.EquityPoint     `json:"equity"`
	Daily       []analytics.DailyStats      `json:"daily"`
	Calendar    []analytics.CalendarDay     `json:"calendar"`
	PnLChart    []analytics.PnLChartPoint   `json:"pnlChart"`
	Symbols     []analytics.SymbolStat      `json:"symbols"`
	Time        analytics.TimeBreakdown     `json:"time"`
	OrderTypes  []analytics.OrderTypeStat   `json:"orderTypes"`
	Directional analytics.DirectionalStats  `json:"directional"`
	Fees        analytics.FeeSummary        `json:"fees"`
	Volume      []analytics.VolumeDay       `json:"volume"`
	Allocation  []analytics.AllocationSlice `json:"allocation"`
	Streaks     analytics.StreakInfo        `json:"streaks"`
	Score       analytics.ScoreBreakdown    `json:"score"`
	Risk        risk.Metrics                `json:"risk"`
	Exposure    risk.Exposure               `json:"exposure"`
}

func (s *DashboardService) computeBundle(ctx context.Context, st State, period domain.Period, now time.Time) *Bundle {
	_, span := trace.StartSpan(ctx, "DashboardService.computeBundle")
	defer span.End()

	trades := st.TradesSince(period.Since(now))

	b := &Bundle{
		Version:     st.Version,
		Period:      period,
		GeneratedAt: now,
		TradeCount:  len(trades),
	}
	b.Analytics = analytics.ComputeAnalytics(trades)
	b.Equity = analytics.EquityCurve(trades, s.initialEquity)
	b.Daily = analytics.Daily(trades, s.loc)
	b.Calendar = analytics.CalendarData(b.Daily)
	b.PnLChart = analytics.PnLChartData(b.Daily)
	b.Symbols = analytics.BySymbol(trades)
	b.Time = analytics.ByTime(trades, s.loc)
	b.OrderTypes = analytics.ByOrderType(trades)
	b.Directional = analytics.Directional(trades)
	b.Fees = analytics.Fees(trades, s.windowDays, now, s.loc)
	b.Volume = analytics.VolumeSeries(trades, s.windowDays, now, s.loc)
	b.Allocation = analytics.Allocation(st.Positions, trades, len(st.Positions) == 0)
	b.Streaks = analytics.ComputeStreaks(trades)
	b.Score = analytics.ComputeScore(b.Analytics)
	b.Risk = s.thresholds.Compute(b.Equity, b.Analytics)
	b.Exposure = risk.ComputeExposure(st.Positions)
	return b
}

// Bundle returns the derived views for period, computed at most once per snapshot
// version and bundleTTL interval. Concurrent callers for the same key share one computation.
func (s *DashboardService) Bundle(ctx context.Context, period domain.Period) (*Bundle, error) {
	st := s.Snapshot()
	if period == "" {
		period = st.Preferences.SelectedPeriod
	}
	if !period.Valid() {
		return nil, fmt.Errorf("%w: unknown period %q", ports.ErrInvalidRequest, period)
	}

	now := s.now()
	bucket := now.Truncate(bundleTTL).Unix()
	key := fmt.Sprintf("%d/%d/%s", st.Version, bucket, period)

	s.memoMu.Lock()
	if s.memo == nil || st.Version > s.memoVersion ||
		(st.Version == s.memoVersion && bucket > s.memoBucket) {
		s.memo = make(map[string]*Bundle)
		s.memoVersion = st.Version
		s.memoBucket = bucket
	}
	if b, ok := s.memo[key]; ok {
		s.memoMu.Unlock()
		return b, nil
	}
	s.memoMu.Unlock()

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		b := s.computeBundle(ctx, st, period, now)
		s.memoMu.Lock()
		if s.memoVersion == st.Version && s.memoBucket == bucket {
			s.memo[key] = b
		}
		s.memoMu.Unlock()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug(ctx, "Analytics bundle ready", map[string]interface{}{
		"version": st.Version,
		"period":  period,
		"shared":  shared,
	})
	return v.(*Bundle), nil
}
