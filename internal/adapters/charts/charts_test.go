package charts

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeDashboard/internal/analytics"
	"tradeDashboard/internal/domain"
)

func TestRender(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
	in := Input{
		Title: "My Desk",
		Curve: []analytics.EquityPoint{
			{Timestamp: ts, Equity: 10000},
			{Timestamp: ts + 3_600_000, Equity: 10250},
			{Timestamp: ts + 7_200_000, Equity: 10100, Drawdown: 150, DrawdownPercent: 1.4634},
		},
		Daily: []analytics.PnLChartPoint{
			{Date: "2024-03-01", PnL: 250, Cumulative: 250},
			{Date: "2024-03-02", PnL: -150, Cumulative: 100},
		},
		Location: time.UTC,
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, in))

	html := buf.String()
	assert.Contains(t, html, "<title>My Desk</title>")
	assert.Contains(t, html, "Equity Curve")
	assert.Contains(t, html, "Drawdown %")
	assert.Contains(t, html, "Daily PnL")
	assert.Contains(t, html, "Cumulative")
	assert.Contains(t, html, "2024-03-02")
	assert.Contains(t, html, colorLoss)
	assert.Contains(t, html, colorBgDark)
}

func TestRender_EmptyAndLightTheme(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Input{Theme: domain.ThemeLight}))

	html := buf.String()
	assert.Contains(t, html, "Trading Dashboard")
	assert.Contains(t, html, "no closed trades")
	assert.Contains(t, html, colorBgLight)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, round2(1.2349))
	assert.Equal(t, -1.24, round2(-1.235001))
	assert.Equal(t, 0.0, round2(0.001))
}
