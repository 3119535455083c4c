// Package charts renders the dashboard's equity, drawdown and daily PnL charts as a
// standalone HTML page using go-echarts.
package charts

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"tradeDashboard/internal/analytics"
	"tradeDashboard/internal/domain"
)

const (
	colorProfit        = "#34d399"
	colorLoss          = "#f87171"
	colorEquity        = "#60a5fa"
	colorCumulative    = "#facc15"
	colorTextPrimary   = "#e2e8f0"
	colorTextSecondary = "#94a3b8"
	colorBgDark        = "#060c1b"
	colorBgLight       = "#ffffff"
	colorTextDark      = "#1e293b"

	chartWidth  = "1200px"
	chartHeight = "360px"
	axisLayout  = "01-02 15:04"
)

// Input is everything the dashboard page draws.
type Input struct {
	Title    string
	Curve    []analytics.EquityPoint
	Daily    []analytics.PnLChartPoint
	Theme    domain.Theme
	Location *time.Location
}

type palette struct {
	background string
	text       string
	muted      string
}

func paletteFor(theme domain.Theme) palette {
	if theme == domain.ThemeLight {
		return palette{background: colorBgLight, text: colorTextDark, muted: colorTextSecondary}
	}
	return palette{background: colorBgDark, text: colorTextPrimary, muted: colorTextSecondary}
}

// Render writes the chart page to w. Empty series still produce a valid page with empty charts.
func Render(w io.Writer, in Input) error {
	if in.Location == nil {
		in.Location = time.Local
	}
	if in.Title == "" {
		in.Title = "Trading Dashboard"
	}
	p := paletteFor(in.Theme)

	page := components.NewPage()
	page.SetPageTitle(in.Title)
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		equityChart(in, p),
		drawdownChart(in, p),
		dailyPnLChart(in, p),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render chart page: %w", err)
	}
	return nil
}

func baseOptions(title, subtitle string, p palette) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme:           types.ThemeWesteros,
			Width:           chartWidth,
			Height:          chartHeight,
			BackgroundColor: p.background,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:         title,
			Subtitle:      subtitle,
			Left:          "left",
			TitleStyle:    &opts.TextStyle{Color: p.text, FontSize: 16},
			SubtitleStyle: &opts.TextStyle{Color: p.muted},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10", TextStyle: &opts.TextStyle{Color: p.muted}}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Color: p.muted},
			SplitLine: &opts.SplitLine{Show: opts.Bool(false)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale:     opts.Bool(true),
			AxisLabel: &opts.AxisLabel{Color: p.muted},
			SplitLine: &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: p.muted, Opacity: opts.Float(0.15)}},
		}),
	}
}

func curveAxis(curve []analytics.EquityPoint, loc *time.Location) []string {
	axis := make([]string, len(curve))
	for i, pt := range curve {
		axis[i] = time.UnixMilli(pt.Timestamp).In(loc).Format(axisLayout)
	}
	return axis
}

func equityChart(in Input, p palette) *charts.Line {
	subtitle := "no closed trades"
	if n := len(in.Curve); n > 0 {
		subtitle = fmt.Sprintf("%s → %s",
			analytics.FormatCurrency(in.Curve[0].Equity),
			analytics.FormatCurrency(in.Curve[n-1].Equity))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(baseOptions("Equity Curve", subtitle, p)...)

	data := make([]opts.LineData, len(in.Curve))
	for i, pt := range in.Curve {
		data[i] = opts.LineData{Value: round2(pt.Equity)}
	}
	line.SetXAxis(curveAxis(in.Curve, in.Location))
	line.AddSeries("Equity", data,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: colorEquity, Width: 2}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Color: colorEquity, Opacity: opts.Float(0.2)}),
	)
	return line
}

func drawdownChart(in Input, p palette) *charts.Line {
	var maxDD float64
	data := make([]opts.LineData, len(in.Curve))
	for i, pt := range in.Curve {
		if pt.DrawdownPercent > maxDD {
			maxDD = pt.DrawdownPercent
		}
		// Plotted below zero so the area hangs from the axis.
		data[i] = opts.LineData{Value: -round2(pt.DrawdownPercent)}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(baseOptions("Drawdown %", "max "+analytics.FormatPercent(maxDD), p)...)
	line.SetXAxis(curveAxis(in.Curve, in.Location))
	line.AddSeries("Drawdown", data,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: colorLoss, Width: 1}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Color: colorLoss, Opacity: opts.Float(0.3)}),
	)
	return line
}

func dailyPnLChart(in Input, p palette) *charts.Bar {
	subtitle := "no trades"
	if n := len(in.Daily); n > 0 {
		subtitle = "cumulative " + analytics.FormatCurrency(in.Daily[n-1].Cumulative)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOptions("Daily PnL", subtitle, p)...)

	axis := make([]string, len(in.Daily))
	bars := make([]opts.BarData, len(in.Daily))
	cumulative := make([]opts.LineData, len(in.Daily))
	for i, d := range in.Daily {
		axis[i] = d.Date
		color := colorProfit
		if d.PnL < 0 {
			color = colorLoss
		}
		bars[i] = opts.BarData{
			Value:     round2(d.PnL),
			ItemStyle: &opts.ItemStyle{Color: color, Opacity: opts.Float(0.8)},
		}
		cumulative[i] = opts.LineData{Value: round2(d.Cumulative)}
	}

	bar.SetXAxis(axis)
	bar.AddSeries("Daily PnL", bars)

	line := charts.NewLine()
	line.SetXAxis(axis)
	line.AddSeries("Cumulative", cumulative,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: colorCumulative, Width: 2}),
	)
	bar.Overlap(line)
	return bar
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
