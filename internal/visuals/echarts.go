// Package visuals renders aggregation results as interactive HTML charts and as
// Mermaid text charts.
package visuals

import (
	"fmt"
	"io"

	"prodstats/internal/stats"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// NoDataTitle is shown when the selected period has no counts.
const NoDataTitle = "No production data found for this period"

// NewBarChart builds a horizontal stacked bar chart of a count matrix: one bar per
// category, one stacked segment per operation.
func NewBarChart(title, subtitle string, axis stats.Axis, matrix stats.CountMatrix, operations []string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Theme:     types.ThemeWesteros,
			Width:     "100%",
			Height:    fmt.Sprintf("%dpx", chartHeight(len(matrix))),
		}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true, Type: "scroll", Orient: "horizontal", Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Count", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: axis.Label(), Type: "category"}),
	)

	categories := make([]string, len(matrix))
	for i, row := range matrix {
		categories[i] = row.Category
	}
	bar.SetXAxis(categories)

	for _, op := range operations {
		data := make([]opts.BarData, len(matrix))
		for i, row := range matrix {
			data[i] = opts.BarData{Value: row.Counts[op]}
		}
		bar.AddSeries(op, data,
			charts.WithBarChartOpts(opts.BarChart{Stack: "stack"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: OperationColor(op)}),
			charts.WithLabelOpts(opts.Label{
				Show:      true,
				Position:  "inside",
				Formatter: opts.FuncOpts(LabelFormatter()),
			}),
		)
	}
	bar.XYReversal()
	return bar
}

// chartHeight grows with the number of categories so bars stay readable.
func chartHeight(rows int) int {
	return max(240, 120+rows*36)
}

// RenderHTML writes a standalone HTML page for res. Daily and weekly views render one
// chart; the per-day view renders one chart per day of the week.
func RenderHTML(w io.Writer, res stats.Result, operations []string) error {
	period := stats.PeriodLabel(res.DateKey, res.Granularity)
	title := fmt.Sprintf("Production by %s", res.Axis.Label())

	if !res.HasData() {
		return NewBarChart(NoDataTitle, period, res.Axis, stats.CountMatrix{}, operations).Render(w)
	}

	if res.Granularity != stats.WeeklyPerDay {
		return NewBarChart(title, period, res.Axis, res.Matrix, operations).Render(w)
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("%s (%s)", title, period)
	page.SetLayout(components.PageFlexLayout)
	for _, day := range res.Days {
		subtitle := fmt.Sprintf("%s, %s", day.Weekday, stats.PeriodLabel(day.DateKey, stats.Daily))
		dayTitle := day.Weekday
		if len(day.Matrix) == 0 {
			dayTitle = "No data"
		}
		page.AddCharts(NewBarChart(dayTitle, subtitle, res.Axis, day.Matrix, operations))
	}
	return page.Render(w)
}
