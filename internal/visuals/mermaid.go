package visuals

import (
	"fmt"
	"math"
	"strings"

	"prodstats/internal/stats"
)

// GenerateTotalsChart creates a Mermaid xychart-beta bar chart of the per-category
// totals of a daily or weekly view. For the per-day view it charts daily totals.
func GenerateTotalsChart(res stats.Result) string {
	if !res.HasData() {
		return ""
	}
	if res.Granularity == stats.WeeklyPerDay {
		return generateWeekdayChart(res)
	}

	labels := make([]string, 0, len(res.Matrix))
	values := make([]string, 0, len(res.Matrix))
	maxVal := 0
	for _, row := range res.Matrix {
		labels = append(labels, quote(row.Category))
		values = append(values, fmt.Sprintf("%d", row.Total))
		maxVal = max(maxVal, row.Total)
	}

	title := fmt.Sprintf("Production by %s (%s)", res.Axis.Label(), stats.PeriodLabel(res.DateKey, res.Granularity))
	return barChart(title, labels, values, "Operations", maxVal)
}

func generateWeekdayChart(res stats.Result) string {
	labels := make([]string, 0, len(res.Days))
	values := make([]string, 0, len(res.Days))
	maxVal := 0
	for _, day := range res.Days {
		total := day.Matrix.Total()
		labels = append(labels, quote(day.Weekday))
		values = append(values, fmt.Sprintf("%d", total))
		maxVal = max(maxVal, total)
	}

	title := fmt.Sprintf("Daily Production by %s (%s)", res.Axis.Label(), stats.PeriodLabel(res.DateKey, res.Granularity))
	return barChart(title, labels, values, "Operations", maxVal)
}

func barChart(title string, labels, values []string, yLabel string, maxVal int) string {
	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %s\n", quote(title)))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis %s 0 --> %d\n", quote(yLabel), maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// quote wraps a label for Mermaid; embedded double quotes would end the string early.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "'") + `"`
}
