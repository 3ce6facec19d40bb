package tui

import (
	"fmt"
	"strings"

	"prodstats/internal/dashboard"
	"prodstats/internal/stats"
	"prodstats/internal/visuals"
)

const barRune = "█"

// View renders the model (required by tea.Model interface).
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	switch {
	case m.state.Loading:
		b.WriteString(mutedStyle.Render("Loading " + m.state.FileName + "..."))
	case !m.state.HasData():
		b.WriteString(mutedStyle.Render("No data loaded. Press s for sample data."))
	default:
		b.WriteString(m.bodyView())
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) headerView() string {
	s := m.state
	title := titleStyle.Render("Production Statistics")
	if s.FileName != "" {
		title += mutedStyle.Render("  " + s.FileName)
	}

	nav := fmt.Sprintf("%s  %s  %s",
		navArrow("◀", s.CanPrev()),
		headerStyle.Render(s.PeriodLabel()),
		navArrow("▶", s.CanNext()))
	settings := mutedStyle.Render(fmt.Sprintf("by %s · %s · %s", s.Axis.Label(), s.Granularity, s.ViewType))
	return title + "\n" + nav + "  " + settings + "\n"
}

func navArrow(arrow string, enabled bool) string {
	if enabled {
		return headerStyle.Render(arrow)
	}
	return mutedStyle.Render(arrow)
}

func (m Model) bodyView() string {
	res := m.state.Result()
	ops := m.state.Dataset.Operations
	if !res.HasData() {
		return mutedStyle.Render(visuals.NoDataTitle)
	}

	if res.Granularity == stats.WeeklyPerDay {
		panels := make([]string, 0, len(res.Days))
		for _, day := range res.Days {
			title := headerStyle.Render(fmt.Sprintf("%s %s", day.Weekday, day.DateKey))
			body := mutedStyle.Render("No data")
			if len(day.Matrix) > 0 {
				body = renderBars(day.Matrix, ops, m.width-6)
			}
			panels = append(panels, panelStyle.Render(title+"\n"+body))
		}
		return strings.Join(panels, "\n")
	}

	body := renderBars(res.Matrix, ops, m.width-4)
	if m.state.ViewType == dashboard.ViewTable {
		body = renderTable(res.Matrix, ops)
	}
	return panelStyle.Render(legend(ops) + "\n" + body)
}

func legend(ops []string) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = operationStyle(op).Render(barRune) + " " + op
	}
	return strings.Join(parts, "  ")
}

// renderBars draws one horizontal stacked bar per category, scaled to width.
func renderBars(matrix stats.CountMatrix, ops []string, width int) string {
	labelWidth := 0
	maxTotal := 0
	for _, row := range matrix {
		labelWidth = max(labelWidth, len([]rune(row.Category)))
		maxTotal = max(maxTotal, row.Total)
	}
	barWidth := max(10, width-labelWidth-8)

	var b strings.Builder
	for i, row := range matrix {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%-*s ", labelWidth, row.Category)
		for _, op := range ops {
			if n := row.Counts[op] * barWidth / max(1, maxTotal); n > 0 {
				b.WriteString(operationStyle(op).Render(strings.Repeat(barRune, n)))
			}
		}
		fmt.Fprintf(&b, " %d", row.Total)
	}
	return b.String()
}

// renderTable lists the counts per operation with a total column.
func renderTable(matrix stats.CountMatrix, ops []string) string {
	labelWidth := len("Category")
	for _, row := range matrix {
		labelWidth = max(labelWidth, len([]rune(row.Category)))
	}
	colWidth := len("Total")
	for _, op := range ops {
		colWidth = max(colWidth, len(op))
	}

	var b strings.Builder
	header := fmt.Sprintf("%-*s", labelWidth, "Category")
	for _, op := range ops {
		header += fmt.Sprintf(" %*s", colWidth, op)
	}
	header += fmt.Sprintf(" %*s", colWidth, "Total")
	b.WriteString(headerStyle.Render(header))

	for _, row := range matrix {
		fmt.Fprintf(&b, "\n%-*s", labelWidth, row.Category)
		for _, op := range ops {
			fmt.Fprintf(&b, " %*d", colWidth, row.Counts[op])
		}
		fmt.Fprintf(&b, " %*d", colWidth, row.Total)
	}
	return b.String()
}
