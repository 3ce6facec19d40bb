package tui

import (
	"prodstats/internal/visuals"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#2B6CB0", Dark: "#63B3ED"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#98A2B3", Dark: "#667085"}
	colorDanger  = lipgloss.AdaptiveColor{Light: "#D92D20", Dark: "#F97066"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#D0D5DD", Dark: "#475467"}
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle  = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

// operationStyle colours the bar segments of an operation like the HTML charts do.
func operationStyle(op string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(visuals.OperationColor(op)))
}
