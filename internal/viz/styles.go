package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true).MarginTop(1)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
)

func statusStyle(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}

// ProgressBar renders percent in [0, 1] as a bar of width cells.
func ProgressBar(percent float64, width int, fill lipgloss.Color) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(strings.Repeat("░", width-filled))
}

func Separator(width int, c lipgloss.Color) string {
	if width < 8 {
		return strings.Repeat("─", width)
	}
	mid := width / 2
	return lipgloss.NewStyle().Foreground(c).Render(strings.Repeat("─", mid-2) + " ◆ " + strings.Repeat("─", width-mid-1))
}
