package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepiz/internal/ui/theme"
)

// ContentWidth returns the inner width shared by stacked cards so they
// line up, clamped to 20..90 cells.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 90)
}

// Card wraps content in a rounded border with a bold title line.
func Card(title, content string, width int) string {
	body := content
	if title != "" {
		body = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(title) + "\n" + content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width).
		Padding(0, 1).
		Render(body)
}

// Stat renders a big number with a caption below it.
func Stat(value, caption string, width int) string {
	v := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(value)
	c := lipgloss.NewStyle().Foreground(theme.TextDim).Render(caption)
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(v + "\n" + c)
}
