package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrorMarker flags a node the preview could not resolve. It never fails.
type ErrorMarker struct {
	Message string
}

func (e ErrorMarker) Render(width int) string {
	if width <= 0 {
		return ""
	}
	width = max(width, 5)
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorError).
		Foreground(ColorError).
		Padding(0, 1).
		Width(width - 2).
		Render(Fit(e.Message, width-4))
}

// EmptyState is the centred placeholder shown when there is nothing to
// preview.
type EmptyState struct {
	Title    string
	Subtitle string
	Height   int
}

func (e EmptyState) Render(width int) string {
	if width <= 0 {
		return ""
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(ColorSubtext1).Render(Fit(e.Title, width))
	sub := lipgloss.NewStyle().Foreground(ColorMuted).Render(Fit(e.Subtitle, width))
	block := lipgloss.JoinVertical(lipgloss.Center, title, sub)
	height := max(e.Height, len(Lines(block)))
	out := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
	lines := Lines(out)
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.Join(lines, "\n")
}
