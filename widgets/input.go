package widgets

import "github.com/charmbracelet/lipgloss"

// Input is a labelled single-line field showing its placeholder.
type Input struct {
	Label       string
	Type        string
	Placeholder string
}

func (in Input) Render(width int) string {
	if width <= 0 {
		return ""
	}
	width = max(width, 5)
	field := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorSurface2).
		Foreground(ColorOverlay0).
		Padding(0, 1).
		Width(width - 2).
		Render(Fit(in.Placeholder, width-4))
	if in.Label == "" {
		return field
	}
	label := lipgloss.NewStyle().Foreground(ColorSubtext1).Render(Fit(in.Label, width))
	return label + "\n" + field
}
