package widgets

import "github.com/charmbracelet/lipgloss"

// Button is a one-line label padded into a coloured block.
type Button struct {
	Label   string
	Variant string
}

func (b Button) Render(width int) string {
	if width <= 0 {
		return ""
	}
	style := lipgloss.NewStyle().Padding(0, 1)
	if colors, ok := ButtonColors[b.Variant]; ok {
		style = style.Background(colors[0]).Foreground(colors[1]).Bold(true)
	} else {
		style = style.Foreground(ColorText).Underline(true)
	}
	return style.Render(Fit(b.Label, max(1, width-2)))
}
