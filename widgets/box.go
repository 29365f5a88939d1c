package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Card is a rounded box with an optional bold title above its body.
// Width, when positive, caps the card narrower than the space it is given.
type Card struct {
	Title string
	Body  Widget
	Width int
}

func (c Card) Render(width int) string {
	if width <= 0 {
		return ""
	}
	if c.Width > 0 && c.Width < width {
		width = c.Width
	}
	width = max(width, 5)
	inner := width - 4

	parts := make([]string, 0, 2)
	if c.Title != "" {
		parts = append(parts, lipgloss.NewStyle().Bold(true).Foreground(ColorText).Render(Fit(c.Title, inner)))
	}
	if c.Body != nil {
		if body := c.Body.Render(inner); body != "" {
			parts = append(parts, body)
		}
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1).
		Width(width - 2)
	return style.Render(strings.Join(parts, "\n"))
}
