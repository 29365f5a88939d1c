package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Navbar shows the brand on the left and the links on the right, over a
// rule line.
type Navbar struct {
	Brand string
	Links []string
}

func (n Navbar) Render(width int) string {
	if width <= 0 {
		return ""
	}
	brand := lipgloss.NewStyle().Bold(true).Foreground(ColorMauve).Render(Fit(n.Brand, width))
	links := lipgloss.NewStyle().Foreground(ColorSubtext0).Render(strings.Join(n.Links, "  "))
	row := brand
	if gap := width - ansi.StringWidth(brand) - ansi.StringWidth(links); len(n.Links) > 0 && gap >= 2 {
		row = brand + strings.Repeat(" ", gap) + links
	} else if len(n.Links) > 0 {
		row = brand + "\n" + Fit(links, width)
	}
	rule := lipgloss.NewStyle().Foreground(ColorSurface1).Render(strings.Repeat("─", width))
	return row + "\n" + rule
}
