package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Pane is the bordered frame around each TUI column. The title sits in the
// top border; Badge, when set, is right-aligned in the same border.
type Pane struct {
	Title   string
	Badge   string
	Content string
	Focused bool
}

// Render draws the pane at exactly width x height. Content beyond the
// inner area is cut.
func (p Pane) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	width = max(width, 6)
	height = max(height, 3)

	border := ColorBorder
	prefix := "  "
	if p.Focused {
		border = ColorFocus
		prefix = "● "
	}
	borderStyle := lipgloss.NewStyle().Foreground(border)
	titleStyle := lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	badgeStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	innerWidth := width - 2
	contentWidth := innerWidth - 2

	titleText := " " + strings.TrimSpace(prefix+p.Title) + " "
	if ansi.StringWidth(titleText) > innerWidth-1 {
		titleText = " " + ansi.Truncate(strings.TrimSpace(prefix+p.Title), max(1, innerWidth-3), "") + " "
	}
	badgeText := ""
	if p.Badge != "" {
		badgeText = " " + p.Badge + " "
	}
	dashes := innerWidth - 1 - ansi.StringWidth(titleText) - ansi.StringWidth(badgeText)
	if dashes < 1 {
		badgeText = ""
		dashes = max(0, innerWidth-1-ansi.StringWidth(titleText))
	}
	rightDash := 0
	if badgeText != "" {
		rightDash = 1
		dashes--
	}

	top := borderStyle.Render("╭─") +
		titleStyle.Render(titleText) +
		borderStyle.Render(strings.Repeat("─", max(0, dashes))) +
		badgeStyle.Render(badgeText) +
		borderStyle.Render(strings.Repeat("─", rightDash)+"╮")

	v := borderStyle.Render("│")
	lines := Lines(p.Content)
	rows := make([]string, 0, height)
	rows = append(rows, top)
	for i := 0; i < height-2; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		rows = append(rows, v+" "+padRight(line, contentWidth)+" "+v)
	}
	rows = append(rows, borderStyle.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))
	return strings.Join(rows, "\n")
}

// InnerSize is the content area of a pane drawn at width x height.
func InnerSize(width, height int) (int, int) {
	return max(1, max(width, 6)-4), max(1, max(height, 3)-2)
}
