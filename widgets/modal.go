package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Dialog is the framed box of a modal: title row with a close hint, then
// the body.
type Dialog struct {
	Title string
	Body  Widget
	Hint  string
}

func (d Dialog) Render(width int) string {
	if width <= 0 {
		return ""
	}
	width = max(width, 8)
	inner := width - 6

	hint := d.Hint
	if hint == "" {
		hint = "esc ✕"
	}
	hintW := ansi.StringWidth(hint)
	title := lipgloss.NewStyle().Bold(true).Foreground(ColorText).Render(Fit(d.Title, max(1, inner-hintW-1)))
	gap := max(1, inner-ansi.StringWidth(title)-hintW)
	header := title + strings.Repeat(" ", gap) + lipgloss.NewStyle().Foreground(ColorMuted).Render(hint)

	parts := []string{Fit(header, inner)}
	if d.Body != nil {
		if body := d.Body.Render(inner); body != "" {
			parts = append(parts, "", body)
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMauve).
		Padding(1, 2).
		Width(width - 2).
		Render(strings.Join(parts, "\n"))
}

// Overlay draws popup centred over base. The canvas is width columns wide
// and tall enough for both, and never shorter than minHeight.
func Overlay(base, popup string, width, minHeight int) string {
	if width <= 0 {
		return ""
	}
	popupLines := splitToLines(popup, 0)
	height := max(minHeight, len(Lines(base)), len(popupLines))
	canvas := fitCanvas(base, width, height)
	popupWidth := maxLineWidth(popupLines)
	if popup == "" || popupWidth == 0 {
		return canvas
	}
	x := max(0, (width-popupWidth)/2)
	y := max(0, (height-len(popupLines))/2)
	return overlayAt(canvas, popup, x, y, width, height)
}

func overlayAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitToLines(base, height)
	overlayLines := splitToLines(overlay, 0)
	overlayWidth := min(maxLineWidth(overlayLines), max(0, width-x))
	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		segment := padRight(line, overlayWidth)
		right := dropColumns(target, x+overlayWidth)
		baseLines[row] = padRight(left+segment+right, width)
	}
	return strings.Join(baseLines, "\n")
}

func fitCanvas(s string, width, height int) string {
	lines := splitToLines(s, height)
	for i := range lines {
		lines[i] = padRight(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func splitToLines(s string, height int) []string {
	lines := strings.Split(s, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	for height > 0 && len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func maxLineWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		widest = max(widest, ansi.StringWidth(line))
	}
	return widest
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	truncated := ansi.Truncate(s, cols, "")
	return strings.TrimPrefix(s, truncated)
}
