package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Table draws headers and rows in aligned columns. Short rows are padded,
// cells past the header count are dropped.
type Table struct {
	Headers []string
	Rows    [][]string
}

func (t Table) Render(width int) string {
	if width <= 0 {
		return ""
	}
	if len(t.Headers) == 0 {
		return lipgloss.NewStyle().Foreground(ColorMuted).Render("No data")
	}
	n := len(t.Headers)
	natural := make([]int, n)
	for i, h := range t.Headers {
		natural[i] = ansi.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < n && i < len(row); i++ {
			natural[i] = max(natural[i], ansi.StringWidth(row[i]))
		}
	}
	widths := fitColumns(natural, max(n, width-2*(n-1)))

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorSubtext1)
	lines := []string{headerStyle.Render(joinCells(t.Headers, widths))}
	rule := make([]string, n)
	for i, w := range widths {
		rule[i] = strings.Repeat("─", w)
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(ColorSurface2).Render(strings.Join(rule, "  ")))
	for _, row := range t.Rows {
		lines = append(lines, joinCells(row, widths))
	}
	return strings.Join(lines, "\n")
}

func joinCells(cells []string, widths []int) string {
	out := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		out[i] = padRight(cell, w)
	}
	return strings.TrimRight(strings.Join(out, "  "), " ")
}

// fitColumns shrinks the widest columns first until the total fits.
func fitColumns(natural []int, total int) []int {
	widths := append([]int(nil), natural...)
	sum := 0
	for _, w := range widths {
		sum += w
	}
	for sum > total {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 1 {
			break
		}
		widths[widest]--
		sum--
	}
	return widths
}
