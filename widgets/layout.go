package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// VStack stacks widgets top to bottom at full width.
type VStack struct {
	Widgets []Widget
	Spacing int
}

func (v VStack) Render(width int) string {
	if len(v.Widgets) == 0 || width <= 0 {
		return ""
	}
	blocks := make([]string, 0, len(v.Widgets))
	for _, w := range v.Widgets {
		if out := w.Render(width); out != "" {
			blocks = append(blocks, out)
		}
	}
	return strings.Join(blocks, strings.Repeat("\n", 1+max(0, v.Spacing)))
}

// HStack places widgets side by side. A positive Fixed entry pins that
// column's width; the other columns share the rest, weighted by Ratios when
// a ratio is given for every widget.
type HStack struct {
	Widgets []Widget
	Ratios  []float64
	Fixed   []int
	Gap     int
}

func (h HStack) Render(width int) string {
	if len(h.Widgets) == 0 || width <= 0 {
		return ""
	}
	n := len(h.Widgets)
	gap := clampGap(h.Gap, width)
	usable := max(n, width-gap*(n-1))
	widths := make([]int, n)
	var flex []int
	var flexRatios []float64
	for i := range h.Widgets {
		if i < len(h.Fixed) && h.Fixed[i] > 0 {
			widths[i] = min(h.Fixed[i], usable)
			usable -= widths[i]
			continue
		}
		flex = append(flex, i)
		if len(h.Ratios) == n {
			flexRatios = append(flexRatios, h.Ratios[i])
		}
	}
	for j, w := range SplitWidths(max(len(flex), usable), len(flex), flexRatios) {
		widths[flex[j]] = w
	}
	blocks := make([]string, n)
	for i, w := range h.Widgets {
		blocks[i] = w.Render(max(1, widths[i]))
	}
	return Fit(joinColumns(blocks, widths, gap), width)
}

// Row packs widgets side by side at their drawn width instead of
// stretching them, then aligns the whole row within the width.
type Row struct {
	Widgets []Widget
	Gap     int
	Align   lipgloss.Position
}

func (r Row) Render(width int) string {
	if len(r.Widgets) == 0 || width <= 0 {
		return ""
	}
	n := len(r.Widgets)
	gap := clampGap(r.Gap, width)
	slots := SplitWidths(max(n, width-gap*(n-1)), n, nil)
	var blocks []string
	var widths []int
	for i, w := range r.Widgets {
		block := w.Render(max(1, slots[i]))
		if block == "" {
			continue
		}
		blocks = append(blocks, block)
		widths = append(widths, maxLineWidth(Lines(block)))
	}
	if len(blocks) == 0 {
		return ""
	}
	row := Align{Inner: Func(func(int) string { return joinColumns(blocks, widths, gap) }), Position: r.Align}.Render(width)
	return Fit(row, width)
}

// Align places the inner block horizontally within width.
type Align struct {
	Inner    Widget
	Position lipgloss.Position
}

func (a Align) Render(width int) string {
	block := a.Inner.Render(width)
	if block == "" || a.Position == lipgloss.Left {
		return block
	}
	lines := Lines(lipgloss.PlaceHorizontal(width, a.Position, block))
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.Join(lines, "\n")
}

// Cell is one grid item; Span is the number of columns it covers.
type Cell struct {
	Widget Widget
	Span   int
}

// Grid flows cells into rows of Columns columns. A cell wider than the
// remaining columns of a row starts the next row.
type Grid struct {
	Columns int
	Cells   []Cell
	Gap     int
	RowGap  int
}

func (g Grid) Render(width int) string {
	if len(g.Cells) == 0 || width <= 0 {
		return ""
	}
	cols := min(max(1, g.Columns), width)
	gap := clampGap(g.Gap, width)
	colWidths := SplitWidths(max(cols, width-gap*(cols-1)), cols, nil)

	var rows []string
	var blocks []string
	var widths []int
	used := 0
	flush := func() {
		if len(blocks) > 0 {
			rows = append(rows, joinColumns(blocks, widths, gap))
		}
		blocks, widths, used = nil, nil, 0
	}
	for _, c := range g.Cells {
		span := min(max(1, c.Span), cols)
		if used+span > cols {
			flush()
		}
		w := gap * (span - 1)
		for i := used; i < used+span; i++ {
			w += colWidths[i]
		}
		blocks = append(blocks, c.Widget.Render(w))
		widths = append(widths, w)
		used += span
	}
	flush()
	return Fit(strings.Join(rows, strings.Repeat("\n", 1+clampGap(g.RowGap, width))), width)
}

// Padded insets a widget by a fixed number of columns and rows.
type Padded struct {
	Inner      Widget
	Horizontal int
	Vertical   int
}

// Padding never takes more than half the width on either side, and the
// rows above and below are capped at the same count.
func (p Padded) Render(width int) string {
	if width <= 0 {
		return ""
	}
	horizontal := min(max(0, p.Horizontal), (width-1)/2)
	vertical := min(max(0, p.Vertical), max(horizontal, 1))
	body := p.Inner.Render(max(1, width-2*horizontal))
	if body == "" {
		return ""
	}
	lines := Lines(body)
	pad := strings.Repeat(" ", horizontal)
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	blank := make([]string, vertical)
	out := append(append(append([]string{}, blank...), lines...), blank...)
	return Fit(strings.Join(out, "\n"), width)
}

func joinColumns(blocks []string, widths []int, gap int) string {
	rendered := make([][]string, len(blocks))
	maxLines := 0
	for i, b := range blocks {
		rendered[i] = Lines(b)
		maxLines = max(maxLines, len(rendered[i]))
	}
	out := make([]string, 0, maxLines)
	for line := 0; line < maxLines; line++ {
		cols := make([]string, len(rendered))
		for i := range rendered {
			if line < len(rendered[i]) {
				cols[i] = padRight(rendered[i][line], widths[i])
			} else {
				cols[i] = strings.Repeat(" ", widths[i])
			}
		}
		out = append(out, strings.TrimRight(strings.Join(cols, strings.Repeat(" ", max(0, gap))), " "))
	}
	return strings.Join(out, "\n")
}

// SplitWidths divides total into n parts weighted by ratios. Without a
// ratio per part the split is even; leftover columns go to the first parts.
func SplitWidths(total, n int, ratios []float64) []int {
	if n <= 0 {
		return nil
	}
	if len(ratios) != n {
		width := total / n
		out := make([]int, n)
		for i := range out {
			out[i] = width
		}
		for i := 0; i < total%n; i++ {
			out[i]++
		}
		return out
	}
	weights := make([]float64, n)
	sum := 0.0
	for i, r := range ratios {
		if !(r > 0) || math.IsInf(r, 0) {
			r = 1
		}
		weights[i] = r
		sum += r
	}
	if math.IsInf(sum, 0) {
		return SplitWidths(total, n, nil)
	}
	out := make([]int, n)
	used := 0
	for i := range out {
		w := int(math.Floor((weights[i] / sum) * float64(total)))
		out[i] = w
		used += w
	}
	for i := 0; used < total; i = (i + 1) % n {
		out[i]++
		used++
	}
	return out
}

// clampGap keeps a gap between zero and the drawing width.
func clampGap(gap, width int) int {
	return min(max(0, gap), max(0, width))
}

func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
