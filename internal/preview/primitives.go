package preview

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/uigen/internal/component"
	"github.com/jask/uigen/widgets"
)

type buildFunc func(r *renderer, el Element) widgets.Widget

// primitives are the plain tags drawn without a registry lookup.
var primitives map[string]buildFunc

func init() {
	primitives = map[string]buildFunc{
		"div":  buildDiv,
		"span": buildSpan,
		"p":    buildParagraph,
		"h1":   buildHeading,
	}
}

// buildDiv lays children out from the style prop: display flex (row unless
// flexDirection is column), display grid with gridTemplateColumns tracks,
// otherwise a plain vertical stack. padding insets the result.
func buildDiv(r *renderer, el Element) widgets.Widget {
	style := el.Props.Map("style")
	children := r.widgets(el.Children)
	var w widgets.Widget
	switch style.String("display", "") {
	case "flex":
		if style.String("flexDirection", "row") == "column" {
			w = widgets.VStack{Widgets: children}
			break
		}
		gap := gapColumns(style)
		if justify, ok := justifyPositions[style.String("justifyContent", "")]; ok {
			w = widgets.Row{Widgets: children, Gap: gap, Align: justify}
			break
		}
		ratios := make([]float64, len(el.Children))
		fixed := make([]int, len(el.Children))
		for i, c := range el.Children {
			ratios[i], fixed[i] = flexSize(c)
		}
		w = widgets.HStack{Widgets: children, Ratios: ratios, Fixed: fixed, Gap: max(1, gap)}
	case "grid":
		cells := make([]widgets.Cell, len(children))
		for i, c := range el.Children {
			cells[i] = widgets.Cell{Widget: children[i], Span: gridSpan(c.Props.Map("style"))}
		}
		w = widgets.Grid{Columns: gridTracks(style.String("gridTemplateColumns", "1fr")), Cells: cells, Gap: max(1, gapColumns(style))}
	default:
		w = widgets.VStack{Widgets: children}
	}
	if padding, ok := style.Get("padding"); ok {
		cols := cssColumns(padding.Text())
		w = widgets.Padded{Inner: w, Horizontal: cols, Vertical: cols / 2}
	}
	return w
}

func buildSpan(r *renderer, el Element) widgets.Widget {
	return widgets.Row{Widgets: r.widgets(el.Children)}
}

func buildParagraph(r *renderer, el Element) widgets.Widget {
	return widgets.VStack{Widgets: r.widgets(el.Children)}
}

func buildHeading(r *renderer, el Element) widgets.Widget {
	inner := widgets.VStack{Widgets: r.widgets(el.Children)}
	heading := lipgloss.NewStyle().Bold(true).Foreground(widgets.ColorLavender)
	return widgets.Func(func(width int) string {
		return heading.Render(inner.Render(width))
	})
}

var justifyPositions = map[string]lipgloss.Position{
	"center":        lipgloss.Center,
	"flex-end":      lipgloss.Right,
	"end":           lipgloss.Right,
	"space-between": lipgloss.Left,
	"flex-start":    lipgloss.Left,
	"start":         lipgloss.Left,
}

// flexSize reads a flex row child's sizing: a fixed width from style.width
// or a preferred widget width, otherwise a share weighted by style.flex.
func flexSize(el Element) (ratio float64, fixed int) {
	style := el.Props.Map("style")
	if w, ok := style.Get("width"); ok {
		return 1, cssWidth(w.Text())
	}
	if el.Kind == KindWidget && el.Type == "Sidebar" {
		return 1, sidebarWidth
	}
	if f, ok := style.Get("flex"); ok {
		// "1 1 auto" shorthand: only the grow factor matters.
		if fields := strings.Fields(f.Text()); len(fields) > 0 {
			if n, err := strconv.ParseFloat(fields[0], 64); err == nil && n > 0 && !math.IsInf(n, 0) {
				return min(n, maxFlexGrow), 0
			}
		}
	}
	return 1, 0
}

// gridTracks counts the columns of a gridTemplateColumns value, expanding
// repeat(n, ...).
func gridTracks(tmpl string) int {
	tmpl = strings.TrimSpace(tmpl)
	if strings.HasPrefix(tmpl, "repeat(") {
		if n, err := strconv.Atoi(strings.TrimSpace(strings.SplitN(strings.TrimPrefix(tmpl, "repeat("), ",", 2)[0])); err == nil && n > 0 {
			return min(n, maxCSSColumns)
		}
	}
	return min(max(1, len(strings.Fields(tmpl))), maxCSSColumns)
}

// gridSpan reads "span N" from a child's gridColumn style.
func gridSpan(style component.Props) int {
	fields := strings.Fields(style.String("gridColumn", ""))
	if len(fields) == 2 && fields[0] == "span" {
		if n, err := strconv.Atoi(fields[1]); err == nil && n > 0 {
			return n
		}
	}
	return 1
}

func gapColumns(style component.Props) int {
	gap, ok := style.Get("gap")
	if !ok {
		return 0
	}
	return cssColumns(gap.Text())
}

// Lengths and counts read from style props are capped here; the widgets
// clamp again against the width they are drawn at.
const (
	maxCSSColumns = 512
	maxFlexGrow   = 1000
)

// cssColumns converts a spacing length to terminal columns: one column per
// rem, sixteen pixels to the rem, rounded up.
func cssColumns(v string) int {
	rem, ok := cssRem(v)
	if !ok || rem <= 0 {
		return 0
	}
	return int(math.Min(math.Ceil(rem), maxCSSColumns))
}

// cssWidth converts an element width to columns at eight pixels a column.
func cssWidth(v string) int {
	rem, ok := cssRem(v)
	if !ok || rem <= 0 {
		return 0
	}
	return int(math.Min(math.Round(rem*2), maxCSSColumns))
}

func cssRem(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	unit := 1.0 / 16
	switch {
	case strings.HasSuffix(v, "rem"):
		v, unit = strings.TrimSuffix(v, "rem"), 1
	case strings.HasSuffix(v, "em"):
		v, unit = strings.TrimSuffix(v, "em"), 1
	case strings.HasSuffix(v, "px"):
		v = strings.TrimSuffix(v, "px")
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n * unit, true
}
