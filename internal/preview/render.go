package preview

import (
	"github.com/jask/uigen/internal/component"
	"github.com/jask/uigen/widgets"
)

const (
	EmptyTitle    = "Live Preview"
	EmptySubtitle = "Generated UI will appear here"
)

// Options controls one Render call.
type Options struct {
	// Width is the number of columns to draw into.
	Width int
	// Height is the minimum number of rows; the empty state and modal
	// overlays are centred within it.
	Height int
	// Closed holds the keys of modals the user has dismissed.
	Closed map[string]bool
}

// renderer converts elements into widgets for one Render call. Open modals
// are collected instead of drawn in place and overlaid at the end.
type renderer struct {
	opts   Options
	popups []widgets.Widget
}

// Render draws the plan. A nil or empty plan draws the empty state.
func Render(p *component.Plan, opts Options) string {
	if opts.Width <= 0 {
		return ""
	}
	els := Build(p)
	if len(els) == 0 {
		return widgets.EmptyState{Title: EmptyTitle, Subtitle: EmptySubtitle, Height: opts.Height}.Render(opts.Width)
	}
	r := &renderer{opts: opts}
	body := widgets.VStack{Widgets: r.widgets(els)}.Render(opts.Width)
	out := body
	for _, popup := range r.popups {
		out = widgets.Overlay(out, popup.Render(dialogWidth(opts.Width)), opts.Width, opts.Height)
	}
	return out
}

// OpenModals lists, in tree order, the keys of modals Render would show.
func OpenModals(p *component.Plan, closed map[string]bool) []string {
	var keys []string
	Walk(Build(p), func(el Element) {
		if el.Kind == KindWidget && el.Type == "Modal" && el.Props.Bool("isOpen") && !closed[el.Key] {
			keys = append(keys, el.Key)
		}
	})
	return keys
}

func (r *renderer) widgets(els []Element) []widgets.Widget {
	out := make([]widgets.Widget, 0, len(els))
	for _, el := range els {
		out = append(out, r.widget(el))
	}
	return out
}

func (r *renderer) widget(el Element) widgets.Widget {
	switch el.Kind {
	case KindText:
		return widgets.Text(el.Text)
	case KindPrimitive:
		return primitives[el.Type](r, el)
	case KindWidget:
		return registry[el.Type](r, el)
	default:
		return widgets.ErrorMarker{Message: "Error: Unknown component " + el.Type}
	}
}

// content stacks the rendered children of el.
func (r *renderer) content(el Element) widgets.Widget {
	if len(el.Children) == 0 {
		return nil
	}
	return widgets.VStack{Widgets: r.widgets(el.Children)}
}

func dialogWidth(width int) int {
	return min(width, max(30, width*2/3))
}
