package preview

import (
	"sort"

	"github.com/jask/uigen/internal/component"
	"github.com/jask/uigen/widgets"
)

const sidebarWidth = 20

// registry is the closed widget library. Each entry reads its own props
// and ignores the rest. It is filled in init because the builders recurse
// back through it.
var registry map[string]buildFunc

func init() {
	registry = map[string]buildFunc{
		"Button":  buildButton,
		"Card":    buildCard,
		"Input":   buildInput,
		"Table":   buildTable,
		"Modal":   buildModal,
		"Sidebar": buildSidebar,
		"Navbar":  buildNavbar,
		"Chart":   buildChart,
	}
}

// Registered lists the widget names, sorted.
func Registered() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known reports whether typ is a primitive tag or a registered widget.
func Known(typ string) bool {
	return resolve(typ) != KindUnknown
}

// buildButton labels the button with its nested text, or with the
// children prop when it has no nested content.
func buildButton(_ *renderer, el Element) widgets.Widget {
	label := PlainText(el.Children)
	if len(el.Children) == 0 {
		if v, ok := el.Props.Get("children"); ok {
			label = v.Text()
		}
	}
	return widgets.Button{Label: label, Variant: el.Props.String("variant", "primary")}
}

func buildCard(r *renderer, el Element) widgets.Widget {
	return widgets.Card{
		Title: el.Props.String("title", ""),
		Body:  r.content(el),
		Width: cssWidth(el.Props.Map("style").String("width", "")),
	}
}

func buildInput(_ *renderer, el Element) widgets.Widget {
	return widgets.Input{
		Label:       el.Props.String("label", ""),
		Type:        el.Props.String("type", "text"),
		Placeholder: el.Props.String("placeholder", ""),
	}
}

func buildTable(_ *renderer, el Element) widgets.Widget {
	headers := texts(el.Props.List("headers"))
	rows := make([][]string, 0)
	for _, row := range el.Props.List("rows") {
		cells, _ := row.AsList()
		rows = append(rows, texts(cells))
	}
	return widgets.Table{Headers: headers, Rows: rows}
}

// buildModal draws nothing in place. An open modal that has not been
// closed is queued and drawn over the finished preview.
func buildModal(r *renderer, el Element) widgets.Widget {
	if !el.Props.Bool("isOpen") || r.opts.Closed[el.Key] {
		return widgets.Func(nil)
	}
	slot := len(r.popups)
	r.popups = append(r.popups, nil)
	r.popups[slot] = widgets.Dialog{Title: el.Props.String("title", ""), Body: r.content(el)}
	return widgets.Func(nil)
}

func buildSidebar(_ *renderer, el Element) widgets.Widget {
	var items []widgets.SidebarItem
	for _, v := range el.Props.List("items") {
		item, _ := v.AsMap()
		items = append(items, widgets.SidebarItem{Label: item.String("label", ""), Active: item.Bool("active")})
	}
	return widgets.Sidebar{Items: items}
}

func buildNavbar(_ *renderer, el Element) widgets.Widget {
	return widgets.Navbar{
		Brand: el.Props.String("brand", "App"),
		Links: texts(el.Props.List("links")),
	}
}

func buildChart(_ *renderer, el Element) widgets.Widget {
	return widgets.Chart{Type: el.Props.String("type", "bar")}
}

func texts(vals []component.Value) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		out = append(out, v.Text())
	}
	return out
}
