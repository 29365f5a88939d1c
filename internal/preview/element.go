// Package preview draws a component plan into the terminal preview pane.
//
// Rendering happens in two steps. Build resolves every node against the
// primitive tags and the closed widget registry, giving each element a
// positional key. Render turns the elements into widgets and draws them.
// An unresolvable type only affects its own node.
package preview

import (
	"strconv"

	"github.com/jask/uigen/internal/component"
)

type Kind int

const (
	KindText Kind = iota
	KindPrimitive
	KindWidget
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindPrimitive:
		return "primitive"
	case KindWidget:
		return "widget"
	default:
		return "unknown"
	}
}

// Element is a resolved node. Key is the path of child indexes from the
// root ("0", "0.1", "0.1.2"), so structurally equal siblings stay distinct.
type Element struct {
	Key      string
	Kind     Kind
	Type     string
	Props    component.Props
	Text     string
	Children []Element
}

// Build resolves a plan. A nil or empty plan yields no elements. The plan
// must already be valid (see component.Plan.Validate).
func Build(p *component.Plan) []Element {
	if p.Empty() {
		return nil
	}
	out := make([]Element, 0, len(p.Components))
	for i, root := range p.Components {
		if root == nil {
			continue
		}
		out = append(out, buildNode(root, strconv.Itoa(i)))
	}
	return out
}

func buildNode(n *component.Node, key string) Element {
	el := Element{Key: key, Type: n.Type, Props: n.Props, Kind: resolve(n.Type)}
	if el.Kind == KindUnknown {
		return el
	}
	for i, c := range n.Children {
		childKey := key + "." + strconv.Itoa(i)
		if c.IsText() {
			el.Children = append(el.Children, Element{Key: childKey, Kind: KindText, Text: c.Text})
			continue
		}
		el.Children = append(el.Children, buildNode(c.Node, childKey))
	}
	return el
}

func resolve(typ string) Kind {
	if _, ok := primitives[typ]; ok {
		return KindPrimitive
	}
	if _, ok := registry[typ]; ok {
		return KindWidget
	}
	return KindUnknown
}

// Walk visits elements depth-first, pre-order.
func Walk(els []Element, fn func(Element)) {
	for _, el := range els {
		fn(el)
		Walk(el.Children, fn)
	}
}

// PlainText concatenates the text leaves below the elements.
func PlainText(els []Element) string {
	var s string
	Walk(els, func(el Element) {
		if el.Kind == KindText {
			s += el.Text
		}
	})
	return s
}
