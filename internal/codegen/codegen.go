// Package codegen turns a component tree into the markup text shown in the
// code pane. The output is for display only and is never parsed back.
package codegen

import (
	"strings"

	"github.com/jask/uigen/internal/component"
)

// InitialCode is what the code pane shows before anything is generated.
const InitialCode = "// Ready to generate UI..."

const indentUnit = "  "

// Generate renders every root of the plan, one after another, separated
// by a newline. A nil plan renders as the empty string.
func Generate(p *component.Plan) string {
	if p == nil {
		return ""
	}
	return Nodes(p.Components)
}

// Nodes renders a forest of roots at depth 0.
func Nodes(roots []*component.Node) string {
	parts := make([]string, 0, len(roots))
	for _, n := range roots {
		var b strings.Builder
		writeNode(&b, n, 0)
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n")
}

func writeChild(b *strings.Builder, c component.Child, depth int) {
	if c.IsText() {
		// Quotes inside the text are not escaped.
		b.WriteString(`"` + c.Text + `"`)
		return
	}
	writeNode(b, c.Node, depth)
}

func writeNode(b *strings.Builder, n *component.Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat(indentUnit, depth)
	props := Props(n.Props)
	b.WriteString("\n" + indent + "<" + n.Type + " " + props)
	if len(n.Children) == 0 {
		b.WriteString(" />")
		return
	}
	b.WriteString(">")
	for _, c := range n.Children {
		writeChild(b, c, depth+1)
	}
	b.WriteString("\n" + indent + "</" + n.Type + ">")
}

// Props renders a prop bag as space-joined attribute tokens in the bag's
// own order. A false boolean yields an empty token, so the join can leave
// doubled spaces.
func Props(p component.Props) string {
	tokens := make([]string, 0, len(p))
	for _, it := range p {
		tokens = append(tokens, propToken(it.Key, it.Value))
	}
	return strings.Join(tokens, " ")
}

func propToken(key string, v component.Value) string {
	if key == "style" {
		return "style={" + v.JSON() + "}"
	}
	switch v.Kind() {
	case component.KindString:
		s, _ := v.AsString()
		return key + `="` + s + `"`
	case component.KindBool:
		if b, _ := v.AsBool(); b {
			return key
		}
		return ""
	default:
		return key + "={" + v.JSON() + "}"
	}
}
