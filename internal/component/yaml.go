package component

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// MarshalYAML renders the plan as a yaml.Node tree so prop order survives.
func (p *Plan) MarshalYAML() (any, error) {
	comps := &yaml.Node{Kind: yaml.SequenceNode}
	for _, n := range p.Components {
		comps.Content = append(comps.Content, n.yamlNode())
	}
	return mapping(
		scalar("layout"), scalar(p.Layout),
		scalar("modificationType"), scalar(string(p.ModificationType)),
		scalar("components"), comps,
	), nil
}

func (n *Node) MarshalYAML() (any, error) {
	return n.yamlNode(), nil
}

func (n *Node) yamlNode() *yaml.Node {
	if n == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	out := mapping(scalar("type"), scalar(n.Type))
	if len(n.Props) > 0 {
		out.Content = append(out.Content, scalar("props"), n.Props.yamlNode())
	}
	if len(n.Children) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, c := range n.Children {
			if c.IsText() {
				seq.Content = append(seq.Content, scalar(c.Text))
				continue
			}
			seq.Content = append(seq.Content, c.Node.yamlNode())
		}
		out.Content = append(out.Content, scalar("children"), seq)
	}
	return out
}

func (p Props) yamlNode() *yaml.Node {
	out := mapping()
	for _, it := range p {
		out.Content = append(out.Content, scalar(it.Key), it.Value.yamlNode())
	}
	return out
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.str}
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case KindNumber:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(v.num, 'g', -1, 64)}
	case KindList:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, item := range v.list {
			if item.kind == KindMap || item.kind == KindList {
				seq.Style = 0
			}
			seq.Content = append(seq.Content, item.yamlNode())
		}
		return seq
	case KindMap:
		return v.m.yamlNode()
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func mapping(content ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: content}
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
