package component

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

type nodeJSON struct {
	Type     string  `json:"type"`
	Props    Props   `json:"props,omitempty"`
	Children []Child `json:"children,omitempty"`
}

type planJSON struct {
	Layout           string           `json:"layout"`
	Components       []*Node          `json:"components"`
	ModificationType ModificationType `json:"modificationType"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return marshalNoEscape(nodeJSON{Type: n.Type, Props: n.Props, Children: n.Children})
}

func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type == "" {
		return errors.New("component: node without type")
	}
	*n = Node{Type: raw.Type, Props: raw.Props, Children: raw.Children}
	return nil
}

func (c Child) MarshalJSON() ([]byte, error) {
	if c.IsText() {
		return []byte(String(c.Text).JSON()), nil
	}
	return c.Node.MarshalJSON()
}

func (c *Child) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = TextChild(s)
		return nil
	}
	n := new(Node)
	if err := n.UnmarshalJSON(data); err != nil {
		return err
	}
	*c = NodeChild(n)
	return nil
}

func (p *Plan) MarshalJSON() ([]byte, error) {
	comps := p.Components
	if comps == nil {
		comps = []*Node{}
	}
	return marshalNoEscape(planJSON{Layout: p.Layout, Components: comps, ModificationType: p.ModificationType})
}

func (p *Plan) UnmarshalJSON(data []byte) error {
	var raw planJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.ModificationType == "" {
		raw.ModificationType = Create
	}
	*p = Plan{Layout: raw.Layout, Components: raw.Components, ModificationType: raw.ModificationType}
	return nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	out, err := decodeValue(dec)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

func (p *Props) UnmarshalJSON(data []byte) error {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	switch v.kind {
	case KindMap:
		*p = v.m
	case KindNull:
		*p = nil
	default:
		return fmt.Errorf("component: props must be an object, got %s", v.kind)
	}
	return nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("component: number %q: %w", t, err)
		}
		return Number(f), nil
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return List(items...), nil
		case '{':
			props := Props{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("component: object key %v", keyTok)
				}
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				props = props.Set(key, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Map(props...), nil
		}
	}
	return Value{}, fmt.Errorf("component: unexpected token %v", tok)
}
