package component

import "bytes"

// Prop is one key/value pair of a Props bag.
type Prop struct {
	Key   string
	Value Value
}

// P is shorthand for Prop{Key: key, Value: v}.
func P(key string, v Value) Prop { return Prop{Key: key, Value: v} }

// Props is an insertion-ordered prop bag. Iteration order is the order the
// keys were first set and is preserved through encoding.
type Props []Prop

// NewProps builds a Props bag; a repeated key overwrites the earlier value
// in its original position.
func NewProps(items ...Prop) Props {
	var p Props
	for _, it := range items {
		p = p.Set(it.Key, it.Value)
	}
	return p
}

// Set returns a copy of p with key bound to v. An existing key keeps its
// position; a new key is appended. p itself is never modified.
func (p Props) Set(key string, v Value) Props {
	out := make(Props, len(p), len(p)+1)
	copy(out, p)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = v
			return out
		}
	}
	return append(out, Prop{Key: key, Value: v})
}

func (p Props) Get(key string) (Value, bool) {
	for _, it := range p {
		if it.Key == key {
			return it.Value, true
		}
	}
	return Value{}, false
}

// String returns the string prop at key or def when absent or not a string.
func (p Props) String(key, def string) string {
	if v, ok := p.Get(key); ok {
		if s, ok := v.AsString(); ok {
			return s
		}
	}
	return def
}

// Bool reports whether key holds true.
func (p Props) Bool(key string) bool {
	if v, ok := p.Get(key); ok {
		b, _ := v.AsBool()
		return b
	}
	return false
}

func (p Props) Number(key string, def float64) float64 {
	if v, ok := p.Get(key); ok {
		if f, ok := v.AsNumber(); ok {
			return f
		}
	}
	return def
}

func (p Props) List(key string) []Value {
	if v, ok := p.Get(key); ok {
		l, _ := v.AsList()
		return l
	}
	return nil
}

func (p Props) Map(key string) Props {
	if v, ok := p.Get(key); ok {
		m, _ := v.AsMap()
		return m
	}
	return nil
}

// Keys returns the keys in iteration order.
func (p Props) Keys() []string {
	out := make([]string, 0, len(p))
	for _, it := range p {
		out = append(out, it.Key)
	}
	return out
}

func (p Props) Equal(o Props) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i].Key != o[i].Key || !p[i].Value.Equal(o[i].Value) {
			return false
		}
	}
	return true
}

func (p Props) appendJSON(buf *bytes.Buffer) {
	buf.WriteByte('{')
	for i, it := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(buf, it.Key)
		buf.WriteByte(':')
		it.Value.appendJSON(buf)
	}
	buf.WriteByte('}')
}

func (p Props) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	p.appendJSON(&buf)
	return buf.Bytes(), nil
}
