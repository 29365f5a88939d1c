package component

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindBool
	KindNumber
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "null"
	}
}

// Value is a prop value: null, string, bool, number, ordered list or
// ordered map. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	b    bool
	num  float64
	list []Value
	m    Props
}

func Null() Value            { return Value{} }
func String(s string) Value  { return Value{kind: KindString, str: s} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// List and Map copy their arguments, so a Value never shares storage with
// the caller's slice.
func List(items ...Value) Value {
	return Value{kind: KindList, list: append([]Value(nil), items...)}
}

func Map(props ...Prop) Value {
	return Value{kind: KindMap, m: append(Props(nil), props...)}
}

// Strings builds a list of string values.
func Strings(items ...string) Value {
	out := make([]Value, 0, len(items))
	for _, s := range items {
		out = append(out, String(s))
	}
	return List(out...)
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsList and AsMap return the Value's own storage; callers must not
// modify the result. Use Props.Set to derive a changed map.
func (v Value) AsList() ([]Value, bool) { return v.list, v.kind == KindList }

func (v Value) AsMap() (Props, bool) { return v.m, v.kind == KindMap }

// Text returns a display form of v: strings verbatim, everything else as
// its JSON encoding.
func (v Value) Text() string {
	if v.kind == KindString {
		return v.str
	}
	return v.JSON()
}

// JSON returns the compact JSON encoding of v. Map keys keep insertion
// order, HTML characters are left alone and non-finite numbers encode as
// null, so the result is defined for every Value.
func (v Value) JSON() string {
	var buf bytes.Buffer
	v.appendJSON(&buf)
	return buf.String()
}

func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	v.appendJSON(&buf)
	return buf.Bytes(), nil
}

func (v Value) appendJSON(buf *bytes.Buffer) {
	switch v.kind {
	case KindString:
		writeJSONString(buf, v.str)
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		writeJSONNumber(buf, v.num)
	case KindList:
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			item.appendJSON(buf)
		}
		buf.WriteByte(']')
	case KindMap:
		v.m.appendJSON(buf)
	default:
		buf.WriteString("null")
	}
}

const hexDigits = "0123456789abcdef"

// writeJSONString quotes s the way JSON.stringify does: only the quote, the
// backslash and control characters are escaped, so U+2028, U+2029 and HTML
// characters pass through. Invalid UTF-8 becomes U+FFFD.
func writeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteByte(hexDigits[r>>4])
				buf.WriteByte(hexDigits[r&0xf])
				continue
			}
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

func writeJSONNumber(buf *bytes.Buffer, f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		buf.WriteString("null")
		return
	}
	if f == 0 {
		// Negative zero prints as 0.
		buf.WriteByte('0')
		return
	}
	b, err := json.Marshal(f)
	if err != nil {
		buf.WriteString("null")
		return
	}
	buf.Write(b)
}

// Equal reports deep equality, including map key order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.num == o.num
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return v.m.Equal(o.m)
	default:
		return true
	}
}
