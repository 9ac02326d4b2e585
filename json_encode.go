package dynok

import (
	"bytes"
	"strconv"

	json "github.com/goccy/go-json"
)

// Canonical envelope field names.
const (
	FieldType       = "type"
	FieldProperties = "properties"
)

// ToJSON encodes o as the canonical envelope, indented with two spaces:
//
//	{
//	  "type": "<type>",
//	  "properties": { "<name>": <value>, ... }
//	}
//
// Properties appear in insertion order. Nested objects, including list
// elements, use the same envelope.
func (o *Object) ToJSON() string { return o.ToJSONIndent("", "  ") }

// ToJSONIndent is like ToJSON with a custom prefix and indent.
func (o *Object) ToJSONIndent(prefix, indent string) string {
	compact := o.AppendJSON(nil)
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, prefix, indent); err != nil {
		return string(compact)
	}
	return buf.String()
}

// AppendJSON appends the compact canonical encoding of o to dst.
func (o *Object) AppendJSON(dst []byte) []byte {
	dst = append(dst, `{"`+FieldType+`":`...)
	dst = appendString(dst, o.typ)
	dst = append(dst, `,"`+FieldProperties+`":{`...)
	for i, name := range o.names {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendString(dst, name)
		dst = append(dst, ':')
		dst = appendValue(dst, o.props[name])
	}
	return append(dst, '}', '}')
}

// MarshalJSON implements json.Marshaler with the compact canonical encoding.
func (o *Object) MarshalJSON() ([]byte, error) { return o.AppendJSON(nil), nil }

// String returns the compact canonical encoding.
func (o *Object) String() string {
	if o == nil {
		return "null"
	}
	return string(o.AppendJSON(nil))
}

func appendValue(dst []byte, v Value) []byte {
	switch v.kind {
	case KindString:
		return appendString(dst, v.s)
	case KindInt, KindLong:
		return strconv.AppendInt(dst, v.n, 10)
	case KindFloat:
		return appendFloat(dst, v.f, 32)
	case KindDouble:
		return appendFloat(dst, v.f, 64)
	case KindBool:
		return strconv.AppendBool(dst, v.b)
	case KindObject:
		return v.obj.AppendJSON(dst)
	case KindList:
		dst = append(dst, '[')
		for i, e := range v.list {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendValue(dst, e)
		}
		return append(dst, ']')
	}
	return append(dst, "null"...)
}

func appendString(dst []byte, s string) []byte {
	b, err := json.Marshal(s)
	if err != nil {
		return strconv.AppendQuote(dst, s)
	}
	return append(dst, b...)
}
