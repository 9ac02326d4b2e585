package dynok

import (
	"math"
	"strconv"
	"strings"
)

// Value is a closed tagged union over the supported property kinds. The zero
// Value is invalid; values are produced by the constructors below or by
// ValueOf, and are only admitted into an Object after validation.
type Value struct {
	kind Kind
	s    string
	n    int64   // KindInt, KindLong
	f    float64 // KindFloat (exact widening of the float32), KindDouble
	b    bool
	obj  *Object
	list []Value
}

// String returns a String value. Invalid UTF-8 is rejected when stored.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int returns an Int (32-bit) value.
func Int(n int32) Value { return Value{kind: KindInt, n: int64(n)} }

// Long returns a Long (64-bit) value.
func Long(n int64) Value { return Value{kind: KindLong, n: n} }

// Float returns a Float (32-bit) value. NaN and ±Inf are rejected when stored.
func Float(f float32) Value { return Value{kind: KindFloat, f: float64(f)} }

// Double returns a Double (64-bit) value. NaN and ±Inf are rejected when stored.
func Double(f float64) Value { return Value{kind: KindDouble, f: f} }

// Bool returns a Boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// ObjectValue wraps a nested object. A nil object is rejected when stored.
func ObjectValue(o *Object) Value { return Value{kind: KindObject, obj: o} }

// List builds a list value. The elements are copied.
func List(elems ...Value) Value {
	return Value{kind: KindList, list: append([]Value{}, elems...)}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds one of the supported kinds.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// Len returns the number of elements of a list value, 0 otherwise.
func (v Value) Len() int { return len(v.list) }

// Elems returns a copy of the elements of a list value, nil otherwise.
func (v Value) Elems() []Value {
	if v.kind != KindList {
		return nil
	}
	return append([]Value{}, v.list...)
}

// Interface returns the native Go form of v: string, int32, int64, float32,
// float64, bool, *Object or []any.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return int32(v.n)
	case KindLong:
		return v.n
	case KindFloat:
		return float32(v.f)
	case KindDouble:
		return v.f
	case KindBool:
		return v.b
	case KindObject:
		return v.obj
	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.Interface()
		}
		return out
	}
	return nil
}

// Equal reports structural equality: same kind and same payload, objects and
// lists compared recursively.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == w.s
	case KindInt, KindLong:
		return v.n == w.n
	case KindFloat, KindDouble:
		return v.f == w.f
	case KindBool:
		return v.b == w.b
	case KindObject:
		return v.obj.Equal(w.obj)
	case KindList:
		if len(v.list) != len(w.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(w.list[i]) {
				return false
			}
		}
		return true
	}
	return true
}

// String renders v for diagnostics. Strings are quoted, objects and lists use
// their compact JSON form.
func (v Value) String() string {
	switch v.kind {
	case KindInvalid:
		return "<invalid>"
	case KindObject:
		return v.obj.String()
	}
	return string(appendValue(nil, v))
}

// describe renders v together with its kind, e.g. `"George" (String)`.
func (v Value) describe() string {
	return v.String() + " (" + v.kind.String() + ")"
}

// finite reports whether a float payload can be represented in JSON.
func (v Value) finite() bool {
	if v.kind != KindFloat && v.kind != KindDouble {
		return true
	}
	return !math.IsNaN(v.f) && !math.IsInf(v.f, 0)
}

// appendFloat writes f in JSON form. Integral values keep a ".0" suffix so
// that decoding yields a floating point kind again.
func appendFloat(dst []byte, f float64, bits int) []byte {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, format, -1, bits)
	if !strings.ContainsAny(string(dst[start:]), ".e") {
		dst = append(dst, '.', '0')
	}
	return dst
}
