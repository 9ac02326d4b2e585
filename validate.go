package dynok

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValueOf lifts raw into a Value, accepting exactly the supported kinds:
// string (valid UTF-8), int32, int64 (and int, lifted to Long), float32, float64 (finite),
// bool, non-nil *Object, Value, and lists of those (typed slices, []any or
// []Value) whose elements are not lists themselves. name is only used to
// report failures as *UnsupportedPropertyTypeError.
func ValueOf(name string, raw any) (Value, error) {
	if v, ok := raw.(Value); ok {
		return checkValue(name, v)
	}
	if v, ok := liftScalar(raw); ok {
		return checkValue(name, v)
	}
	if items, ok := listItems(raw); ok {
		return liftList(name, items)
	}
	return Value{}, unsupported(name, typeName(raw))
}

// checkValue validates an already lifted value.
func checkValue(name string, v Value) (Value, error) {
	switch {
	case v.kind == KindInvalid:
		return Value{}, unsupported(name, "invalid Value")
	case !v.finite():
		return Value{}, unsupported(name, fmt.Sprintf("%s(%v)", v.kind, v.f))
	case v.kind == KindString && !utf8.ValidString(v.s):
		return Value{}, unsupported(name, "String(invalid UTF-8)")
	case v.kind == KindObject && v.obj == nil:
		return Value{}, unsupported(name, "nil")
	case v.kind == KindList:
		items := make([]any, len(v.list))
		for i, e := range v.list {
			items[i] = e
		}
		return liftList(name, items)
	}
	return v, nil
}

func liftScalar(raw any) (Value, bool) {
	switch x := raw.(type) {
	case string:
		return String(x), true
	case int32:
		return Int(x), true
	case int64:
		return Long(x), true
	case int:
		return Long(int64(x)), true
	case float32:
		return Float(x), true
	case float64:
		return Double(x), true
	case bool:
		return Bool(x), true
	case *Object:
		if x == nil {
			return Value{}, false
		}
		return ObjectValue(x), true
	}
	return Value{}, false
}

// liftElem lifts a single list element; lists are not valid elements.
func liftElem(raw any) (Value, bool) {
	v, ok := raw.(Value)
	if !ok {
		if v, ok = liftScalar(raw); !ok {
			return Value{}, false
		}
	}
	if !v.kind.isElement() || !v.finite() || (v.kind == KindObject && v.obj == nil) ||
		(v.kind == KindString && !utf8.ValidString(v.s)) {
		return Value{}, false
	}
	return v, true
}

func liftList(name string, items []any) (Value, error) {
	out := make([]Value, len(items))
	for i, item := range items {
		v, ok := liftElem(item)
		if !ok {
			return Value{}, unsupported(name, "List of "+elementTypeNames(items))
		}
		out[i] = v
	}
	return Value{kind: KindList, list: out}, nil
}

// listItems exposes the elements of the accepted slice types.
func listItems(raw any) ([]any, bool) {
	switch x := raw.(type) {
	case []any:
		return x, true
	case []Value:
		return boxed(x), true
	case []string:
		return boxed(x), true
	case []int32:
		return boxed(x), true
	case []int64:
		return boxed(x), true
	case []int:
		return boxed(x), true
	case []float32:
		return boxed(x), true
	case []float64:
		return boxed(x), true
	case []bool:
		return boxed(x), true
	case []*Object:
		return boxed(x), true
	}
	return nil, false
}

func boxed[E any](s []E) []any {
	out := make([]any, len(s))
	for i, e := range s {
		out[i] = e
	}
	return out
}

// elementTypeNames lists the distinct element type names in first-seen order.
func elementTypeNames(items []any) string {
	seen := make(map[string]struct{}, len(items))
	names := make([]string, 0, len(items))
	for _, item := range items {
		n := typeName(item)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}
	return strings.Join(names, ", ")
}

func typeName(raw any) string {
	switch x := raw.(type) {
	case nil:
		return "nil"
	case string:
		if !utf8.ValidString(x) {
			return "String(invalid UTF-8)"
		}
	case Value:
		return x.kind.String()
	case *Object:
		if x == nil {
			return "nil"
		}
		return "Object"
	case float32:
		if v := Float(x); !v.finite() {
			return fmt.Sprintf("Float(%v)", x)
		}
	case float64:
		if v := Double(x); !v.finite() {
			return fmt.Sprintf("Double(%v)", x)
		}
	}
	return fmt.Sprintf("%T", raw)
}

func unsupported(name, typ string) *UnsupportedPropertyTypeError {
	return &UnsupportedPropertyTypeError{Property: name, Type: typ}
}
