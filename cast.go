package dynok

import "fmt"

// Get returns the named property of o as T. It fails with
// *PropertyNotFoundError when the property is absent and with
// *InvalidCastError when the stored kind does not match T (see Cast).
func Get[T any](o *Object, name string) (T, error) {
	v, ok := o.Value(name)
	if !ok {
		var zero T
		return zero, &PropertyNotFoundError{Property: name}
	}
	return Cast[T](v)
}

// Cast converts v to T when the kinds match exactly. No numeric widening or
// narrowing and no string conversion is performed.
//
//	string  ← String      int32   ← Int      int64 ← Long
//	float32 ← Float       float64 ← Double   bool  ← Boolean
//	*Object ← Object      Value, any ← every kind
//	[]E     ← List whose elements all map to E (E one of the above, or Value/any)
func Cast[T any](v Value) (T, error) {
	var out T
	if assign(v, &out) {
		return out, nil
	}
	var zero T
	return zero, &InvalidCastError{Value: v.describe(), Target: targetName[T]()}
}

func assign(v Value, dst any) bool {
	switch p := dst.(type) {
	case *Value:
		*p = v
	case *any:
		*p = v.Interface()
	case *[]Value:
		if v.kind != KindList {
			return false
		}
		*p = v.Elems()
	case *[]any:
		return assignList(v, p, func(e Value) (any, bool) { return e.Interface(), true })
	case *[]string:
		return assignList(v, p, scalar[string])
	case *[]int32:
		return assignList(v, p, scalar[int32])
	case *[]int64:
		return assignList(v, p, scalar[int64])
	case *[]float32:
		return assignList(v, p, scalar[float32])
	case *[]float64:
		return assignList(v, p, scalar[float64])
	case *[]bool:
		return assignList(v, p, scalar[bool])
	case *[]*Object:
		return assignList(v, p, scalar[*Object])
	default:
		if v.kind == KindList {
			return false
		}
		return assignScalar(v, dst)
	}
	return true
}

func assignScalar(v Value, dst any) bool {
	switch p := dst.(type) {
	case *string:
		if v.kind != KindString {
			return false
		}
		*p = v.s
	case *int32:
		if v.kind != KindInt {
			return false
		}
		*p = int32(v.n)
	case *int64:
		if v.kind != KindLong {
			return false
		}
		*p = v.n
	case *float32:
		if v.kind != KindFloat {
			return false
		}
		*p = float32(v.f)
	case *float64:
		if v.kind != KindDouble {
			return false
		}
		*p = v.f
	case *bool:
		if v.kind != KindBool {
			return false
		}
		*p = v.b
	case **Object:
		if v.kind != KindObject {
			return false
		}
		*p = v.obj
	default:
		return false
	}
	return true
}

func scalar[E any](v Value) (E, bool) {
	var out E
	return out, assignScalar(v, &out)
}

func assignList[E any](v Value, dst *[]E, conv func(Value) (E, bool)) bool {
	if v.kind != KindList {
		return false
	}
	out := make([]E, len(v.list))
	for i, e := range v.list {
		c, ok := conv(e)
		if !ok {
			return false
		}
		out[i] = c
	}
	*dst = out
	return true
}

func targetName[T any]() string {
	return fmt.Sprintf("%T", (*T)(nil))[1:]
}
