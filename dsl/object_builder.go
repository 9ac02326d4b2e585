package dsl

import (
	"github.com/reoring/dynok"
)

type entry struct {
	name  string
	value any
}

// Builder accumulates properties for a single object. It performs no
// validation of its own; Build hands everything to dynok in one call.
type Builder struct {
	typ     string
	entries []entry
}

// Object starts a builder for an object of the given type.
func Object(typ string) *Builder {
	return &Builder{typ: typ}
}

// New runs init against a fresh builder and builds the object, mirroring a
// block-style declaration:
//
//	customer, err := dsl.New("Customer", func(b *dsl.Builder) {
//	    b.Property("email", "george@green.fr")
//	    b.Property("premium", true)
//	})
func New(typ string, init func(b *Builder)) (*dynok.Object, error) {
	b := Object(typ)
	if init != nil {
		init(b)
	}
	return b.Build()
}

// Property adds or replaces a property. A replaced property keeps its
// original position.
func (b *Builder) Property(name string, value any) *Builder {
	b.entries = append(b.entries, entry{name: name, value: value})
	return b
}

// Object adds a nested object built by init. It is sugar for
// Property(name, New(typ, init)); a failure of the nested build surfaces from
// the outer Build.
func (b *Builder) Object(name, typ string, init func(b *Builder)) *Builder {
	nested := Object(typ)
	if init != nil {
		init(nested)
	}
	return b.Property(name, nested)
}

// Len returns the number of accumulated entries, repeats included.
func (b *Builder) Len() int { return len(b.entries) }

// Build validates every accumulated value in order and returns the object, or
// the first validation error.
func (b *Builder) Build() (*dynok.Object, error) {
	props := make([]dynok.Property, 0, len(b.entries))
	for _, e := range b.entries {
		raw, err := resolve(e.value)
		if err != nil {
			return nil, err
		}
		p, err := dynok.NewProperty(e.name, raw)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return dynok.NewObjectFrom(b.typ, props...)
}

// MustBuild is like Build but panics on error. Intended for tests and
// package-level fixtures.
func (b *Builder) MustBuild() *dynok.Object {
	o, err := b.Build()
	if err != nil {
		panic(err)
	}
	return o
}

// resolve builds nested builders, including builders inside []any and
// []*Builder lists.
func resolve(v any) (any, error) {
	switch x := v.(type) {
	case *Builder:
		if x == nil {
			return v, nil
		}
		return x.Build()
	case []*Builder:
		out := make([]*dynok.Object, len(x))
		for i, nb := range x {
			o, err := resolve(nb)
			if err != nil {
				return nil, err
			}
			obj, ok := o.(*dynok.Object)
			if !ok {
				return x, nil
			}
			out[i] = obj
		}
		return out, nil
	case []any:
		var out []any
		for i, item := range x {
			if _, ok := item.(*Builder); !ok {
				continue
			}
			if out == nil {
				out = append([]any{}, x...)
			}
			o, err := resolve(item)
			if err != nil {
				return nil, err
			}
			out[i] = o
		}
		if out == nil {
			return x, nil
		}
		return out, nil
	}
	return v, nil
}
