package dynok

import (
	"iter"
	"maps"
	"slices"
	"sort"
	"unicode/utf8"
)

// Object is an immutable, type-tagged set of named properties. Every stored
// value has passed ValueOf. Operations that change an Object return a copy and
// never touch the receiver, so an Object can be shared freely.
type Object struct {
	typ   string
	names []string // insertion order
	props map[string]Value
}

// NewObject validates every entry of props, in name order, and returns the
// resulting object. It fails on the first invalid entry.
func NewObject(typ string, props map[string]any) (*Object, error) {
	names := slices.Collect(maps.Keys(props))
	sort.Strings(names)
	out := make([]Property, 0, len(names))
	for _, name := range names {
		p, err := NewProperty(name, props[name])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return NewObjectFrom(typ, out...)
}

// NewObjectFrom builds an object from properties in the given order. A name
// given twice keeps its first position and its last value. Properties that did
// not come from NewProperty are rejected, as is a type name that is not valid
// UTF-8.
func NewObjectFrom(typ string, props ...Property) (*Object, error) {
	if !utf8.ValidString(typ) {
		return nil, &InvalidTypeNameError{Type: typ}
	}
	o := &Object{typ: typ, names: make([]string, 0, len(props)), props: make(map[string]Value, len(props))}
	for _, p := range props {
		if !p.IsValid() {
			if p.name == "" {
				return nil, &InvalidPropertyNameError{Property: p.name}
			}
			return nil, unsupported(p.name, "invalid Value")
		}
		if _, ok := o.props[p.name]; !ok {
			o.names = append(o.names, p.name)
		}
		o.props[p.name] = p.value
	}
	return o, nil
}

// Type returns the free-form type name of o.
func (o *Object) Type() string { return o.typ }

// Len returns the number of properties.
func (o *Object) Len() int { return len(o.names) }

// Names returns the property names in insertion order.
func (o *Object) Names() []string { return slices.Clone(o.names) }

// Has reports whether the property exists.
func (o *Object) Has(name string) bool {
	_, ok := o.props[name]
	return ok
}

// Value returns the stored value of a property.
func (o *Object) Value(name string) (Value, bool) {
	v, ok := o.props[name]
	return v, ok
}

// All iterates over the properties in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, name := range o.names {
			if !yield(name, o.props[name]) {
				return
			}
		}
	}
}

// Properties returns the properties in insertion order.
func (o *Object) Properties() []Property {
	out := make([]Property, 0, len(o.names))
	for name, v := range o.All() {
		out = append(out, Property{name: name, value: v})
	}
	return out
}

// Set returns a copy of o with the property inserted or overwritten. o is not
// modified.
func (o *Object) Set(name string, raw any) (*Object, error) {
	p, err := NewProperty(name, raw)
	if err != nil {
		return nil, err
	}
	cp := o.clone(1)
	if _, ok := cp.props[name]; !ok {
		cp.names = append(cp.names, name)
	}
	cp.props[name] = p.value
	return cp, nil
}

// Remove returns a copy of o without the property.
func (o *Object) Remove(name string) (*Object, error) {
	if !o.Has(name) {
		return nil, &PropertyNotFoundError{Property: name}
	}
	cp := o.clone(0)
	delete(cp.props, name)
	cp.names = slices.DeleteFunc(cp.names, func(n string) bool { return n == name })
	return cp, nil
}

// WithType returns a copy of o carrying a different type name.
func (o *Object) WithType(typ string) (*Object, error) {
	if !utf8.ValidString(typ) {
		return nil, &InvalidTypeNameError{Type: typ}
	}
	cp := o.clone(0)
	cp.typ = typ
	return cp, nil
}

func (o *Object) clone(extra int) *Object {
	names := make([]string, len(o.names), len(o.names)+extra)
	copy(names, o.names)
	props := make(map[string]Value, len(o.props)+extra)
	maps.Copy(props, o.props)
	return &Object{typ: o.typ, names: names, props: props}
}

// Equal reports structural equality: same type name and the same set of
// properties with equal values. Property order is ignored.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o == other {
		return true
	}
	if o.typ != other.typ || len(o.props) != len(other.props) {
		return false
	}
	for name, v := range o.props {
		w, ok := other.props[name]
		if !ok || !v.Equal(w) {
			return false
		}
	}
	return true
}
