package dynok

import "unicode/utf8"

// Property is a validated (name, value) binding. It is the only way a value
// enters an Object.
type Property struct {
	name  string
	value Value
}

// NewProperty validates raw (see ValueOf) and binds it to name. name must be
// non-empty UTF-8 text.
func NewProperty(name string, raw any) (Property, error) {
	if name == "" || !utf8.ValidString(name) {
		return Property{}, &InvalidPropertyNameError{Property: name}
	}
	v, err := ValueOf(name, raw)
	if err != nil {
		return Property{}, err
	}
	return Property{name: name, value: v}, nil
}

// Name returns the property name.
func (p Property) Name() string { return p.name }

// Value returns the validated value.
func (p Property) Value() Value { return p.value }

// IsValid reports whether p was produced by NewProperty.
func (p Property) IsValid() bool { return p.name != "" && p.value.IsValid() }
