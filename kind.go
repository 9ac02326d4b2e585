package dynok

// Kind enumerates the closed set of property value kinds.
type Kind uint8

// Supported kinds. KindInvalid is the zero value and never appears in a
// validated Value.
const (
	KindInvalid Kind = iota
	KindString
	KindInt    // 32-bit integer
	KindLong   // 64-bit integer
	KindFloat  // 32-bit float
	KindDouble // 64-bit float
	KindBool
	KindObject
	KindList
)

var kindNames = [...]string{
	KindInvalid: "Invalid",
	KindString:  "String",
	KindInt:     "Int",
	KindLong:    "Long",
	KindFloat:   "Float",
	KindDouble:  "Double",
	KindBool:    "Boolean",
	KindObject:  "Object",
	KindList:    "List",
}

// String returns the display name of k, e.g. "Long" or "Boolean".
func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "Invalid"
	}
	return kindNames[k]
}

// isElement reports whether k may appear as a list element.
func (k Kind) isElement() bool { return k != KindInvalid && k != KindList }
