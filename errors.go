package dynok

import (
	"errors"

	"github.com/reoring/dynok/i18n"
)

// Error codes (exported consts for IDE completion and stable matching)
const (
	CodeUnsupportedType  = "unsupported_type"
	CodePropertyNotFound = "property_not_found"
	CodeInvalidCast      = "invalid_cast"
	CodeInvalidName      = "invalid_name"
	CodeInvalidTypeName  = "invalid_type_name"
	CodeSerialization    = "serialization"
)

// Serialization reasons carried by SerializationError.Reason.
const (
	CodeParseError      = "parse_error"
	CodeMissingField    = "missing_field"
	CodeInvalidEnvelope = "invalid_envelope"
	CodeDuplicateKey    = "duplicate_key"
	CodeMaxDepth        = "max_depth"
	CodeTruncated       = "truncated"
	CodeOverflow        = "overflow"
	CodeUnknownKey      = "unknown_key"
	CodeInvalidValue    = "invalid_value"
)

// Sentinels matched by errors.Is against the typed errors below.
var (
	ErrUnsupportedPropertyType = errors.New("dynok: unsupported property type")
	ErrPropertyNotFound        = errors.New("dynok: property not found")
	ErrInvalidCast             = errors.New("dynok: invalid cast")
	ErrInvalidPropertyName     = errors.New("dynok: invalid property name")
	ErrInvalidTypeName         = errors.New("dynok: invalid type name")
	ErrSerialization           = errors.New("dynok: serialization error")
)

// UnsupportedPropertyTypeError reports a value outside the supported kinds.
// Type describes the runtime type that was encountered; for lists it reads
// "List of <element types>".
type UnsupportedPropertyTypeError struct {
	Property string
	Type     string
}

func (e *UnsupportedPropertyTypeError) Error() string {
	return i18n.T(CodeUnsupportedType, map[string]string{"property": e.Property, "type": e.Type})
}
func (e *UnsupportedPropertyTypeError) Code() string { return CodeUnsupportedType }
func (e *UnsupportedPropertyTypeError) Is(target error) bool {
	return target == ErrUnsupportedPropertyType
}

// PropertyNotFoundError reports a lookup of an absent property.
type PropertyNotFoundError struct {
	Property string
}

func (e *PropertyNotFoundError) Error() string {
	return i18n.T(CodePropertyNotFound, map[string]string{"property": e.Property})
}
func (e *PropertyNotFoundError) Code() string         { return CodePropertyNotFound }
func (e *PropertyNotFoundError) Is(target error) bool { return target == ErrPropertyNotFound }

// InvalidCastError reports a typed retrieval whose target type does not match
// the stored kind exactly.
type InvalidCastError struct {
	Value  string // description of the stored value, e.g. `"George" (String)`
	Target string // requested Go type
}

func (e *InvalidCastError) Error() string {
	return i18n.T(CodeInvalidCast, map[string]string{"value": e.Value, "target": e.Target})
}
func (e *InvalidCastError) Code() string         { return CodeInvalidCast }
func (e *InvalidCastError) Is(target error) bool { return target == ErrInvalidCast }

// InvalidPropertyNameError reports an empty or non-UTF-8 property name.
type InvalidPropertyNameError struct {
	Property string
}

func (e *InvalidPropertyNameError) Error() string {
	return i18n.T(CodeInvalidName, map[string]string{"property": e.Property})
}
func (e *InvalidPropertyNameError) Code() string         { return CodeInvalidName }
func (e *InvalidPropertyNameError) Is(target error) bool { return target == ErrInvalidPropertyName }

// InvalidTypeNameError reports an object type name that is not valid UTF-8.
type InvalidTypeNameError struct {
	Type string
}

func (e *InvalidTypeNameError) Error() string {
	return i18n.T(CodeInvalidTypeName, map[string]string{"type": e.Type})
}
func (e *InvalidTypeNameError) Code() string         { return CodeInvalidTypeName }
func (e *InvalidTypeNameError) Is(target error) bool { return target == ErrInvalidTypeName }

// SerializationError reports a JSON input that cannot be decoded into an
// Object. Path is a JSON Pointer into the input ("/" for the document root).
// Cause holds the underlying parse error or the construction error.
type SerializationError struct {
	Reason  string
	Path    string
	Message string
	Cause   error
}

func (e *SerializationError) Error() string {
	reason := i18n.T(e.Reason, nil)
	if e.Path != "" {
		reason += " at " + e.Path
	}
	if e.Message != "" {
		reason += ": " + e.Message
	} else if e.Cause != nil {
		reason += ": " + e.Cause.Error()
	}
	return i18n.T(CodeSerialization, map[string]string{"reason": reason})
}
func (e *SerializationError) Code() string         { return CodeSerialization }
func (e *SerializationError) Is(target error) bool { return target == ErrSerialization }
func (e *SerializationError) Unwrap() error        { return e.Cause }

// CodeOf returns the stable code of the outermost dynok error in err's chain,
// or "" when there is none.
func CodeOf(err error) string {
	var c interface{ Code() string }
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}
