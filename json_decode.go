package dynok

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	eng "github.com/reoring/dynok/internal/engine"
)

// FromJSON decodes the canonical envelope produced by ToJSON. Every nested
// object is rebuilt through the same validation as NewObject, so a decoded
// object obeys the same constraints as a constructed one.
//
// Numbers: integral literals become Long and literals with a fraction or an
// exponent become Double (see NumberMode for the narrow variant). Integral
// literals outside the int64 range are rejected.
//
// All failures are reported as *SerializationError; construction failures
// keep the *UnsupportedPropertyTypeError as Cause.
func FromJSON(text string, opts ...DecodeOpt) (*Object, error) {
	return FromJSONBytes([]byte(text), opts...)
}

// FromJSONBytes is FromJSON for a byte slice.
func FromJSONBytes(data []byte, opts ...DecodeOpt) (*Object, error) {
	opt := resolveDecodeOpt(opts)
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, maxBytesError(opt.MaxBytes)
	}
	return decodeDocument(opt.Driver.newBytes(data), opt)
}

// FromJSONReader is FromJSON for an io.Reader. The whole input is consumed;
// there is no partial result.
func FromJSONReader(r io.Reader, opts ...DecodeOpt) (*Object, error) {
	opt := resolveDecodeOpt(opts)
	if opt.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
		if err != nil {
			return nil, &SerializationError{Reason: CodeParseError, Path: "/", Cause: err}
		}
		return FromJSONBytes(data, opt)
	}
	return decodeDocument(opt.Driver.newReader(r), opt)
}

func maxBytesError(limit int64) *SerializationError {
	return &SerializationError{Reason: CodeTruncated, Path: "/", Message: "input larger than " + strconv.FormatInt(limit, 10) + " bytes"}
}

type decoder struct {
	src *eng.Enforcer
	opt DecodeOpt
}

func decodeDocument(ts eng.TokenSource, opt DecodeOpt) (*Object, error) {
	d := &decoder{src: eng.WrapWithEnforcement(ts, opt.enforceOptions()), opt: opt}
	tok, err := d.next()
	if err != nil {
		return nil, err
	}
	o, err := d.envelope(tok)
	if err != nil {
		return nil, err
	}
	switch _, err := d.src.NextToken(); {
	case errors.Is(err, io.EOF):
		return o, nil
	case err != nil:
		return nil, d.wrap(err)
	default:
		return nil, d.fail(CodeParseError, d.src.Path(), "unexpected data after the top-level object", nil)
	}
}

// next reads a token and maps tokenizer and enforcement errors.
func (d *decoder) next() (eng.Token, error) {
	tok, err := d.src.NextToken()
	if err != nil {
		return eng.Token{}, d.wrap(err)
	}
	return tok, nil
}

func (d *decoder) wrap(err error) error {
	var se *SerializationError
	if errors.As(err, &se) {
		return err
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return &SerializationError{Reason: ie.Code, Path: ie.Path, Message: ie.Message}
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return &SerializationError{Reason: CodeParseError, Path: pointer(d.src.Path()), Cause: err}
}

func (d *decoder) fail(reason, path, msg string, cause error) *SerializationError {
	return &SerializationError{Reason: reason, Path: pointer(path), Message: msg, Cause: cause}
}

func pointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

// envelope decodes {"type": ..., "properties": {...}} starting at tok.
func (d *decoder) envelope(tok eng.Token) (*Object, error) {
	path := d.src.Path()
	if tok.Kind != eng.KindBeginObject {
		return nil, d.fail(CodeInvalidEnvelope, path, "expected an object, found "+tok.Kind.String(), nil)
	}
	var (
		typ               string
		hasType, hasProps bool
		names             []string
		raws              []any
	)
	for {
		key, err := d.next()
		if err != nil {
			return nil, err
		}
		if key.Kind == eng.KindEndObject {
			break
		}
		vt, err := d.next()
		if err != nil {
			return nil, err
		}
		switch key.String {
		case FieldType:
			if vt.Kind != eng.KindString {
				return nil, d.fail(CodeInvalidEnvelope, d.src.Path(), "'type' must be a string, found "+vt.Kind.String(), nil)
			}
			typ, hasType = vt.String, true
		case FieldProperties:
			if vt.Kind != eng.KindBeginObject {
				return nil, d.fail(CodeInvalidEnvelope, d.src.Path(), "'properties' must be an object, found "+vt.Kind.String(), nil)
			}
			if names, raws, err = d.properties(); err != nil {
				return nil, err
			}
			hasProps = true
		default:
			if d.opt.Unknown == UnknownStrict {
				return nil, d.fail(CodeUnknownKey, d.src.Path(), "unknown field '"+key.String+"'", nil)
			}
			if err := eng.SkipValue(d.src, vt); err != nil {
				return nil, d.wrap(err)
			}
		}
	}
	if !hasType || !hasProps {
		return nil, d.fail(CodeMissingField, path, missingFields(hasType, hasProps), nil)
	}

	props := make([]Property, len(names))
	for i, name := range names {
		p, err := NewProperty(name, raws[i])
		if err != nil {
			at := eng.JoinPointer(eng.JoinPointer(path, FieldProperties), name)
			return nil, d.fail(CodeInvalidValue, at, "", err)
		}
		props[i] = p
	}
	o, err := NewObjectFrom(typ, props...)
	if err != nil {
		return nil, d.fail(CodeInvalidValue, path, "", err)
	}
	return o, nil
}

func missingFields(hasType, hasProps bool) string {
	var missing []string
	if !hasType {
		missing = append(missing, "'"+FieldType+"'")
	}
	if !hasProps {
		missing = append(missing, "'"+FieldProperties+"'")
	}
	return "missing " + strings.Join(missing, " and ")
}

// properties decodes the members of a "properties" object into raw values in
// document order. Raw values are validated by the caller.
func (d *decoder) properties() ([]string, []any, error) {
	var (
		names []string
		raws  []any
	)
	for {
		key, err := d.next()
		if err != nil {
			return nil, nil, err
		}
		if key.Kind == eng.KindEndObject {
			return names, raws, nil
		}
		vt, err := d.next()
		if err != nil {
			return nil, nil, err
		}
		raw, err := d.value(vt, false)
		if err != nil {
			return nil, nil, err
		}
		names = append(names, key.String)
		raws = append(raws, raw)
	}
}

// value decodes a property value or a list element. Objects recurse into the
// envelope decoder. Arrays nested in a list are decoded generically and left
// for the validator to reject.
func (d *decoder) value(tok eng.Token, inList bool) (any, error) {
	switch tok.Kind {
	case eng.KindBeginObject:
		o, err := d.envelope(tok)
		if err != nil {
			return nil, err
		}
		return o, nil
	case eng.KindBeginArray:
		if inList {
			v, err := eng.DecodeAny(d.src, tok, d.number)
			if err != nil {
				return nil, d.wrap(err)
			}
			return v, nil
		}
		items := []any{}
		for {
			et, err := d.next()
			if err != nil {
				return nil, err
			}
			if et.Kind == eng.KindEndArray {
				return items, nil
			}
			item, err := d.value(et, true)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	case eng.KindString:
		return tok.String, nil
	case eng.KindNumber:
		return d.number(tok.Number)
	case eng.KindBool:
		return tok.Bool, nil
	case eng.KindNull:
		return nil, nil
	}
	return nil, d.fail(CodeParseError, d.src.Path(), "unexpected "+tok.Kind.String(), nil)
}

func (d *decoder) number(s string) (any, error) {
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, d.fail(CodeOverflow, d.src.Path(), s, err)
		}
		return f, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, d.fail(CodeOverflow, d.src.Path(), s, err)
	}
	if d.opt.NumberMode == NumberNarrow && n >= math.MinInt32 && n <= math.MaxInt32 {
		return int32(n), nil
	}
	return n, nil
}
