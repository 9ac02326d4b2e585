package dynok

import (
	"fmt"
	"io"

	eng "github.com/reoring/dynok/internal/engine"
	"github.com/reoring/dynok/internal/source/gojson"
	"github.com/reoring/dynok/internal/source/stdjson"
)

// Driver selects the JSON tokenizer used by the decoder.
type Driver int

const (
	DriverGoJSON Driver = iota // github.com/goccy/go-json (default)
	DriverStdlib               // encoding/json
)

func (d Driver) String() string {
	switch d {
	case DriverGoJSON:
		return "go-json"
	case DriverStdlib:
		return "encoding/json"
	}
	return fmt.Sprintf("Driver(%d)", int(d))
}

func (d Driver) newReader(r io.Reader) eng.TokenSource {
	if d == DriverStdlib {
		return stdjson.NewReader(r)
	}
	return gojson.NewReader(r)
}

func (d Driver) newBytes(b []byte) eng.TokenSource {
	if d == DriverStdlib {
		return stdjson.NewBytes(b)
	}
	return gojson.NewBytes(b)
}

// NumberMode dictates how JSON numbers are mapped to value kinds.
type NumberMode int

const (
	// NumberWide decodes integral literals to Long and literals with a
	// fraction or exponent to Double.
	NumberWide NumberMode = iota
	// NumberNarrow decodes integral literals that fit in 32 bits to Int,
	// other integral literals to Long and the rest to Double.
	NumberNarrow
)

// UnknownPolicy controls envelope fields other than "type" and "properties".
type UnknownPolicy int

const (
	UnknownStrip  UnknownPolicy = iota // Ignore unknown envelope fields.
	UnknownStrict                      // Reject unknown envelope fields.
)

// DuplicatePolicy controls duplicate keys within one JSON object.
type DuplicatePolicy int

const (
	DupError  DuplicatePolicy = iota // Reject the input.
	DupWarn                          // Report through DecodeOpt.OnWarning, last value wins.
	DupIgnore                        // Last value wins silently.
)

// Warning is a non-fatal decode issue.
type Warning struct {
	Code    string
	Path    string
	Message string
}

// DecodeOpt bundles decoding options. The zero value is the default: go-json
// driver, wide numbers, unknown envelope fields ignored, duplicate keys
// rejected, no depth or size limit.
type DecodeOpt struct {
	Driver         Driver
	NumberMode     NumberMode
	Unknown        UnknownPolicy
	OnDuplicateKey DuplicatePolicy
	MaxDepth       int   // maximum JSON container nesting; 0 means unlimited
	MaxBytes       int64 // maximum input size; 0 means unlimited
	OnWarning      func(Warning)
}

func resolveDecodeOpt(opts []DecodeOpt) DecodeOpt {
	if len(opts) == 0 {
		return DecodeOpt{}
	}
	return opts[len(opts)-1]
}

func (o DecodeOpt) enforceOptions() eng.EnforceOptions {
	eo := eng.EnforceOptions{MaxDepth: o.MaxDepth, MaxBytes: o.MaxBytes}
	switch o.OnDuplicateKey {
	case DupWarn:
		eo.OnDuplicate = eng.DupWarn
	case DupIgnore:
		eo.OnDuplicate = eng.DupIgnore
	default:
		eo.OnDuplicate = eng.DupError
	}
	if o.OnWarning != nil {
		warn := o.OnWarning
		eo.IssueSink = func(si eng.SimpleIssue) {
			warn(Warning{Code: si.Code, Path: si.Path, Message: si.Message})
		}
	}
	return eo
}

// ParseDriver maps "go-json" / "encoding/json" (or "gojson" / "stdlib") to a Driver.
func ParseDriver(s string) (Driver, error) {
	switch s {
	case "", "go-json", "gojson":
		return DriverGoJSON, nil
	case "encoding/json", "stdlib", "std":
		return DriverStdlib, nil
	}
	return 0, fmt.Errorf("dynok: unknown driver %q", s)
}

// ParseNumberMode maps "wide" / "narrow" to a NumberMode.
func ParseNumberMode(s string) (NumberMode, error) {
	switch s {
	case "", "wide":
		return NumberWide, nil
	case "narrow":
		return NumberNarrow, nil
	}
	return 0, fmt.Errorf("dynok: unknown number mode %q", s)
}

// ParseUnknownPolicy maps "strip" / "strict" to an UnknownPolicy.
func ParseUnknownPolicy(s string) (UnknownPolicy, error) {
	switch s {
	case "", "strip":
		return UnknownStrip, nil
	case "strict":
		return UnknownStrict, nil
	}
	return 0, fmt.Errorf("dynok: unknown policy %q", s)
}

// ParseDuplicatePolicy maps "error" / "warn" / "ignore" to a DuplicatePolicy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "", "error":
		return DupError, nil
	case "warn":
		return DupWarn, nil
	case "ignore":
		return DupIgnore, nil
	}
	return 0, fmt.Errorf("dynok: unknown duplicate key policy %q", s)
}
