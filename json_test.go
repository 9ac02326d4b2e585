package dynok_test

import (
	stdjson "encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/reoring/dynok"
)

func sampleCustomer(t *testing.T) *dynok.Object {
	t.Helper()
	company := mustObject(t, "Company", map[string]any{"name": "Acme", "size": int64(40)})
	branch := mustObject(t, "Company", map[string]any{"name": "Acme East"})
	o, err := dynok.NewObjectFrom("Customer",
		mustProp(t, "email", "george@sunnyvale.com"),
		mustProp(t, "premium", true),
		mustProp(t, "id", int64(7)),
		mustProp(t, "score", 2.0),
		mustProp(t, "ratio", 0.25),
		mustProp(t, "employer", company),
		mustProp(t, "visits", []int64{1, 2, 3}),
		mustProp(t, "tags", []string{}),
		mustProp(t, "branches", []*dynok.Object{company, branch}),
	)
	if err != nil {
		t.Fatalf("NewObjectFrom: %v", err)
	}
	return o
}

func serializationError(t *testing.T, err error, reason string) *dynok.SerializationError {
	t.Helper()
	var se *dynok.SerializationError
	if !errors.As(err, &se) {
		t.Fatalf("expected SerializationError, got %v", err)
	}
	if !errors.Is(err, dynok.ErrSerialization) {
		t.Fatalf("expected errors.Is(ErrSerialization)")
	}
	if se.Reason != reason {
		t.Fatalf("expected reason %s, got %s (%v)", reason, se.Reason, err)
	}
	return se
}

func TestJSON_RoundTrip(t *testing.T) {
	o := sampleCustomer(t)
	for _, drv := range []dynok.Driver{dynok.DriverGoJSON, dynok.DriverStdlib} {
		t.Run(drv.String(), func(t *testing.T) {
			back, err := dynok.FromJSON(o.ToJSON(), dynok.DecodeOpt{Driver: drv})
			if err != nil {
				t.Fatalf("FromJSON: %v", err)
			}
			if !back.Equal(o) {
				t.Fatalf("round trip mismatch:\n%s\n%s", o, back)
			}
			if got, want := back.Names(), o.Names(); strings.Join(got, ",") != strings.Join(want, ",") {
				t.Fatalf("order not preserved: %v vs %v", got, want)
			}
			score, err := dynok.Get[float64](back, "score")
			if err != nil || score != 2 {
				t.Fatalf("integral double lost its kind: %v, %v", score, err)
			}
		})
	}
}

func TestJSON_ArbitraryTypeNames(t *testing.T) {
	for _, typ := range []string{"", "com.example.Customer", "Ünïcode \"quoted\""} {
		o, err := dynok.NewObjectFrom(typ)
		if err != nil {
			t.Fatalf("NewObjectFrom: %v", err)
		}
		back, err := dynok.FromJSON(o.String())
		if err != nil || back.Type() != typ || back.Len() != 0 {
			t.Fatalf("type %q: %v, %v", typ, back, err)
		}
	}
}

func TestJSON_CompactAndIndentedForm(t *testing.T) {
	o, _ := dynok.NewObjectFrom("Customer",
		mustProp(t, "email", "a@b.com"),
		mustProp(t, "premium", true),
		mustProp(t, "id", int64(7)),
		mustProp(t, "score", 1.5),
		mustProp(t, "rank", int32(3)),
	)
	want := `{"type":"Customer","properties":{"email":"a@b.com","premium":true,"id":7,"score":1.5,"rank":3}}`
	if got := o.String(); got != want {
		t.Fatalf("compact form:\n got %s\nwant %s", got, want)
	}
	pretty := o.ToJSON()
	if !strings.Contains(pretty, "\n  \"type\": \"Customer\",\n") {
		t.Fatalf("unexpected indented form:\n%s", pretty)
	}
	if !strings.HasPrefix(pretty, "{\n") || !strings.HasSuffix(pretty, "}") {
		t.Fatalf("unexpected indented form:\n%s", pretty)
	}

	b, err := stdjson.Marshal(map[string]any{"customer": o})
	if err != nil {
		t.Fatalf("encoding/json: %v", err)
	}
	if string(b) != `{"customer":`+want+`}` {
		t.Fatalf("unexpected MarshalJSON output %s", b)
	}
	var nilObj *dynok.Object
	if nilObj.String() != "null" {
		t.Fatalf("nil object should print as null")
	}
}

func TestJSON_NumberModes(t *testing.T) {
	in := `{"type":"T","properties":{"small":5,"big":5000000000,"frac":1.5,"exp":1e3,"list":[1,2]}}`

	wide, err := dynok.FromJSON(in)
	if err != nil {
		t.Fatalf("wide: %v", err)
	}
	if v, err := dynok.Get[int64](wide, "small"); err != nil || v != 5 {
		t.Fatalf("wide small: %v, %v", v, err)
	}
	if v, err := dynok.Get[float64](wide, "exp"); err != nil || v != 1000 {
		t.Fatalf("wide exp: %v, %v", v, err)
	}
	if _, err := dynok.Get[[]int64](wide, "list"); err != nil {
		t.Fatalf("wide list: %v", err)
	}

	narrow, err := dynok.FromJSON(in, dynok.DecodeOpt{NumberMode: dynok.NumberNarrow})
	if err != nil {
		t.Fatalf("narrow: %v", err)
	}
	if v, err := dynok.Get[int32](narrow, "small"); err != nil || v != 5 {
		t.Fatalf("narrow small: %v, %v", v, err)
	}
	if v, err := dynok.Get[int64](narrow, "big"); err != nil || v != 5000000000 {
		t.Fatalf("narrow big: %v, %v", v, err)
	}
	if v, err := dynok.Get[float64](narrow, "frac"); err != nil || v != 1.5 {
		t.Fatalf("narrow frac: %v, %v", v, err)
	}
	if _, err := dynok.Get[[]int32](narrow, "list"); err != nil {
		t.Fatalf("narrow list: %v", err)
	}
}

func TestJSON_Reader(t *testing.T) {
	o := sampleCustomer(t)
	back, err := dynok.FromJSONReader(strings.NewReader(o.ToJSON()))
	if err != nil || !back.Equal(o) {
		t.Fatalf("FromJSONReader: %v", err)
	}
	back, err = dynok.FromJSONReader(strings.NewReader(o.String()), dynok.DecodeOpt{MaxBytes: 1 << 20})
	if err != nil || !back.Equal(o) {
		t.Fatalf("FromJSONReader with limit: %v", err)
	}
	_, err = dynok.FromJSONReader(strings.NewReader(o.String()), dynok.DecodeOpt{MaxBytes: 16})
	serializationError(t, err, dynok.CodeTruncated)
}

func TestJSON_DecodeFailures(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		reason string
		path   string
	}{
		{"missing type", `{"properties":{}}`, dynok.CodeMissingField, "/"},
		{"missing properties", `{"type":"T"}`, dynok.CodeMissingField, "/"},
		{"not an object", `[1,2]`, dynok.CodeInvalidEnvelope, "/"},
		{"type not string", `{"type":1,"properties":{}}`, dynok.CodeInvalidEnvelope, "/type"},
		{"properties not object", `{"type":"T","properties":[]}`, dynok.CodeInvalidEnvelope, "/properties"},
		{"nested missing field", `{"type":"T","properties":{"e":{"type":"C"}}}`, dynok.CodeMissingField, "/properties/e"},
		{"overflow", `{"type":"T","properties":{"n":99999999999999999999}}`, dynok.CodeOverflow, "/properties/n"},
		{"trailing object", `{"type":"T","properties":{}}{}`, dynok.CodeParseError, ""},
		{"truncated input", `{"type":"T","properties":{"a":`, dynok.CodeParseError, ""},
		{"empty input", ``, dynok.CodeParseError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o, err := dynok.FromJSON(tc.in)
			if o != nil {
				t.Fatalf("expected no object")
			}
			se := serializationError(t, err, tc.reason)
			if tc.path != "" && se.Path != tc.path {
				t.Fatalf("expected path %s, got %s", tc.path, se.Path)
			}
		})
	}
}

func TestJSON_DecodeRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		in   string
		path string
	}{
		{"null", `{"type":"T","properties":{"a":null}}`, "/properties/a"},
		{"list of lists", `{"type":"T","properties":{"x":[[1]]}}`, "/properties/x"},
		{"null in list", `{"type":"T","properties":{"x":["a",null]}}`, "/properties/x"},
		{"nested null", `{"type":"T","properties":{"e":{"type":"C","properties":{"z":null}}}}`, "/properties/e/properties/z"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dynok.FromJSON(tc.in)
			se := serializationError(t, err, dynok.CodeInvalidValue)
			if se.Path != tc.path {
				t.Fatalf("expected path %s, got %s", tc.path, se.Path)
			}
			if !errors.Is(err, dynok.ErrUnsupportedPropertyType) {
				t.Fatalf("expected construction error as cause, got %v", err)
			}
		})
	}
}

func TestJSON_DuplicateKeys(t *testing.T) {
	in := `{"type":"T","properties":{"a":"1","b":"2","a":"3"}}`

	_, err := dynok.FromJSON(in)
	se := serializationError(t, err, dynok.CodeDuplicateKey)
	if se.Path != "/properties/a" {
		t.Fatalf("unexpected path %s", se.Path)
	}

	o, err := dynok.FromJSON(in, dynok.DecodeOpt{OnDuplicateKey: dynok.DupIgnore})
	if err != nil {
		t.Fatalf("ignore: %v", err)
	}
	if v, _ := dynok.Get[string](o, "a"); v != "3" || o.Names()[0] != "a" {
		t.Fatalf("expected last value in first position, got %q %v", v, o.Names())
	}

	var warnings []dynok.Warning
	o, err = dynok.FromJSON(in, dynok.DecodeOpt{
		OnDuplicateKey: dynok.DupWarn,
		OnWarning:      func(w dynok.Warning) { warnings = append(warnings, w) },
	})
	if err != nil || o.Len() != 2 {
		t.Fatalf("warn: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Code != dynok.CodeDuplicateKey || warnings[0].Path != "/properties/a" {
		t.Fatalf("unexpected warnings %+v", warnings)
	}
}

func TestJSON_Limits(t *testing.T) {
	in := `{"type":"T","properties":{"e":{"type":"C","properties":{}}}}`

	if _, err := dynok.FromJSON(in, dynok.DecodeOpt{MaxDepth: 4}); err != nil {
		t.Fatalf("depth 4 should be enough: %v", err)
	}
	_, err := dynok.FromJSON(in, dynok.DecodeOpt{MaxDepth: 2})
	se := serializationError(t, err, dynok.CodeMaxDepth)
	if se.Path != "/properties/e" {
		t.Fatalf("unexpected path %s", se.Path)
	}

	_, err = dynok.FromJSON(in, dynok.DecodeOpt{MaxBytes: 10})
	serializationError(t, err, dynok.CodeTruncated)
	if _, err := dynok.FromJSON(in, dynok.DecodeOpt{MaxBytes: int64(len(in))}); err != nil {
		t.Fatalf("exact size should pass: %v", err)
	}
}

func TestJSON_UnknownEnvelopeFields(t *testing.T) {
	in := `{"type":"T","version":{"major":[1,2]},"properties":{"a":"x"}}`

	o, err := dynok.FromJSON(in)
	if err != nil {
		t.Fatalf("strip: %v", err)
	}
	if v, _ := dynok.Get[string](o, "a"); v != "x" || o.Len() != 1 {
		t.Fatalf("unexpected object %s", o)
	}

	_, err = dynok.FromJSON(in, dynok.DecodeOpt{Unknown: dynok.UnknownStrict})
	se := serializationError(t, err, dynok.CodeUnknownKey)
	if se.Path != "/version" {
		t.Fatalf("unexpected path %s", se.Path)
	}
}

func TestJSON_ErrorMessage(t *testing.T) {
	_, err := dynok.FromJSON(`{"type":"T"}`)
	want := "serialization error: missing 'type' or 'properties' field at /: missing 'properties'"
	if err == nil || err.Error() != want {
		t.Fatalf("unexpected message %v", err)
	}
	if dynok.CodeOf(err) != dynok.CodeSerialization {
		t.Fatalf("unexpected code %s", dynok.CodeOf(err))
	}
}

func TestParseOptions(t *testing.T) {
	if d, err := dynok.ParseDriver("encoding/json"); err != nil || d != dynok.DriverStdlib {
		t.Fatalf("driver: %v, %v", d, err)
	}
	if _, err := dynok.ParseDriver("sonic"); err == nil {
		t.Fatalf("expected unknown driver error")
	}
	if m, err := dynok.ParseNumberMode("narrow"); err != nil || m != dynok.NumberNarrow {
		t.Fatalf("number mode: %v, %v", m, err)
	}
	if p, err := dynok.ParseUnknownPolicy("strict"); err != nil || p != dynok.UnknownStrict {
		t.Fatalf("unknown policy: %v, %v", p, err)
	}
	if p, err := dynok.ParseDuplicatePolicy("warn"); err != nil || p != dynok.DupWarn {
		t.Fatalf("duplicate policy: %v, %v", p, err)
	}
	if _, err := dynok.ParseDuplicatePolicy("panic"); err == nil {
		t.Fatalf("expected unknown duplicate policy error")
	}
}
