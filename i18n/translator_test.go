package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("property_not_found", map[string]string{"property": "email"}); msg != "property email not found" {
		t.Fatalf("unexpected english message: %q", msg)
	}

	SetLanguage("ja")
	defer SetLanguage("en")
	if msg := T("property_not_found", map[string]string{"property": "email"}); msg == "property email not found" {
		t.Fatalf("expected japanese message, got %q", msg)
	}
}

func TestTranslator_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	SetLanguage("fr")
	defer SetLanguage("en")
	if msg := T("duplicate_key", nil); msg != "duplicate key" {
		t.Fatalf("got %q", msg)
	}
}

func TestTranslator_UnknownCodeEchoesCode(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("got %q", msg)
	}
}

func TestRender_QuotedPlaceholder(t *testing.T) {
	got := render("name {property:q} / {property}", map[string]string{"property": "x"})
	if got != `name "x" / x` {
		t.Fatalf("got %q", got)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upper{})
	if msg := T("invalid_cast", nil); msg != "X:invalid_cast" {
		t.Fatalf("got %q", msg)
	}
	SetTranslator(nil)
	if msg := T("overflow", nil); msg != "number out of range" {
		t.Fatalf("got %q", msg)
	}
}
