package form_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/form"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Parse([]byte(`
sections:
  - ordinal: 1
    id: one
    title: One
    fields:
      - {id: name, kind: text, required: true}
      - {id: secret, kind: password}
      - {id: agree, kind: checkbox}
      - {id: colour, kind: radio, options: [{value: red}, {value: blue}]}
      - {id: size, kind: select, options: [{value: s}, {value: m}]}
      - {id: extra, kind: textarea, hidden: true}
`), "form.yaml")
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	return s
}

func TestForm_SetAndRead(t *testing.T) {
	f := form.New(testSchema(t))

	if err := f.Set("name", "Acme"); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if err := f.Set("agree", "true"); err != nil {
		t.Fatalf("set agree: %v", err)
	}
	if err := f.Set("colour", "blue"); err != nil {
		t.Fatalf("set colour: %v", err)
	}

	if f.String("name") != "Acme" || !f.Checked("agree") || f.String("colour") != "blue" {
		t.Fatalf("values not stored: %#v", f.Values())
	}

	if err := f.Set("colour", ""); err != nil {
		t.Fatalf("clear colour: %v", err)
	}
	if f.Has("colour") {
		t.Fatalf("expected colour to be cleared")
	}
}

func TestForm_SetRejectsBadInput(t *testing.T) {
	f := form.New(testSchema(t))

	if err := f.Set("missing", "x"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := f.Set("colour", "green"); !errors.Is(err, form.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for unknown option, got %v", err)
	}
	if err := f.Set("agree", 3); !errors.Is(err, form.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for int checkbox, got %v", err)
	}
	if err := f.Set("name", true); !errors.Is(err, form.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for bool text, got %v", err)
	}
}

func TestForm_FlagsSeededFromSchema(t *testing.T) {
	f := form.New(testSchema(t))

	if !f.Required("name") || f.Required("extra") {
		t.Fatalf("required flags not seeded")
	}
	if f.Visible("extra") || !f.Visible("name") {
		t.Fatalf("visibility flags not seeded")
	}

	f.SetVisible("extra", true)
	f.SetRequired("extra", true)
	if !f.Visible("extra") || !f.Required("extra") {
		t.Fatalf("flags not toggled")
	}

	f.Reset()
	if f.Visible("extra") || f.Required("extra") {
		t.Fatalf("reset did not restore schema flags")
	}
}

func TestForm_AnswersNormalisesCheckboxes(t *testing.T) {
	f := form.New(testSchema(t))
	_ = f.Set("name", "Acme")
	_ = f.Set("secret", "hunter2")

	want := form.AnswerMap{
		"name":   "Acme",
		"secret": "hunter2",
		"agree":  "No",
	}
	first := f.Answers()
	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("answers mismatch (-want +got):\n%s", diff)
	}

	second := f.Answers()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("answers not idempotent (-first +second):\n%s", diff)
	}

	_ = f.Set("agree", true)
	if got := f.Answers().Get("agree"); got != "Yes" {
		t.Fatalf("expected Yes, got %q", got)
	}
}

func TestForm_Sanitizer(t *testing.T) {
	f := form.New(testSchema(t), form.WithSanitizer(form.StripMarkup))

	_ = f.Set("name", "<b>Acme</b> & Sons")
	if got := f.String("name"); got != "Acme & Sons" {
		t.Fatalf("expected markup stripped, got %q", got)
	}

	_ = f.Set("secret", "<p>pw</p>")
	if got := f.String("secret"); got != "<p>pw</p>" {
		t.Fatalf("password must be stored verbatim, got %q", got)
	}
}

func TestAnswerMap_Helpers(t *testing.T) {
	a := form.AnswerMap{"b": "2", "a": "1", "pw": "x", "blank": "  "}

	if diff := cmp.Diff([]string{"a", "b", "blank", "pw"}, a.Keys()); diff != "" {
		t.Fatalf("keys mismatch:\n%s", diff)
	}
	if a.Present("blank") || !a.Present("a") {
		t.Fatalf("Present misreports")
	}

	red := a.Redacted("***", "pw", "missing")
	if red["pw"] != "***" || a["pw"] != "x" {
		t.Fatalf("redaction must copy: %#v / %#v", red, a)
	}
	if _, ok := red["missing"]; ok {
		t.Fatalf("redaction must not add keys")
	}

	payload := a.Payload()
	if payload["a"] != "1" || len(payload) != 4 {
		t.Fatalf("payload mismatch: %#v", payload)
	}
}
