package validation

import (
	"strings"
	"time"

	"github.com/goliatone/go-formwizard/pkg/form"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

// FlagDuration is how long adapters keep an invalid control highlighted. The
// highlight clears on its own whether or not the user fixed the field. The
// validator itself only reports ids.
const FlagDuration = 2 * time.Second

// Result lists the fields that blocked a section.
type Result struct {
	Section int
	Invalid []string
}

// Valid reports whether nothing blocked the section.
func (r Result) Valid() bool {
	return len(r.Invalid) == 0
}

// Err returns nil for a valid result and an *Error otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &Error{Section: r.Section, Fields: append([]string(nil), r.Invalid...)}
}

// Validate checks every visible field of section that is currently required.
// Text-like kinds fail when their trimmed value is empty, radio groups fail
// when no member is selected, and checkboxes always pass because they hold a
// determinate state.
func Validate(f *form.Form, section schema.Section) Result {
	result := Result{Section: section.Ordinal}
	for _, field := range section.Fields {
		if !f.Required(field.ID) || !f.Visible(field.ID) {
			continue
		}
		if missing(f, field) {
			result.Invalid = append(result.Invalid, field.ID)
		}
	}
	return result
}

func missing(f *form.Form, field schema.Field) bool {
	switch field.Kind {
	case schema.KindCheckbox:
		return false
	case schema.KindRadio:
		return !f.Has(field.ID)
	default:
		return strings.TrimSpace(f.String(field.ID)) == ""
	}
}

// Validator binds Validate to a form so callers can check sections by ordinal.
type Validator struct {
	form *form.Form
}

// New returns a Validator over f.
func New(f *form.Form) *Validator {
	return &Validator{form: f}
}

// ValidateSection validates the section with the given ordinal. Unknown
// ordinals validate trivially.
func (v *Validator) ValidateSection(ordinal int) Result {
	section, ok := v.form.Schema().Section(ordinal)
	if !ok {
		return Result{Section: ordinal}
	}
	return Validate(v.form, section)
}
