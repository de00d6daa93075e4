package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

// Sanitizer rewrites free-text input before it is stored.
type Sanitizer func(string) string

// Option configures a Form.
type Option func(*Form)

// WithSanitizer installs a sanitizer applied to text-like kinds. Password
// fields are stored verbatim.
func WithSanitizer(fn Sanitizer) Option {
	return func(f *Form) {
		f.sanitize = fn
	}
}

// Form tracks the in-memory value of every field along with the dynamic
// visibility and requiredness flags that conditional rules toggle. Values are
// strings, bools for checkboxes, or absent.
type Form struct {
	schema   *schema.Schema
	values   map[string]any
	visible  map[string]bool
	required map[string]bool
	sanitize Sanitizer
}

// New seeds a form from the schema. No values are set; visibility and
// requiredness start from the schema's Hidden and Required flags.
func New(s *schema.Schema, opts ...Option) *Form {
	f := &Form{schema: s}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	f.Reset()
	return f
}

// Schema returns the schema backing the form.
func (f *Form) Schema() *schema.Schema {
	return f.schema
}

// Reset drops every value and restores schema flags.
func (f *Form) Reset() {
	f.values = make(map[string]any)
	f.visible = make(map[string]bool)
	f.required = make(map[string]bool)
	for _, field := range f.schema.Fields() {
		f.visible[field.ID] = !field.Hidden
		f.required[field.ID] = field.Required
	}
}

// Set assigns a value. Checkboxes take a bool (or a string strconv.ParseBool
// understands); radio and select fields take one of their option values, or
// "" to clear the selection; every other kind takes a string.
func (f *Form) Set(id string, value any) error {
	field, ok := f.schema.Field(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, id)
	}

	switch field.Kind {
	case schema.KindCheckbox:
		checked, err := coerceBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, id, err)
		}
		f.values[id] = checked
		return nil

	case schema.KindRadio, schema.KindSelect:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidValue, id, value)
		}
		if s == "" {
			delete(f.values, id)
			return nil
		}
		if !field.HasOption(s) {
			return fmt.Errorf("%w: %s has no option %q", ErrInvalidValue, id, s)
		}
		f.values[id] = s
		return nil

	default:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidValue, id, value)
		}
		if f.sanitize != nil && !field.Kind.Sensitive() {
			s = f.sanitize(s)
		}
		f.values[id] = s
		return nil
	}
}

// Clear removes the value of a field.
func (f *Form) Clear(id string) {
	delete(f.values, id)
}

// Value returns the raw value and whether one is set.
func (f *Form) Value(id string) (any, bool) {
	v, ok := f.values[id]
	return v, ok
}

// Has reports whether the field holds a value.
func (f *Form) Has(id string) bool {
	_, ok := f.values[id]
	return ok
}

// String returns the string value, or "" when absent or not a string.
func (f *Form) String(id string) string {
	s, _ := f.values[id].(string)
	return s
}

// Checked returns the checkbox state; absent checkboxes are unchecked.
func (f *Form) Checked(id string) bool {
	b, _ := f.values[id].(bool)
	return b
}

// Visible reports whether the field is currently shown.
func (f *Form) Visible(id string) bool {
	return f.visible[id]
}

// Required reports whether the field is currently required.
func (f *Form) Required(id string) bool {
	return f.required[id]
}

// SetVisible shows or hides a field. Unknown ids are ignored.
func (f *Form) SetVisible(id string, visible bool) {
	if _, ok := f.visible[id]; ok {
		f.visible[id] = visible
	}
}

// SetRequired toggles requiredness. Unknown ids are ignored.
func (f *Form) SetRequired(id string, required bool) {
	if _, ok := f.required[id]; ok {
		f.required[id] = required
	}
}

// Values returns a copy of the current values.
func (f *Form) Values() map[string]any {
	out := make(map[string]any, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Answers builds the AnswerMap from the current in-memory values. Checkboxes
// always appear as "Yes" or "No"; radios only when a member is selected;
// other kinds whenever a value has been set.
func (f *Form) Answers() AnswerMap {
	answers := make(AnswerMap)
	for _, field := range f.schema.Fields() {
		switch field.Kind {
		case schema.KindCheckbox:
			answers[field.ID] = YesNo(f.Checked(field.ID))
		default:
			if s, ok := f.values[field.ID].(string); ok {
				answers[field.ID] = s
			}
		}
	}
	return answers
}

// YesNo renders a boolean the way answers and reports spell it.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func coerceBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		trimmed := strings.TrimSpace(v)
		switch strings.ToLower(trimmed) {
		case "yes", "on":
			return true, nil
		case "no", "off", "":
			return false, nil
		}
		return strconv.ParseBool(trimmed)
	default:
		return false, fmt.Errorf("expected bool, got %T", value)
	}
}
