package schema

import (
	"fmt"
	"strings"
)

// FieldKind enumerates the input controls a questionnaire field can use.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindEmail    FieldKind = "email"
	KindDate     FieldKind = "date"
	KindSelect   FieldKind = "select"
	KindCheckbox FieldKind = "checkbox"
	KindRadio    FieldKind = "radio"
	KindTextArea FieldKind = "textarea"
	KindTel      FieldKind = "tel"
	KindNumber   FieldKind = "number"
	KindPassword FieldKind = "password"
)

// DefaultToday is a Field.Default token resolved to the current date when a
// session loads.
const DefaultToday = "$today"

// Valid reports whether the kind is one of the known constants.
func (k FieldKind) Valid() bool {
	switch k {
	case KindText, KindEmail, KindDate, KindSelect, KindCheckbox, KindRadio,
		KindTextArea, KindTel, KindNumber, KindPassword:
		return true
	default:
		return false
	}
}

// Sensitive kinds are never persisted and never printed.
func (k FieldKind) Sensitive() bool {
	return k == KindPassword
}

// HasOptions reports whether the kind chooses among declared options.
func (k FieldKind) HasOptions() bool {
	return k == KindSelect || k == KindRadio
}

// Option is a selectable member of a select or radio field. For radio fields
// the options are the mutually exclusive members of the group.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Display returns the label, falling back to the value.
func (o Option) Display() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

// Field describes a single questionnaire input.
type Field struct {
	ID       string    `json:"id" yaml:"id"`
	Label    string    `json:"label" yaml:"label"`
	Kind     FieldKind `json:"kind" yaml:"kind"`
	Required bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Hidden   bool      `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Options  []Option  `json:"options,omitempty" yaml:"options,omitempty"`
	Default  string    `json:"default,omitempty" yaml:"default,omitempty"`
	Help     string    `json:"help,omitempty" yaml:"help,omitempty"`
}

// DisplayLabel returns the label, falling back to the id.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.ID
}

// HasOption reports whether value matches one of the declared options.
func (f Field) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Section is one page of the questionnaire.
type Section struct {
	Ordinal     int          `json:"ordinal" yaml:"ordinal"`
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	ReportTitle string       `json:"reportTitle,omitempty" yaml:"reportTitle,omitempty"`
	Fields      []Field      `json:"fields" yaml:"fields"`
	Report      []ReportItem `json:"report,omitempty" yaml:"report,omitempty"`
}

// Heading returns the title rule printed above the section in reports.
func (s Section) Heading() string {
	if s.ReportTitle != "" {
		return s.ReportTitle
	}
	return fmt.Sprintf("SECTION %d: %s", s.Ordinal, strings.ToUpper(s.Title))
}

// Rule reveals Target when Trigger equals Equals and hides it otherwise. When
// Require is set the target is also required while revealed and un-required
// while hidden; a nil Require leaves requiredness untouched.
type Rule struct {
	Trigger string `json:"trigger" yaml:"trigger"`
	Equals  string `json:"equals" yaml:"equals"`
	Target  string `json:"target" yaml:"target"`
	Require *bool  `json:"require,omitempty" yaml:"require,omitempty"`
}

// ReportItemKind selects how a report line is produced.
type ReportItemKind string

const (
	ItemValue    ReportItemKind = "value"
	ItemHeading  ReportItemKind = "heading"
	ItemBlank    ReportItemKind = "blank"
	ItemHours    ReportItemKind = "hours"
	ItemOptional ReportItemKind = "optional"
)

// ReportItem is one entry of a section's report layout.
//
// Hours items read three composite sub-fields for each end of the range:
// From+"Hour", From+"Minute" and From+"Period" (likewise for To). Closed names
// a checkbox that short-circuits the range to "Closed".
type ReportItem struct {
	Kind   ReportItemKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Label  string         `json:"label,omitempty" yaml:"label,omitempty"`
	Field  string         `json:"field,omitempty" yaml:"field,omitempty"`
	Indent int            `json:"indent,omitempty" yaml:"indent,omitempty"`
	Prefix string         `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffix string         `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	From   string         `json:"from,omitempty" yaml:"from,omitempty"`
	To     string         `json:"to,omitempty" yaml:"to,omitempty"`
	Closed string         `json:"closed,omitempty" yaml:"closed,omitempty"`
}

// ItemKind returns the kind, defaulting to ItemValue.
func (i ReportItem) ItemKind() ReportItemKind {
	if i.Kind == "" {
		return ItemValue
	}
	return i.Kind
}

// ReportConfig holds the document-level report settings.
type ReportConfig struct {
	Title          string `json:"title" yaml:"title"`
	Footer         string `json:"footer,omitempty" yaml:"footer,omitempty"`
	Width          int    `json:"width,omitempty" yaml:"width,omitempty"`
	FilenamePrefix string `json:"filenamePrefix,omitempty" yaml:"filenamePrefix,omitempty"`
}

const (
	defaultReportWidth    = 80
	defaultReportFooter   = "END OF QUESTIONNAIRE"
	defaultFilenamePrefix = "Questionnaire"
)

// Schema is the read-only structural description of a questionnaire. Treat it
// as immutable once Parse or Default returns it.
type Schema struct {
	ID       string       `json:"id" yaml:"id"`
	Title    string       `json:"title" yaml:"title"`
	Report   ReportConfig `json:"report" yaml:"report"`
	Sections []Section    `json:"sections" yaml:"sections"`
	Rules    []Rule       `json:"rules,omitempty" yaml:"rules,omitempty"`

	fields    map[string]Field
	sectionOf map[string]int
	order     []string
}

// Total returns the number of sections.
func (s *Schema) Total() int {
	if s == nil {
		return 0
	}
	return len(s.Sections)
}

// Section returns the section with the given ordinal.
func (s *Schema) Section(ordinal int) (Section, bool) {
	if s == nil || ordinal < 1 || ordinal > len(s.Sections) {
		return Section{}, false
	}
	return s.Sections[ordinal-1], true
}

// Field resolves a field by id.
func (s *Schema) Field(id string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	f, ok := s.fields[id]
	return f, ok
}

// SectionOf returns the ordinal of the section declaring the field.
func (s *Schema) SectionOf(id string) (int, bool) {
	if s == nil {
		return 0, false
	}
	n, ok := s.sectionOf[id]
	return n, ok
}

// Fields returns every field in declaration order.
func (s *Schema) Fields() []Field {
	if s == nil {
		return nil
	}
	out := make([]Field, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.fields[id])
	}
	return out
}

// Normalize fills report defaults, trims field ids, validates the result and
// rebuilds the field index behind Field, Fields and SectionOf. Parse calls it;
// a Schema built as a Go literal must be normalized before use. Normalize is
// idempotent.
func (s *Schema) Normalize() error {
	if s == nil {
		return s.Validate()
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return err
	}
	s.index()
	return nil
}

func (s *Schema) index() {
	s.fields = make(map[string]Field)
	s.sectionOf = make(map[string]int)
	s.order = s.order[:0]
	for _, section := range s.Sections {
		for _, field := range section.Fields {
			if _, exists := s.fields[field.ID]; exists {
				continue
			}
			s.fields[field.ID] = field
			s.sectionOf[field.ID] = section.Ordinal
			s.order = append(s.order, field.ID)
		}
	}
}

func (s *Schema) applyDefaults() {
	if s.Report.Width <= 0 {
		s.Report.Width = defaultReportWidth
	}
	if strings.TrimSpace(s.Report.Footer) == "" {
		s.Report.Footer = defaultReportFooter
	}
	if strings.TrimSpace(s.Report.FilenamePrefix) == "" {
		s.Report.FilenamePrefix = defaultFilenamePrefix
	}
	if strings.TrimSpace(s.Report.Title) == "" {
		s.Report.Title = strings.ToUpper(s.Title)
	}
	for i := range s.Sections {
		for j := range s.Sections[i].Fields {
			field := &s.Sections[i].Fields[j]
			field.ID = strings.TrimSpace(field.ID)
			if field.Kind == "" {
				field.Kind = KindText
			}
		}
	}
}
