package report

import (
	"strings"
	"time"

	"github.com/goliatone/go-formwizard/pkg/form"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

const (
	// Placeholder stands in for a missing answer.
	Placeholder = "N/A"
	// Redacted replaces the value of sensitive fields.
	Redacted = "***HIDDEN***"
	// Closed short-circuits an hours range whose closed flag is set.
	Closed = "Closed"
	// DateLayout formats the submission timestamp.
	DateLayout = "1/2/2006, 3:04:05 PM"
)

// Formatter renders an AnswerMap into the fixed text layout described by the
// schema's report configuration and per-section report items.
type Formatter struct {
	schema *schema.Schema
}

// New returns a Formatter for s.
func New(s *schema.Schema) *Formatter {
	return &Formatter{schema: s}
}

// Format renders the report. The output depends only on answers and
// submittedAt.
func (f *Formatter) Format(answers form.AnswerMap, submittedAt time.Time) string {
	cfg := f.schema.Report
	heavy := strings.Repeat("=", cfg.Width)
	light := strings.Repeat("-", cfg.Width)

	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line(heavy)
	line(cfg.Title)
	line(heavy)
	line("")
	line("Submission Date: " + submittedAt.Format(DateLayout))
	line("")

	for _, section := range f.schema.Sections {
		line(light)
		line(section.Heading())
		line(light)
		for _, item := range section.Report {
			if text, ok := f.item(item, answers); ok {
				line(text)
			}
		}
		line("")
	}

	line(heavy)
	line(cfg.Footer)
	line(heavy)
	return b.String()
}

func (f *Formatter) item(item schema.ReportItem, answers form.AnswerMap) (string, bool) {
	indent := strings.Repeat("  ", item.Indent)
	switch item.ItemKind() {
	case schema.ItemBlank:
		return "", true
	case schema.ItemHeading:
		return indent + item.Label + ":", true
	case schema.ItemOptional:
		if !answers.Present(item.Field) {
			return "", false
		}
		return indent + item.Label + ": " + item.Prefix + answers.Get(item.Field) + item.Suffix, true
	case schema.ItemHours:
		return indent + item.Label + ": " + hours(item, answers), true
	default:
		return indent + item.Label + ": " + item.Prefix + f.value(item.Field, answers) + item.Suffix, true
	}
}

func (f *Formatter) value(id string, answers form.AnswerMap) string {
	field, _ := f.schema.Field(id)
	present := answers.Present(id)
	switch {
	case field.Kind.Sensitive() && present:
		return Redacted
	case present:
		return answers.Get(id)
	case field.Kind == schema.KindCheckbox:
		return form.YesNo(false)
	default:
		return Placeholder
	}
}

func hours(item schema.ReportItem, answers form.AnswerMap) string {
	if item.Closed != "" && answers.Get(item.Closed) == form.YesNo(true) {
		return Closed
	}
	return composite(item.From, answers) + " to " + composite(item.To, answers)
}

func composite(prefix string, answers form.AnswerMap) string {
	return FormatTime(answers.Get(prefix+"Hour"), answers.Get(prefix+"Minute"), answers.Get(prefix+"Period"))
}

// FormatTime joins hour, minute and period as "H:MM AM". Any missing part
// yields Placeholder.
func FormatTime(hour, minute, period string) string {
	if hour == "" || minute == "" || period == "" {
		return Placeholder
	}
	return hour + ":" + minute + " " + period
}

// Sensitive lists the schema's sensitive field ids, for callers that need to
// redact answers outside the fixed layout.
func Sensitive(s *schema.Schema) []string {
	var ids []string
	for _, field := range s.Fields() {
		if field.Kind.Sensitive() {
			ids = append(ids, field.ID)
		}
	}
	return ids
}
