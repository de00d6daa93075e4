package formwizard

import (
	"context"
	"io/fs"
	"time"

	"github.com/goliatone/go-formwizard/pkg/form"
	"github.com/goliatone/go-formwizard/pkg/report"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/submit"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Schema aliases schema.Schema for callers that only import the root module.
type Schema = schema.Schema

// Session aliases wizard.Session.
type Session = wizard.Session

// Result aliases wizard.Result.
type Result = wizard.Result

// AnswerMap aliases form.AnswerMap.
type AnswerMap = form.AnswerMap

// Option aliases wizard.Option.
type Option = wizard.Option

// Questionnaires exposes the bundled questionnaire documents.
func Questionnaires() fs.FS {
	return schema.EmbeddedFS()
}

// DefaultSchema returns the bundled clinic questionnaire.
func DefaultSchema() (*Schema, error) {
	return schema.Default()
}

// LoadSchema parses a YAML or JSON questionnaire file.
func LoadSchema(path string) (*Schema, error) {
	return schema.LoadFile(path)
}

// NewSession builds a session over s and loads it: defaults, then saved
// drafts, then conditional rules. A storage fault during the restore is
// returned together with a usable session.
func NewSession(ctx context.Context, s *Schema, options ...Option) (*Session, error) {
	sess, err := wizard.New(s, options...)
	if err != nil {
		return nil, err
	}
	return sess, sess.Load(ctx)
}

// Report renders answers with the fixed layout declared by s.
func Report(s *Schema, answers AnswerMap, submittedAt time.Time) string {
	return report.New(s).Format(answers, submittedAt)
}

// Payload encodes answers as the JSON object handed to submitters.
func Payload(answers AnswerMap) ([]byte, error) {
	return submit.Encode(answers)
}

// Re-exported options so the common configuration needs a single import.
var (
	WithStore          = wizard.WithStore
	WithNotifier       = wizard.WithNotifier
	WithSink           = wizard.WithSink
	WithSubmitter      = wizard.WithSubmitter
	WithLogger         = wizard.WithLogger
	WithClock          = wizard.WithClock
	WithFormatter      = wizard.WithFormatter
	WithSanitizer      = wizard.WithSanitizer
	WithNavigationHook = wizard.WithNavigationHook
)
