package wizard

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/export"
	"github.com/goliatone/go-formwizard/pkg/form"
	"github.com/goliatone/go-formwizard/pkg/navigator"
	"github.com/goliatone/go-formwizard/pkg/notify"
	"github.com/goliatone/go-formwizard/pkg/storage"
	"github.com/goliatone/go-formwizard/pkg/submit"
)

// FormatFunc renders the report body for a submission.
type FormatFunc func(answers form.AnswerMap, submittedAt time.Time) (string, error)

// Option configures a Session.
type Option func(*Session)

// WithStore persists drafts in kv. Sessions default to an in-memory store.
func WithStore(kv storage.KV, opts ...storage.DraftOption) Option {
	return func(s *Session) {
		if kv != nil {
			s.drafts = storage.NewDrafts(kv, opts...)
		}
	}
}

// WithNotifier routes user-facing messages.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Session) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithSink sets where the rendered report is delivered.
func WithSink(sink export.Sink) Option {
	return func(s *Session) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithSubmitter installs the hook that receives the final answers.
func WithSubmitter(sub submit.Submitter) Option {
	return func(s *Session) {
		if sub != nil {
			s.submitter = sub
		}
	}
}

// WithLogger sets the logger. Sessions default to zap.NewNop.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides time.Now for defaults, report stamps and file names.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithFormatter replaces the fixed report layout.
func WithFormatter(fn FormatFunc) Option {
	return func(s *Session) {
		if fn != nil {
			s.format = fn
		}
	}
}

// WithSanitizer replaces the markup stripper applied to free-text input.
// Pass a nil sanitizer to store input verbatim.
func WithSanitizer(fn form.Sanitizer) Option {
	return func(s *Session) {
		s.sanitize = fn
	}
}

// WithNavigationHook observes section changes.
func WithNavigationHook(fn navigator.ChangeFunc) Option {
	return func(s *Session) {
		if fn != nil {
			s.hooks = append(s.hooks, fn)
		}
	}
}
