package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/export"
	"github.com/goliatone/go-formwizard/pkg/form"
	"github.com/goliatone/go-formwizard/pkg/navigator"
	"github.com/goliatone/go-formwizard/pkg/notify"
	"github.com/goliatone/go-formwizard/pkg/report"
	"github.com/goliatone/go-formwizard/pkg/rules"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/storage"
	"github.com/goliatone/go-formwizard/pkg/submit"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

const (
	// SubmittedMessage confirms a completed submission.
	SubmittedMessage = "Questionnaire submitted successfully"
	// SubmitFailedMessage is shown when the report could not be delivered.
	SubmitFailedMessage = "Failed to submit. Please try again."
	// SaveFailedMessage is shown when a draft could not be persisted.
	SaveFailedMessage = "Could not save your progress"

	dateLayout = "2006-01-02"
)

// Result describes a completed submission.
type Result struct {
	ID          uuid.UUID
	Filename    string
	Location    string
	Report      string
	Answers     form.AnswerMap
	SubmittedAt time.Time
}

// Session drives one questionnaire: it owns the form state, the navigator,
// the conditional rules and the draft store, and turns user commands into
// validated transitions. A Session is not safe for concurrent use.
type Session struct {
	schema    *schema.Schema
	form      *form.Form
	rules     *rules.Engine
	validator *validation.Validator
	nav       *navigator.Navigator

	drafts    *storage.Drafts
	notifier  notify.Notifier
	sink      export.Sink
	submitter submit.Submitter
	logger    *zap.Logger
	now       func() time.Time
	format    FormatFunc
	sanitize  form.Sanitizer
	hooks     []navigator.ChangeFunc
}

// New builds a session over s, normalizing it first so schemas declared as Go
// literals are indexed. Call Load before presenting the form.
func New(s *schema.Schema, opts ...Option) (*Session, error) {
	if s == nil {
		return nil, errors.New("wizard: schema is required")
	}
	if err := s.Normalize(); err != nil {
		return nil, fmt.Errorf("wizard: %w", err)
	}

	sess := &Session{
		schema:   s,
		rules:    rules.New(s.Rules),
		drafts:   storage.NewDrafts(storage.NewMemory()),
		notifier: notify.Discard,
		sink:     export.NewDirSink("."),
		logger:   zap.NewNop(),
		now:      time.Now,
		sanitize: form.StripMarkup,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(sess)
		}
	}
	if sess.submitter == nil {
		sess.submitter = submit.NewNop("", sess.logger)
	}
	if sess.format == nil {
		formatter := report.New(s)
		sess.format = func(answers form.AnswerMap, at time.Time) (string, error) {
			return formatter.Format(answers, at), nil
		}
	}

	var formOpts []form.Option
	if sess.sanitize != nil {
		formOpts = append(formOpts, form.WithSanitizer(sess.sanitize))
	}
	sess.form = form.New(s, formOpts...)
	sess.validator = validation.New(sess.form)

	navOpts := []navigator.Option{
		navigator.WithGate(sess.validator),
		navigator.WithNotifier(sess.notifier),
	}
	for _, hook := range sess.hooks {
		navOpts = append(navOpts, navigator.OnChange(hook))
	}
	nav, err := navigator.New(s.Total(), navOpts...)
	if err != nil {
		return nil, fmt.Errorf("wizard: %w", err)
	}
	sess.nav = nav
	return sess, nil
}

// Load resets the form, applies schema defaults, restores saved drafts over
// them and re-evaluates every conditional rule. The session returns to
// section 1. Storage faults are reported but do not abort the load.
func (s *Session) Load(ctx context.Context) error {
	s.form.Reset()
	if err := s.applyDefaults(); err != nil {
		return err
	}

	restored, loadErr := s.drafts.LoadAll(ctx, s.form)
	if loadErr != nil && !errors.Is(loadErr, storage.ErrStorage) {
		return fmt.Errorf("wizard: restore drafts: %w", loadErr)
	}
	s.rules.ApplyAll(s.form.String, s.form)
	if s.nav.Current() != 1 {
		s.nav.GoTo(1)
	}

	if loadErr != nil {
		s.storageFault("restore drafts", loadErr)
		return loadErr
	}
	s.logger.Info("session loaded",
		zap.String("schema", s.schema.ID),
		zap.Int("restored", restored),
	)
	return nil
}

func (s *Session) applyDefaults() error {
	for _, field := range s.schema.Fields() {
		if field.Default == "" {
			continue
		}
		value := field.Default
		if value == schema.DefaultToday {
			value = s.now().Format(dateLayout)
		}
		if err := s.form.Set(field.ID, value); err != nil {
			return fmt.Errorf("wizard: default for %s: %w", field.ID, err)
		}
	}
	return nil
}

// Set records a user edit, re-evaluates rules triggered by the field and
// persists the draft. A storage fault is reported and returned, but the
// in-memory edit stands.
func (s *Session) Set(ctx context.Context, id string, value any) error {
	if err := s.form.Set(id, value); err != nil {
		return fmt.Errorf("wizard: %w", err)
	}
	if s.rules.Triggers(id) {
		s.rules.Apply(id, s.form.String(id), s.form)
	}
	if err := s.drafts.Save(ctx, s.form, id); err != nil {
		s.storageFault("save draft", err, zap.String("field", id))
		return err
	}
	return nil
}

// Next validates the current section and moves to target when it passes.
// A blocked move returns a *validation.Error and leaves the section as is.
func (s *Session) Next(target int) error {
	return s.nav.Next(target)
}

// Prev moves back to target without validation.
func (s *Session) Prev(target int) bool {
	return s.nav.Prev(target)
}

// GoTo activates target directly.
func (s *Session) GoTo(target int) bool {
	return s.nav.GoTo(target)
}

// Current returns the active section ordinal.
func (s *Session) Current() int {
	return s.nav.Current()
}

// Progress returns the progress indicator for the active section.
func (s *Session) Progress() navigator.Progress {
	return s.nav.Progress()
}

// Invalid lists the fields that blocked the last forward move or submission.
func (s *Session) Invalid() []string {
	return s.nav.Invalid()
}

// Answers assembles the AnswerMap from the in-memory state.
func (s *Session) Answers() form.AnswerMap {
	return s.form.Answers()
}

// Form exposes the underlying form state.
func (s *Session) Form() *form.Form {
	return s.form
}

// Schema returns the session schema.
func (s *Session) Schema() *schema.Schema {
	return s.schema
}

// Submit validates every section, renders and exports the report, hands the
// answers to the submitter and clears the drafts. When a section is
// incomplete the session moves to it and nothing is exported. Export and
// submitter failures keep the drafts. A failure to clear drafts after a
// successful delivery is returned alongside the Result.
func (s *Session) Submit(ctx context.Context) (Result, error) {
	for ordinal := 1; ordinal <= s.schema.Total(); ordinal++ {
		if result := s.validator.ValidateSection(ordinal); !result.Valid() {
			if s.nav.Current() != ordinal {
				s.nav.GoTo(ordinal)
			}
			return Result{}, s.nav.Reject(result)
		}
	}
	s.nav.Reject(validation.Result{})

	at := s.now()
	answers := s.form.Answers()
	s.logger.Debug("submitting questionnaire",
		zap.Any("answers", answers.Redacted(report.Redacted, report.Sensitive(s.schema)...)),
	)

	body, err := s.format(answers, at)
	if err != nil {
		return Result{}, s.deliveryFault("format report", fmt.Errorf("wizard: format report: %w", err))
	}

	name := export.Filename(s.schema.Report.FilenamePrefix, at)
	location, err := s.sink.Export(ctx, name, body)
	if err != nil {
		if !errors.Is(err, export.ErrExport) {
			err = &export.Fault{Name: name, Err: err}
		}
		return Result{}, s.deliveryFault("export report", err)
	}

	if err := s.submitter.Submit(ctx, answers); err != nil {
		return Result{}, s.deliveryFault("submit answers", fmt.Errorf("wizard: submit: %w", err))
	}

	result := Result{
		ID:          uuid.New(),
		Filename:    name,
		Location:    location,
		Report:      body,
		Answers:     answers,
		SubmittedAt: at,
	}
	s.logger.Info("questionnaire submitted",
		zap.String("id", result.ID.String()),
		zap.String("location", location),
	)
	s.notifier.Notify(notify.Info(SubmittedMessage))

	if err := s.drafts.ClearAll(ctx, s.schema); err != nil {
		s.storageFault("clear drafts", err)
		return result, err
	}
	return result, nil
}

// Clear erases every saved draft without touching the in-memory form.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.drafts.ClearAll(ctx, s.schema); err != nil {
		s.storageFault("clear drafts", err)
		return err
	}
	return nil
}

func (s *Session) storageFault(op string, err error, fields ...zap.Field) {
	s.logger.Error("draft storage fault", append(fields, zap.String("op", op), zap.Error(err))...)
	s.notifier.Notify(notify.Error(SaveFailedMessage))
}

func (s *Session) deliveryFault(op string, err error) error {
	s.logger.Error("submission failed", zap.String("op", op), zap.Error(err))
	s.notifier.Notify(notify.Error(SubmitFailedMessage))
	return err
}
