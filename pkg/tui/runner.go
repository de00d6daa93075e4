package tui

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/storage"
	"github.com/goliatone/go-formwizard/pkg/validation"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const (
	actionNext   = "Next"
	actionBack   = "Back"
	actionSubmit = "Submit"
	actionSave   = "Save and exit"

	skipOption = "(none)"
)

// Runner drives a wizard.Session from the terminal: it prompts every visible
// field of the active section, then offers the navigation actions available
// from there.
type Runner struct {
	session *wizard.Session
	driver  PromptDriver
	theme   Theme
}

// New returns a Runner over session. Without WithPromptDriver the survey
// driver writing to stdout is used.
func New(session *wizard.Session, options ...Option) (*Runner, error) {
	if session == nil {
		return nil, errors.New("tui: session is required")
	}
	r := &Runner{session: session, theme: DefaultTheme}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Run loops over sections until the questionnaire is submitted, the user
// saves and exits (ErrSuspended) or aborts (ErrAborted). The session must
// already be loaded.
func (r *Runner) Run(ctx context.Context) (wizard.Result, error) {
	if ctx == nil {
		return wizard.Result{}, errors.New("tui: context is required")
	}
	s := r.session.Schema()

	for {
		if err := ctx.Err(); err != nil {
			return wizard.Result{}, err
		}
		section, ok := s.Section(r.session.Current())
		if !ok {
			return wizard.Result{}, fmt.Errorf("tui: no section %d", r.session.Current())
		}

		progress := r.session.Progress()
		header := fmt.Sprintf("%s%s  %s (%.0f%%)", r.theme.SectionPrefix, progress.Label(), section.Title, progress.Percent)
		if err := r.driver.Info(ctx, header); err != nil {
			return wizard.Result{}, err
		}

		for _, field := range section.Fields {
			if !r.session.Form().Visible(field.ID) {
				continue
			}
			if err := r.promptField(ctx, field); err != nil {
				return wizard.Result{}, err
			}
		}

		action, err := r.chooseAction(ctx, section.Ordinal, s.Total())
		if err != nil {
			return wizard.Result{}, err
		}

		switch action {
		case actionBack:
			r.session.Prev(section.Ordinal - 1)
		case actionNext:
			if err := r.session.Next(section.Ordinal + 1); err != nil {
				if err := r.reportInvalid(ctx, err); err != nil {
					return wizard.Result{}, err
				}
			}
		case actionSubmit:
			result, err := r.session.Submit(ctx)
			if errors.Is(err, validation.ErrIncomplete) {
				if err := r.reportInvalid(ctx, err); err != nil {
					return wizard.Result{}, err
				}
				continue
			}
			return result, err
		case actionSave:
			return wizard.Result{}, ErrSuspended
		}
	}
}

func (r *Runner) chooseAction(ctx context.Context, current, total int) (string, error) {
	var actions []string
	if current > 1 {
		actions = append(actions, actionBack)
	}
	if current < total {
		actions = append(actions, actionNext)
	} else {
		actions = append(actions, actionSubmit)
	}
	actions = append(actions, actionSave)

	defaultIdx := indexOf(actions, actionNext)
	if defaultIdx < 0 {
		defaultIdx = indexOf(actions, actionSubmit)
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      "Continue",
		Options:      actions,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(actions) {
		return "", fmt.Errorf("tui: action index %d out of range", idx)
	}
	return actions[idx], nil
}

// reportInvalid lists the labels of the fields that blocked navigation. The
// session notifier has already shown the generic message.
func (r *Runner) reportInvalid(ctx context.Context, err error) error {
	var incomplete *validation.Error
	if !errors.As(err, &incomplete) {
		return err
	}
	labels := make([]string, 0, len(incomplete.Fields))
	for _, id := range incomplete.Fields {
		field, _ := r.session.Schema().Field(id)
		labels = append(labels, field.DisplayLabel())
	}
	return r.driver.Info(ctx, r.theme.ErrorPrefix+"Missing: "+strings.Join(labels, ", "))
}

func (r *Runner) promptField(ctx context.Context, field schema.Field) error {
	f := r.session.Form()
	message := field.DisplayLabel()
	if f.Required(field.ID) {
		message += " *"
	}

	var value any
	switch field.Kind {
	case schema.KindCheckbox:
		checked, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: f.Checked(field.ID),
			Help:    field.Help,
		})
		if err != nil {
			return err
		}
		value = checked

	case schema.KindRadio, schema.KindSelect:
		selected, err := r.promptChoice(ctx, field, message)
		if err != nil {
			return err
		}
		value = selected

	case schema.KindPassword:
		secret, err := r.driver.Password(ctx, InputConfig{Message: message, Help: field.Help})
		if err != nil {
			return err
		}
		if secret == "" && f.Has(field.ID) {
			return nil
		}
		value = secret

	case schema.KindTextArea:
		text, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: f.String(field.ID),
			Help:    field.Help,
		})
		if err != nil {
			return err
		}
		value = text

	default:
		text, err := r.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   f.String(field.ID),
			Help:      field.Help,
			Validator: validatorFor(field.Kind),
		})
		if err != nil {
			return err
		}
		value = text
	}

	// Storage faults are already reported through the notifier and the edit
	// stands in memory, so only value errors stop the run.
	if err := r.session.Set(ctx, field.ID, value); err != nil && !isStorageFault(err) {
		return err
	}
	return nil
}

func (r *Runner) promptChoice(ctx context.Context, field schema.Field, message string) (string, error) {
	f := r.session.Form()
	var (
		labels []string
		values []string
	)
	if !f.Required(field.ID) {
		labels = append(labels, skipOption)
		values = append(values, "")
	}
	for _, option := range field.Options {
		labels = append(labels, option.Display())
		values = append(values, option.Value)
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      message,
		Options:      labels,
		DefaultIndex: indexOf(values, f.String(field.ID)),
		Help:         field.Help,
		PageSize:     12,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(values) {
		return "", fmt.Errorf("tui: %s: option index %d out of range", field.ID, idx)
	}
	return values[idx], nil
}

func validatorFor(kind schema.FieldKind) func(string) error {
	switch kind {
	case schema.KindNumber:
		return validateNumber
	case schema.KindEmail:
		return validateEmail
	case schema.KindDate:
		return validateDate
	default:
		return nil
	}
}

func validateNumber(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err != nil {
		return errors.New("enter a number")
	}
	return nil
}

func validateEmail(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return errors.New("enter an email address like name@example.com")
	}
	return nil
}

func validateDate(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", trimmed); err != nil {
		return errors.New("enter a date as YYYY-MM-DD")
	}
	return nil
}

func isStorageFault(err error) bool {
	return errors.Is(err, storage.ErrStorage)
}
