package storage

import (
	"context"
	"errors"
	"strconv"

	"github.com/goliatone/go-formwizard/pkg/form"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

// DefaultPrefix namespaces every draft key.
const DefaultPrefix = "form_"

// DraftOption configures Drafts.
type DraftOption func(*Drafts)

// WithPrefix overrides the key namespace.
func WithPrefix(prefix string) DraftOption {
	return func(d *Drafts) {
		d.prefix = prefix
	}
}

// Drafts persists field values one key per field so an interrupted
// questionnaire can be resumed.
type Drafts struct {
	kv     KV
	prefix string
}

// NewDrafts wraps kv.
func NewDrafts(kv KV, opts ...DraftOption) *Drafts {
	d := &Drafts{kv: kv, prefix: DefaultPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Key returns the namespaced key for a field id.
func (d *Drafts) Key(id string) string {
	return d.prefix + id
}

// LoadAll restores every saved, non-empty value into f. Sensitive fields are
// never restored. Saved values the schema no longer accepts (for example a
// removed option) are skipped. Store failures do not stop the pass; they are
// returned joined once every field has been tried.
func (d *Drafts) LoadAll(ctx context.Context, f *form.Form) (int, error) {
	var (
		restored int
		faults   []error
	)
	for _, field := range f.Schema().Fields() {
		if field.Kind.Sensitive() {
			continue
		}
		key := d.Key(field.ID)
		raw, ok, err := d.kv.Get(ctx, key)
		if err != nil {
			faults = append(faults, &Fault{Op: "get", Key: key, Err: err})
			continue
		}
		if !ok || raw == "" {
			continue
		}

		var value any = raw
		if field.Kind == schema.KindCheckbox {
			value = raw == "true"
		}
		if err := f.Set(field.ID, value); err != nil {
			if errors.Is(err, form.ErrInvalidValue) {
				continue
			}
			return restored, err
		}
		restored++
	}
	return restored, errors.Join(faults...)
}

// Save writes the current value of one field. Checkboxes are stored as
// "true"/"false", everything else literally. Sensitive fields are skipped.
func (d *Drafts) Save(ctx context.Context, f *form.Form, id string) error {
	field, ok := f.Schema().Field(id)
	if !ok {
		return form.ErrUnknownField
	}
	if field.Kind.Sensitive() {
		return nil
	}

	value := f.String(id)
	if field.Kind == schema.KindCheckbox {
		value = strconv.FormatBool(f.Checked(id))
	}

	key := d.Key(id)
	if err := d.kv.Set(ctx, key, value); err != nil {
		return &Fault{Op: "set", Key: key, Err: err}
	}
	return nil
}

// ClearAll removes the namespaced key of every schema field.
func (d *Drafts) ClearAll(ctx context.Context, s *schema.Schema) error {
	var faults []error
	for _, field := range s.Fields() {
		key := d.Key(field.ID)
		if err := d.kv.Remove(ctx, key); err != nil {
			faults = append(faults, &Fault{Op: "remove", Key: key, Err: err})
		}
	}
	return errors.Join(faults...)
}
