package navigator

import (
	"fmt"

	"github.com/goliatone/go-formwizard/pkg/notify"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

// IncompleteMessage is shown when forward navigation is blocked.
const IncompleteMessage = "Please fill in all required fields"

// Gate validates a section before the navigator leaves it.
type Gate interface {
	ValidateSection(ordinal int) validation.Result
}

// GateFunc adapts a function into a Gate.
type GateFunc func(ordinal int) validation.Result

// ValidateSection calls fn.
func (fn GateFunc) ValidateSection(ordinal int) validation.Result {
	return fn(ordinal)
}

// ChangeFunc observes section changes. Adapters use it to scroll back to the
// top of the page or redraw.
type ChangeFunc func(from, to int)

// Option configures a Navigator.
type Option func(*Navigator)

// WithGate installs the validator consulted by Next.
func WithGate(g Gate) Option {
	return func(n *Navigator) {
		n.gate = g
	}
}

// WithNotifier sets where blocked-navigation messages go.
func WithNotifier(nt notify.Notifier) Option {
	return func(n *Navigator) {
		if nt != nil {
			n.notifier = nt
		}
	}
}

// OnChange registers an observer for section changes.
func OnChange(fn ChangeFunc) Option {
	return func(n *Navigator) {
		if fn != nil {
			n.observers = append(n.observers, fn)
		}
	}
}

// Navigator owns the current section. Exactly one section is active; the
// wizard starts on section 1 and has no terminal state.
type Navigator struct {
	total     int
	current   int
	gate      Gate
	notifier  notify.Notifier
	observers []ChangeFunc
	invalid   []string
}

// New returns a navigator over total sections positioned on section 1.
func New(total int, opts ...Option) (*Navigator, error) {
	if total < 1 {
		return nil, fmt.Errorf("navigator: need at least one section, got %d", total)
	}
	n := &Navigator{
		total:    total,
		current:  1,
		notifier: notify.Discard,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(n)
		}
	}
	return n, nil
}

// Current returns the active section ordinal.
func (n *Navigator) Current() int {
	return n.current
}

// Total returns the section count.
func (n *Navigator) Total() int {
	return n.total
}

// Active reports whether ordinal is the active section.
func (n *Navigator) Active(ordinal int) bool {
	return ordinal == n.current
}

// Invalid returns the ids that blocked the last Next call, or nil when the
// last call succeeded.
func (n *Navigator) Invalid() []string {
	return append([]string(nil), n.invalid...)
}

// GoTo activates the target section. Targets outside 1..Total are ignored and
// GoTo reports false.
func (n *Navigator) GoTo(target int) bool {
	if target < 1 || target > n.total {
		return false
	}
	from := n.current
	n.current = target
	for _, fn := range n.observers {
		fn(from, target)
	}
	return true
}

// Next validates the current section and, when it passes, moves to target.
// A blocked move leaves the state unchanged, emits one error notification,
// and returns the *validation.Error.
func (n *Navigator) Next(target int) error {
	if n.gate != nil {
		if result := n.gate.ValidateSection(n.current); !result.Valid() {
			return n.Reject(result)
		}
	}
	n.invalid = nil
	n.GoTo(target)
	return nil
}

// Reject records result as the blocking validation outcome without moving,
// emits the incomplete notification, and returns result.Err(). A valid
// result clears the recorded ids and returns nil.
func (n *Navigator) Reject(result validation.Result) error {
	if result.Valid() {
		n.invalid = nil
		return nil
	}
	n.invalid = append([]string(nil), result.Invalid...)
	n.notifier.Notify(notify.Error(IncompleteMessage))
	return result.Err()
}

// Prev moves to target without validating.
func (n *Navigator) Prev(target int) bool {
	return n.GoTo(target)
}

// Progress describes the active section as a fraction of the whole.
type Progress struct {
	Current int
	Total   int
	Percent float64
}

// Label renders the numeric step label, e.g. "3 / 9".
func (p Progress) Label() string {
	return fmt.Sprintf("%d / %d", p.Current, p.Total)
}

// Progress returns the indicator for the active section.
func (n *Navigator) Progress() Progress {
	return Progress{
		Current: n.current,
		Total:   n.total,
		Percent: 100 * float64(n.current) / float64(n.total),
	}
}
