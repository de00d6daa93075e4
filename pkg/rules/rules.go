package rules

import "github.com/goliatone/go-formwizard/pkg/schema"

// Target receives the visibility and requiredness decisions. *form.Form
// satisfies it.
type Target interface {
	SetVisible(id string, visible bool)
	SetRequired(id string, required bool)
}

// Engine evaluates conditional field rules. Every evaluation is computed from
// the trigger's current value alone, so applying the same value twice is a
// no-op.
type Engine struct {
	byTrigger map[string][]schema.Rule
	triggers  []string
}

// New indexes rules by trigger, preserving declaration order.
func New(rules []schema.Rule) *Engine {
	e := &Engine{byTrigger: make(map[string][]schema.Rule)}
	for _, rule := range rules {
		if _, seen := e.byTrigger[rule.Trigger]; !seen {
			e.triggers = append(e.triggers, rule.Trigger)
		}
		e.byTrigger[rule.Trigger] = append(e.byTrigger[rule.Trigger], rule)
	}
	return e
}

// Triggers reports whether any rule is driven by fieldID.
func (e *Engine) Triggers(fieldID string) bool {
	if e == nil {
		return false
	}
	return len(e.byTrigger[fieldID]) > 0
}

// Apply evaluates every rule whose trigger is fieldID against value and
// writes the outcome to target.
func (e *Engine) Apply(fieldID, value string, target Target) {
	if e == nil || target == nil {
		return
	}
	for _, rule := range e.byTrigger[fieldID] {
		match := value == rule.Equals
		target.SetVisible(rule.Target, match)
		if rule.Require != nil {
			target.SetRequired(rule.Target, match && *rule.Require)
		}
	}
}

// ApplyAll evaluates every rule using lookup for trigger values. Use it after
// values were restored in bulk.
func (e *Engine) ApplyAll(lookup func(id string) string, target Target) {
	if e == nil || lookup == nil {
		return
	}
	for _, trigger := range e.triggers {
		e.Apply(trigger, lookup(trigger), target)
	}
}
