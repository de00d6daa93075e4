package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Validate checks structural invariants: contiguous ordinals starting at 1,
// unique non-empty field ids, known kinds, options on choice fields, and that
// rules and report items only reference declared fields. All problems are
// collected and returned joined under ErrInvalidSchema.
func (s *Schema) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: schema is nil", ErrInvalidSchema)
	}

	var problems []error
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	if len(s.Sections) == 0 {
		add("no sections defined")
	}

	seen := make(map[string]int)
	for idx, section := range s.Sections {
		if section.Ordinal != idx+1 {
			add("section %q has ordinal %d, want %d", section.ID, section.Ordinal, idx+1)
		}
		for _, field := range section.Fields {
			id := strings.TrimSpace(field.ID)
			if id == "" {
				add("section %d declares a field with an empty id", section.Ordinal)
				continue
			}
			if prev, dup := seen[id]; dup {
				add("field %q declared in sections %d and %d", id, prev, section.Ordinal)
				continue
			}
			seen[id] = section.Ordinal
			if !field.Kind.Valid() {
				add("field %q has unknown kind %q", id, field.Kind)
			}
			if field.Kind.HasOptions() && len(field.Options) == 0 {
				add("field %q of kind %s declares no options", id, field.Kind)
			}
			if err := checkDefault(field); err != nil {
				add("field %q: %v", id, err)
			}
		}
	}

	known := func(id string) bool {
		_, ok := seen[id]
		return ok
	}

	for i, rule := range s.Rules {
		if !known(rule.Trigger) {
			add("rule %d references unknown trigger %q", i, rule.Trigger)
		}
		if !known(rule.Target) {
			add("rule %d references unknown target %q", i, rule.Target)
		}
	}

	for _, section := range s.Sections {
		for i, item := range section.Report {
			switch item.ItemKind() {
			case ItemValue, ItemOptional:
				if !known(item.Field) {
					add("section %d report item %d references unknown field %q", section.Ordinal, i, item.Field)
				}
			case ItemHours:
				for _, prefix := range []string{item.From, item.To} {
					for _, part := range []string{"Hour", "Minute", "Period"} {
						if !known(prefix + part) {
							add("section %d report item %d references unknown field %q", section.Ordinal, i, prefix+part)
						}
					}
				}
				if item.Closed != "" && !known(item.Closed) {
					add("section %d report item %d references unknown closed flag %q", section.Ordinal, i, item.Closed)
				}
			case ItemHeading, ItemBlank:
			default:
				add("section %d report item %d has unknown kind %q", section.Ordinal, i, item.Kind)
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSchema, errors.Join(problems...))
}

// checkDefault rejects defaults a form would refuse when the session loads.
func checkDefault(field Field) error {
	def := strings.TrimSpace(field.Default)
	switch {
	case def == "":
		return nil
	case def == DefaultToday:
		if field.Kind != KindDate && field.Kind != KindText {
			return fmt.Errorf("default %s needs a date or text field, not %s", DefaultToday, field.Kind)
		}
	case field.Kind.HasOptions():
		if !field.HasOption(field.Default) {
			return fmt.Errorf("default %q is not one of the options", field.Default)
		}
	case field.Kind == KindCheckbox:
		switch strings.ToLower(def) {
		case "yes", "no", "on", "off":
		default:
			if _, err := strconv.ParseBool(def); err != nil {
				return fmt.Errorf("checkbox default %q is not a boolean", field.Default)
			}
		}
	}
	return nil
}
