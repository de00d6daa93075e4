// Package rules applies declarative conditional-field rules: when a trigger
// field holds a given value the target field is revealed (and optionally
// required); any other value hides it again.
package rules
