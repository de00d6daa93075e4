// Package validation checks a section's required fields before forward
// navigation. It reports invalid field ids only; highlighting them is left to
// the UI adapter (see FlagDuration).
package validation
