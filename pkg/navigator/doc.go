// Package navigator implements the section state machine of a questionnaire
// wizard. Next validates the section being left; Prev never does. Targets are
// supplied by the caller, so the wizard graph is explicit per control.
package navigator
