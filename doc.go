// Package formwizard is the entry point for the multi-section questionnaire
// wizard. It re-exports the session, schema and answer types and wires the
// common path: load a questionnaire, build a session over a draft store and
// submit a rendered report.
//
// The building blocks live under pkg/: schema, form, storage, validation,
// navigator, rules, report, export, submit, wizard and tui.
package formwizard
