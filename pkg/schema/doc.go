// Package schema describes questionnaires: ordered sections of fields,
// conditional rules, and the report layout used when answers are exported.
// Documents are JSON or YAML; a clinic onboarding questionnaire is bundled and
// returned by Default.
package schema
