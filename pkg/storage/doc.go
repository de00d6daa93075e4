// Package storage persists questionnaire drafts. KV abstracts the durable
// store (memory, a JSON file, or SQLite); Drafts maps field values onto
// namespaced keys of the form "form_<fieldId>".
package storage
