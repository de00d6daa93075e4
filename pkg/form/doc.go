// Package form holds the live state of a questionnaire: field values plus the
// visibility and requiredness flags that conditional rules adjust. Answers
// turns that state into the AnswerMap handed to reports and submission hooks.
package form
