// Package export names and delivers rendered questionnaire reports.
package export
