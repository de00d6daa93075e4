// Package report renders a submitted AnswerMap into the fixed-width text
// document exported at the end of a wizard session.
//
// The layout is driven by the schema: the report configuration supplies the
// banner and width while every section lists report items (values, headings,
// blank lines, hour ranges and optional extras) in print order.
package report
