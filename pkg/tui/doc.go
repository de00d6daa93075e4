// Package tui runs a questionnaire session in the terminal using survey
// prompts. The PromptDriver seam keeps the loop testable without a TTY.
package tui
