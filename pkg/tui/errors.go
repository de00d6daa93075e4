package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C). Saved drafts
	// remain for the next run.
	ErrAborted = errors.New("tui: aborted")
	// ErrSuspended is returned when the user chose to save and exit.
	ErrSuspended = errors.New("tui: suspended, progress saved")
)
