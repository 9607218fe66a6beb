package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNotSubmitted is returned when the collected values still fail
	// validation at submit time.
	ErrNotSubmitted = errors.New("tui: form was not submitted")
)
