package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoImageOpener is returned when an image is attached without an
	// opener configured.
	ErrNoImageOpener = errors.New("tui: no image opener configured")
)
