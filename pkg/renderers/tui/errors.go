package tui

import "errors"

var (
	// ErrAborted signals the user aborted the session (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrUnsupportedField is returned when a field descriptor carries a type
	// the session cannot prompt for.
	ErrUnsupportedField = errors.New("tui: unsupported field type")
)
