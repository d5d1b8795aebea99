package tui

import "fmt"

// TerminalError wraps a failure to drive the terminal: entering or leaving
// raw mode, or writing output mid-run. Mode restoration has already been
// attempted by the time one of these surfaces.
type TerminalError struct {
	Err error
}

// Error implements the error interface.
func (e *TerminalError) Error() string {
	return fmt.Sprintf("terminal failure: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *TerminalError) Unwrap() error {
	return e.Err
}
