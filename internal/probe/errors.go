package probe

import (
	"errors"
	"fmt"
)

var (
	// ErrQueryFailed matches every *QueryError.
	ErrQueryFailed = errors.New("window query failed")
	// ErrInvalidInput marks malformed ids and configuration values.
	ErrInvalidInput = errors.New("invalid input")
)

// QueryError reports a failed round-trip to the window server. Callers must
// treat it as "unknown window", never as the root window.
type QueryError struct {
	Op      string
	Window  WindowID
	Display string
	Err     error
}

func (e *QueryError) Error() string {
	display := e.Display
	if display == "" {
		display = "default display"
	}
	if e.Err == nil {
		return fmt.Sprintf("%s on window %s (%s) failed", e.Op, e.Window, display)
	}
	return fmt.Sprintf("%s on window %s (%s): %v", e.Op, e.Window, display, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrQueryFailed) match without losing Unwrap.
func (e *QueryError) Is(target error) bool {
	return target == ErrQueryFailed
}
