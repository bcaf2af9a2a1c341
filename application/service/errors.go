package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates no range or run matches the request.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates the request carried a value the
	// renderer does not accept, such as an unknown render mode.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrBackendFailure indicates the render backend reported an error.
	ErrBackendFailure = errors.New("render backend failed")
)

// RangeError reports a failure while rendering a specific range.
type RangeError struct {
	RangeID string
	Err     error
}

// Error implements error.
func (e *RangeError) Error() string {
	return fmt.Sprintf("render range %s: %v", e.RangeID, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RangeError) Unwrap() error {
	return e.Err
}
