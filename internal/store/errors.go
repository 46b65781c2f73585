package store

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for write bodies that are neither a links
	// array nor a directory object. It is a client error and never retried.
	ErrInvalidInput = errors.New("invalid directory input")

	// ErrEmptySecret is returned when a new admin secret is empty.
	ErrEmptySecret = errors.New("admin secret must be a non-empty string")
)

// WriteError reports a directory write that failed on every attempt. Err is
// the failure of the last attempt.
type WriteError struct {
	Key      string
	Attempts int
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %q failed after %d attempts: %v", e.Key, e.Attempts, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
