package analyzer

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	// ErrNullArgument is returned when a required collection is nil.
	ErrNullArgument = errors.New("required argument is nil")

	// ErrInvalidArgument is returned for malformed or out-of-range input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a log file does not exist.
	ErrNotFound = errors.New("log file not found")

	// ErrTooLarge is returned when a log file exceeds MaxFileSize.
	ErrTooLarge = errors.New("log file is too large")

	// ErrIO is returned for other read or write failures.
	ErrIO = errors.New("log file i/o failed")
)

// ArgumentError describes a rejected parameter.
type ArgumentError struct {
	// Param is the name of the offending parameter.
	Param string

	// Reason is a human-readable description of the problem.
	Reason string

	// Kind is ErrNullArgument or ErrInvalidArgument.
	Kind error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Param, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return e.Kind
}

func nullArgument(param string) error {
	return &ArgumentError{Param: param, Reason: "cannot be nil", Kind: ErrNullArgument}
}

func invalidArgument(param, format string, args ...any) error {
	return &ArgumentError{Param: param, Reason: fmt.Sprintf(format, args...), Kind: ErrInvalidArgument}
}
