package todo

import "errors"

var (
	// ErrInvalidInput marks a malformed call (empty owner, empty description).
	ErrInvalidInput = errors.New("invalid_input")

	// ErrNotFound marks a task that does not exist for the given owner.
	// A task owned by someone else is indistinguishable from a missing one.
	ErrNotFound = errors.New("not_found")
)

// IsNotFound reports whether err is a missing-task error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsInvalidInput reports whether err is a validation error.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }
