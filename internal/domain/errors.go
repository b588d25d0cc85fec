package domain

import "errors"

var (
	// ErrValidation marks malformed or out-of-range input. The request is
	// rejected before any state change.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a referenced record that does not exist or does not
	// belong to the acting user.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a state transition that lost a race, e.g. a reminder
	// that was already notified.
	ErrConflict = errors.New("conflict")
)
