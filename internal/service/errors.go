package service

import "errors"

var (
	// ErrNotFound is returned when a single-entity lookup has no match.
	// A multi-entity query returning zero rows is not an error.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden is returned when the caller acts on an entity they do
	// not own.
	ErrForbidden = errors.New("not allowed")

	// ErrConflict is returned on a uniqueness violation, e.g. a duplicate
	// username or email on registration.
	ErrConflict = errors.New("already exists")

	// ErrHasDependents is returned when deleting a parent entity that still
	// has dependent rows under the restrict-delete policy.
	ErrHasDependents = errors.New("dependent records exist")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
