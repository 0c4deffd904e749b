package domain

import "errors"

var (
	// ErrNotFound indicates that the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail indicates that the email is already registered.
	// Stores must return it on a unique-constraint violation so that the
	// check-then-create race is closed at the store layer.
	ErrDuplicateEmail = errors.New("email already registered")
)
