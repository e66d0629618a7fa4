package store

import "errors"

var (
	// ErrNotFound is returned when an external ID does not resolve.
	ErrNotFound = errors.New("store: id not found")

	// ErrDuplicate is returned when a key already exists in a KeySet.
	ErrDuplicate = errors.New("store: duplicate key")

	// ErrPositionNotFound is returned when an internal position does not resolve.
	// It signals a broken mapping invariant, not a user error.
	ErrPositionNotFound = errors.New("store: position not found")

	// ErrCapacity is returned when a store cannot address another entry.
	ErrCapacity = errors.New("store: capacity exceeded")
)
