package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested fragment does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a fragment with the same ID already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	// Raised by the form layer before the store is ever called.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown fragment type or seed format.
	ErrUnsupportedType = errors.New("unsupported type")
)
