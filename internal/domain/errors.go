package domain

import "errors"

// Sentinel errors for the cabinet's error taxonomy - use with errors.Is().
// Every error surfaced to a client wraps exactly one of these.
var (
	// ErrNotFound indicates a folder or file id did not resolve.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates invalid input: a missing required field, a
	// disallowed file type, an oversized upload, or a type mismatch on replace.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates an id that already exists somewhere in the tree.
	ErrConflict = errors.New("already exists")

	// ErrUnauthorized indicates authentication failure.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the caller lacks the capability required for the
	// operation (delete operations require leadership or a delete permission).
	ErrForbidden = errors.New("forbidden")

	// ErrPersistence indicates the document write or blob move failed. The
	// operation is reported, never retried.
	ErrPersistence = errors.New("persistence failed")
)
