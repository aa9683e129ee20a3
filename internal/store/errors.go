package store

import "errors"

// Sentinel errors returned by store operations.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrClosed indicates the store has been closed.
	ErrClosed = errors.New("store is closed")

	// ErrBadSnapshot indicates Import was given bytes that do not parse
	// as a valid engine snapshot. The live database is left untouched.
	ErrBadSnapshot = errors.New("invalid database snapshot")
)
