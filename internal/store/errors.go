package store

import "errors"

var (
	// ErrConflict: the interval is no longer free at write time.
	ErrConflict = errors.New("conflict")
	// ErrNotFound: the booking id no longer exists (or is soft-deleted).
	ErrNotFound = errors.New("not found")
)
