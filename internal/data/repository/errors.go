// Package repository holds the catalog and reservation stores. The
// sentinel errors below are shared across repositories so higher
// layers can distinguish failure scenarios with errors.Is instead of
// matching message strings.
package repository

import "errors"

// ErrNotFound is returned when a movie, showtime, user or reservation
// does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when creating a user whose phone number is
// already registered.
var ErrDuplicate = errors.New("already exists")

// ErrPersistence wraps I/O or decode failures on load/save. A load
// failure yields an empty store rather than a crash; callers surface
// the warning and continue.
var ErrPersistence = errors.New("persistence failure")
