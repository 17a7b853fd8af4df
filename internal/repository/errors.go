// Package repository defines the data access layer and the sentinel
// error values shared across its repositories. Sentinels let handlers
// distinguish failure scenarios without inspecting driver errors:
// ErrNotFound maps to HTTP 404, ErrEmailExists and ErrConflict to 409.
package repository

import "errors"

// ErrNotFound is returned when a referenced user, car or booking row
// does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when registration collides with an
// existing account. It covers both the pre-check and the unique-key
// fallback (MySQL error 1062).
var ErrEmailExists = errors.New("email already exists")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state, such as a booking whose dates overlap an existing
// reservation for the same car. Handlers translate this into 409.
var ErrConflict = errors.New("conflict")
