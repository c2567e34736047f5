package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when user creation hits the unique email constraint.
var ErrEmailTaken = errors.New("email already in use")
