package model

import "errors"

var (
	// ErrNotFound is returned when a requested row does not exist or is not
	// visible to the caller. Cross-owner mutation attempts surface this same
	// error so that existence of foreign cards is never confirmed.
	ErrNotFound = errors.New("not found")

	// ErrUsernameTaken and ErrEmailTaken are raised from the unique indexes
	// on the users table.
	ErrUsernameTaken = errors.New("username is already taken")
	ErrEmailTaken    = errors.New("email is already taken")

	// ErrInvalidCredentials covers both unknown email and password mismatch.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrConflict is returned when the store detects a stale write.
	ErrConflict = errors.New("concurrency conflict")
)
