package models

import "errors"

// Sentinel errors shared by repositories, services and handlers.
// Wrap them with fmt.Errorf("...: %w", err) and match with errors.Is.
var (
	// ErrValidation is returned when input is rejected before any store call.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when a record does not exist or belongs to another user.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a unique value is already taken.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned when a token is missing, invalid or revoked.
	ErrUnauthorized = errors.New("unauthorized")
)
