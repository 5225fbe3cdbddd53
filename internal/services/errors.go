package services

import "errors"

var (
	// ErrNotFound is returned when a row does not exist or is owned by
	// another user. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation is wrapped with a human-readable detail.
	ErrValidation = errors.New("validation failed")
)
