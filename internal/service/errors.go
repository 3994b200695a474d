package service

import "errors"

// Error kinds the presentation layer maps to HTTP statuses. Wrap with %w
// and match with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)
