package domain

import "errors"

var (
	// ErrValidation marks model output that could not be parsed or did not match its schema.
	ErrValidation = errors.New("model output failed validation")
	// ErrNotFound marks a referenced record that does not exist.
	ErrNotFound = errors.New("not found")
)

// ErrInvalidInput marks a request that is missing required values or is malformed.
var ErrInvalidInput = errors.New("invalid input")
