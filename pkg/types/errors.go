package types

import "errors"

// Domain errors for search requests and interception records
var (
	// Request errors
	ErrEmptyQuery     = errors.New("query cannot be empty")
	ErrInvalidPattern = errors.New("invalid search pattern")
	ErrInvalidKind    = errors.New("invalid schema element type")

	// Interception record errors
	ErrInvalidAction  = errors.New("invalid interception action")
	ErrMissingSession = errors.New("session id is required")
)
