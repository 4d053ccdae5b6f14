package domain

import "errors"

// Sentinel errors for the whole API; services wrap these with context and
// handlers map them to HTTP status codes.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("not authorized")
	ErrUnauthenticated   = errors.New("invalid credentials")
	ErrValidation        = errors.New("validation failed")
	ErrQuotaExceeded     = errors.New("reservation limit reached")
	ErrInvalidTransition = errors.New("invalid status transition")
)
