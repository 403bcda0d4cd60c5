package api

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned for 404 replies. List-style callers treat it
// as an empty result, not a failure.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized is returned for 401 replies; the session is stale or
// absent.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx reply from the backend.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: HTTP %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: HTTP %d", e.Status)
}

// ErrRateLimit indicates the backend returned 429.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidPayload indicates a reply that does not conform to the
// expected schema.
type ErrInvalidPayload struct {
	Err error
}

func (e *ErrInvalidPayload) Error() string {
	return fmt.Sprintf("invalid API payload: %v", e.Err)
}

func (e *ErrInvalidPayload) Unwrap() error { return e.Err }

// IsNotFound reports whether err represents a 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
