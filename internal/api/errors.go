package api

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrInvalidCredentials is returned when a login is rejected by the server.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned when the server rejects the bearer token (401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the token is valid but not allowed (403).
	ErrForbidden = errors.New("forbidden")

	// ErrMalformedResponse is returned when a response body has an
	// unexpected shape.
	ErrMalformedResponse = errors.New("malformed response")
)

// Error represents a non-2xx response from the server.
type Error struct {
	StatusCode int
	RequestID  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned HTTP %d (request %s)", e.StatusCode, e.RequestID)
}

// Unwrap maps auth-related status codes to their sentinels so callers can
// use errors.Is without inspecting status codes.
func (e *Error) Unwrap() error {
	switch e.StatusCode {
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	}
	return nil
}

// IsAuthFailure reports whether the server rejected the caller's token.
// The session store uses this to distinguish a revoked token from an
// unreachable server when deciding what to log.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}
