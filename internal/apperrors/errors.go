// Package apperrors defines the error taxonomy shared by the engagement
// services and the HTTP layer. Services wrap these sentinels with context via
// fmt.Errorf("...: %w", ...); handlers match them with errors.Is.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound means the referenced entity is absent or soft-deleted.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the actor is not the owning author.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidOperation covers self-follow, reply-to-reply and illegal
	// status transitions.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrConflict is a duplicate unique-key insert that slipped past the
	// idempotency pre-check. Toggle paths retry once before surfacing it.
	ErrConflict = errors.New("conflict")
	// ErrUnauthenticated means no principal could be resolved.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// HTTPStatus maps a service error onto an HTTP status code. Unrecognized
// errors map to 500 without leaking storage details.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidOperation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
