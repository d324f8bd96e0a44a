package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Handshake failures. Surfaced by rejecting the connection attempt before
// any room join; the caller never sees an in-room message for these.
var (
	ErrMissingProject    = fmt.Errorf("projectId is required")
	ErrInvalidProject    = fmt.Errorf("invalid projectId")
	ErrProjectNotFound   = fmt.Errorf("project not found")
	ErrMissingCredential = fmt.Errorf("authentication token is required")
	ErrInvalidCredential = fmt.Errorf("invalid or expired token")
)

// ErrWorkerPanic marks a worker crash recovered by the supervisor.
var ErrWorkerPanic = fmt.Errorf("worker panic")

// Account and project failures.
var (
	ErrUserAlreadyExists  = fmt.Errorf("a user with that email already exists")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity requirements")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrNotProjectCreator  = fmt.Errorf("only the creator can manage project members")
	ErrUserNotInProject   = fmt.Errorf("user not found in project")
	ErrNothingToAdd       = fmt.Errorf("no new valid users to add")
)

// HTTPStatus maps a service error to the status code the REST layer answers
// with. Unknown errors map to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMissingProject),
		errors.Is(err, ErrInvalidProject),
		errors.Is(err, ErrInvalidPassword),
		errors.Is(err, ErrNothingToAdd):
		return http.StatusBadRequest
	case errors.Is(err, ErrMissingCredential),
		errors.Is(err, ErrInvalidCredential),
		errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotProjectCreator):
		return http.StatusForbidden
	case errors.Is(err, ErrProjectNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrUserNotInProject):
		return http.StatusNotFound
	case errors.Is(err, ErrUserAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
