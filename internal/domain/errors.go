package domain

import (
	"errors"
	"net/http"
)

// Sentinel errors - match with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrUpstream     = errors.New("upstream service failed")
)

// RoleError reports that the caller is authenticated but lacks the required role.
// Landing is where the caller's own role should be sent instead.
type RoleError struct {
	Required string
	Actual   string
	Landing  string
}

func (e *RoleError) Error() string {
	return "role " + e.Actual + " does not satisfy " + e.Required
}

// StatusCode maps the error to 403
func (e *RoleError) StatusCode() int { return http.StatusForbidden }

// Is allows errors.Is() to match against ErrForbidden
func (e *RoleError) Is(target error) bool {
	return target == ErrForbidden
}

// AuthError carries a user-facing message for sign-in and sign-up failures.
// Raw is the message returned by the auth backend.
type AuthError struct {
	Message string
	Raw     string
	Status  int
}

func (e *AuthError) Error() string { return e.Message }

// StatusCode returns the HTTP status to report for this failure
func (e *AuthError) StatusCode() int {
	if e.Status == 0 {
		return http.StatusBadRequest
	}
	return e.Status
}

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string
	ResourceType string
	ResourceID   string
}

func (e *ConflictError) Error() string { return e.Message }

// StatusCode maps the error to 409
func (e *ConflictError) StatusCode() int { return http.StatusConflict }

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
