// Package apperror carries the error kinds shared by repositories, use cases
// and the HTTP layer. Every route renders failures as {error, details}.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrPermission   = errors.New("permission denied")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal server error")
	ErrUnauthorized = errors.New("unauthorized")
)

// statusByKind is checked in order; anything unmatched is a 500.
var statusByKind = []struct {
	kind   error
	status int
}{
	{ErrNotFound, http.StatusNotFound},
	{ErrInvalidInput, http.StatusBadRequest},
	{ErrUnauthorized, http.StatusUnauthorized},
	{ErrPermission, http.StatusForbidden},
	{ErrConflict, http.StatusConflict},
}

// AppError pairs a kind (BaseError) with a public message and details. Err is
// the underlying cause; it is logged but never rendered.
type AppError struct {
	BaseError error
	Message   string
	Details   string
	Err       error
}

func (e *AppError) Error() string {
	s := fmt.Sprintf("%s: %s", e.BaseError, e.Message)
	if e.Details != "" {
		s += " (" + e.Details + ")"
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap exposes the kind so callers can match with errors.Is(err, ErrNotFound).
func (e *AppError) Unwrap() error {
	return e.BaseError
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewNotFound(resource, identifier string) *AppError {
	return NewAppError(ErrNotFound,
		resource+" not found",
		fmt.Sprintf("%s with identifier '%s' was not found", resource, identifier),
		nil)
}

func NewInvalidInput(details string, err error) *AppError {
	return NewAppError(ErrInvalidInput, "Invalid input provided", details, err)
}

func NewConflict(resource, field, value string) *AppError {
	return NewAppError(ErrConflict,
		resource+" conflict",
		fmt.Sprintf("%s with %s '%s' already exists", resource, field, value),
		nil)
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, "An internal server error occurred", details, err)
}

func NewUnauthorized(details string, err error) *AppError {
	return NewAppError(ErrUnauthorized, "Invalid credentials", details, err)
}

func NewPermissionDenied(details string) *AppError {
	return NewAppError(ErrPermission, "Permission denied", details, nil)
}

// NewForbiddenResource reports that resource id exists but belongs to another user.
func NewForbiddenResource(resource, identifier string) *AppError {
	return NewPermissionDenied(fmt.Sprintf("%s '%s' belongs to another user", resource, identifier))
}

func ToHTTPStatus(err error) int {
	for _, k := range statusByKind {
		if errors.Is(err, k.kind) {
			return k.status
		}
	}
	return http.StatusInternalServerError
}

// ToJSON renders the response body. Details fall back to the message.
func (e *AppError) ToJSON() gin.H {
	details := e.Details
	if details == "" {
		details = e.Message
	}
	return gin.H{"error": e.BaseError.Error(), "details": details}
}

// From converts any error into an *AppError, treating unknown errors as internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal(err.Error(), err)
}
