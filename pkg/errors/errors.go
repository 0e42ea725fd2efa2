package errors

import (
	stderrors "errors"
	"net/http"

	"gorm.io/gorm"
)

// Kind classifies an AppError independently of the transport.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUpstream     Kind = "upstream"
	KindStore        Kind = "store"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindRateLimit    Kind = "rate_limit"
)

// AppError is a custom error type that includes an HTTP status code
type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`

	cause error
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying store or upstream error, if any.
func (e *AppError) Unwrap() error {
	return e.cause
}

// NewAppError creates a new AppError
func NewAppError(kind Kind, code int, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Common errors
var (
	ErrInvalidRequest = NewAppError(KindValidation, http.StatusBadRequest, "Invalid request parameters")
	ErrUnauthorized   = NewAppError(KindUnauthorized, http.StatusUnauthorized, "Unauthorized access")
	ErrForbidden      = NewAppError(KindForbidden, http.StatusForbidden, "Access denied")
	ErrNotFound       = NewAppError(KindNotFound, http.StatusNotFound, "Resource not found")
	ErrInternalServer = NewAppError(KindStore, http.StatusInternalServerError, "Internal server error")
	ErrRateLimit      = NewAppError(KindRateLimit, http.StatusTooManyRequests, "Rate limit exceeded")
)

// Helper functions to create specific errors
func Validation(msg string) *AppError {
	return NewAppError(KindValidation, http.StatusBadRequest, msg)
}

func NotFound(msg string) *AppError {
	return NewAppError(KindNotFound, http.StatusNotFound, msg)
}

func Conflict(msg string) *AppError {
	return NewAppError(KindConflict, http.StatusConflict, msg)
}

func Unauthorized(msg string) *AppError {
	return NewAppError(KindUnauthorized, http.StatusUnauthorized, msg)
}

func Forbidden(msg string) *AppError {
	return NewAppError(KindForbidden, http.StatusForbidden, msg)
}

// Upstream wraps a failure of an external service (stats provider, mail relay).
func Upstream(msg string, cause error) *AppError {
	e := NewAppError(KindUpstream, http.StatusBadGateway, msg)
	e.cause = cause
	return e
}

// Store wraps a persistence failure. The message shown to clients stays generic.
func Store(cause error) *AppError {
	e := NewAppError(KindStore, http.StatusInternalServerError, "Database error")
	e.cause = cause
	return e
}

// FromDB maps gorm errors onto AppError kinds. notFoundMsg is used for
// ErrRecordNotFound, conflictMsg for ErrDuplicatedKey.
func FromDB(err error, notFoundMsg, conflictMsg string) error {
	if err == nil {
		return nil
	}
	switch {
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(notFoundMsg)
	case stderrors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict(conflictMsg)
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Store(err)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
