package global

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Services wrap these with a user-facing message, handlers map
// them onto status codes with StatusFor.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)

// AppError carries the message shown to the client next to the error kind.
type AppError struct {
	Kind    error
	Message string
	Field   string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

func NewError(kind error, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func FieldError(kind error, field, message string) *AppError {
	return &AppError{Kind: kind, Message: message, Field: field}
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ResponseFor builds the error envelope. Internal errors never leak their text.
func ResponseFor(err error) APIResponse {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return ErrorResponse("Internal server error", nil)
	}

	var details []ValidationError
	if appErr.Field != "" {
		details = []ValidationError{{Field: appErr.Field, Message: appErr.Message, Code: codeFor(appErr.Kind)}}
	}
	return ErrorResponse(appErr.Message, details)
}

func codeFor(kind error) string {
	switch kind {
	case ErrValidation:
		return "validation_error"
	case ErrNotFound:
		return "not_found"
	case ErrConflict:
		return "conflict"
	case ErrInvalidState:
		return "invalid_operation"
	default:
		return ""
	}
}
