package exceptions

import (
	"errors"
	"fmt"
	"net/http"
)

type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

var (
	// ErrNotFound also covers resources that exist but belong to another user.
	ErrNotFound = &Exception{
		Message:    "resource not found",
		StatusCode: http.StatusNotFound,
	}

	ErrConflict = &Exception{
		Message:    "resource already exists",
		StatusCode: http.StatusConflict,
	}

	ErrInvalidInput = &Exception{
		Message:    "invalid input",
		StatusCode: http.StatusBadRequest,
	}

	ErrDomainInvariant = &Exception{
		Message:    "operation violates a board invariant",
		StatusCode: http.StatusUnprocessableEntity,
	}

	ErrUnauthorized = &Exception{
		Message:    "unauthorized",
		StatusCode: http.StatusUnauthorized,
	}
)

func NotFound(resource string) error {
	return fmt.Errorf("%s not found: %w", resource, ErrNotFound)
}

func Conflict(format string, args ...any) error {
	return wrap(ErrConflict, format, args...)
}

func InvalidInput(format string, args ...any) error {
	return wrap(ErrInvalidInput, format, args...)
}

func DomainInvariant(format string, args ...any) error {
	return wrap(ErrDomainInvariant, format, args...)
}

func Unauthorized(format string, args ...any) error {
	return wrap(ErrUnauthorized, format, args...)
}

func wrap(base *Exception, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), base)
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
