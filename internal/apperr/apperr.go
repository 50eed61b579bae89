package apperr

import (
	"fmt"
	"net/http"
)

// Error is an error with an associated HTTP status code and, for
// validation and conflict failures, a per-field error map.
type Error struct {
	Status  int
	Message string
	Errors  map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an Error with the given status and message.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Validation reports a 400 with a per-field error map.
func Validation(fields map[string]string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Message: "Bad Request",
		Errors:  fields,
	}
}

// NotFound reports the resource-specific 404 message.
func NotFound(resource string) *Error {
	return New(http.StatusNotFound, fmt.Sprintf("%s couldn't be found", resource))
}

// Forbidden is the bare ownership failure.
func Forbidden() *Error {
	return New(http.StatusForbidden, "Forbidden")
}

// ForbiddenWithFields reports a 403 carrying a field map, used for
// booking date conflicts.
func ForbiddenWithFields(message string, fields map[string]string) *Error {
	return &Error{
		Status:  http.StatusForbidden,
		Message: message,
		Errors:  fields,
	}
}

// Unauthorized reports a missing or invalid session.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}
