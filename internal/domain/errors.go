package domain

import (
	"errors"
	"net/http"
)

// Error is the service-level failure taxonomy. Handlers translate it
// straight to an HTTP status; anything that is not an *Error surfaces
// as a generic internal error.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: "not_found", Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Code: "forbidden", Message: message}
}

func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "validation", Message: message}
}

func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Code: "conflict", Message: message}
}

func Internal(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: "internal", Message: message}
}

// AsError normalizes any error into the taxonomy. Unknown errors map to
// a generic internal error so store details never leak to clients.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("internal server error")
}
