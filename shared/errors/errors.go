package errors

import (
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Is matches any ErrorWithStatusCode of the same status code, so
// errors.Is(err, ErrNotFound) works for every not-found error we build.
func (e *ErrorWithStatusCode) Is(target error) bool {
	t, ok := target.(*ErrorWithStatusCode)
	return ok && t.StatusCode == e.StatusCode
}

// Error kinds. Compare with errors.Is, never with ==.
var (
	ErrNotFound        = &ErrorWithStatusCode{Message: "Not found", StatusCode: http.StatusNotFound}
	ErrValidation      = &ErrorWithStatusCode{Message: "Validation error", StatusCode: http.StatusBadRequest}
	ErrStoreConflict   = &ErrorWithStatusCode{Message: "Conflicting write, try again", StatusCode: http.StatusConflict}
	ErrUnauthenticated = &ErrorWithStatusCode{Message: "Please sign-in", StatusCode: http.StatusUnauthorized}
)

func NotFound(what string) error {
	return &ErrorWithStatusCode{Message: what + " not found", StatusCode: http.StatusNotFound}
}

func Validation(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

func Conflict(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusConflict}
}

func Unauthenticated() error {
	return &ErrorWithStatusCode{Message: ErrUnauthenticated.Message, StatusCode: http.StatusUnauthorized}
}
