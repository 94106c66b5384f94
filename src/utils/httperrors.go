package utils

import (
	"net/http"
)

// HTTPError carries the status code a handler should answer with.
type HTTPError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
}

// Error satisfies the error interface
func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with a custom status code and message
func NewHTTPError(code int, message string) error {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// BadRequest creates a 400 Bad Request error
func BadRequest(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

// NotFound creates a 404 Not Found error
func NotFound(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

// UnprocessableEntity creates a 422 error for well-formed but invalid input
func UnprocessableEntity(message string) error {
	return NewHTTPError(http.StatusUnprocessableEntity, message)
}

// RequestEntityTooLarge creates a 413 error for uploads over the size limit
func RequestEntityTooLarge(message string) error {
	return NewHTTPError(http.StatusRequestEntityTooLarge, message)
}

// InternalServerError creates a 500 Internal Server Error
func InternalServerError(message string) error {
	return NewHTTPError(http.StatusInternalServerError, message)
}
