package errors

import (
	"errors"
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

func New(message string, statusCode int) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: statusCode}
}

func NotFound(message string) *ErrorWithStatusCode {
	return New(message, http.StatusNotFound)
}

func BadRequest(message string) *ErrorWithStatusCode {
	return New(message, http.StatusBadRequest)
}

func Forbidden(message string) *ErrorWithStatusCode {
	return New(message, http.StatusForbidden)
}

func IsNotFound(err error) bool {
	var e *ErrorWithStatusCode
	return errors.As(err, &e) && e.StatusCode == http.StatusNotFound
}
