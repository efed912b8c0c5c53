// Package apperror defines the typed failures surfaced by the HTTP API. Each
// error carries an HTTP status and a machine-readable code; the Fiber error
// handler maps them to the JSON envelope {"error":{"code","message"}}.
package apperror

import "net/http"

type Code string

const (
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeForbidden        Code = "FORBIDDEN"
	CodeNotFound         Code = "NOT_FOUND"
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeConflict         Code = "CONFLICT"
	CodeInternal         Code = "INTERNAL_ERROR"
)

type Error struct {
	Status  int
	Code    Code
	Message string
	Details any
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, code Code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func Unauthorized(message string) *Error {
	if message == "" {
		message = "Unauthorized"
	}
	return New(http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(message string) *Error {
	if message == "" {
		message = "Forbidden"
	}
	return New(http.StatusForbidden, CodeForbidden, message)
}

func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return New(http.StatusNotFound, CodeNotFound, message)
}

func ValidationFailed(message string, details any) *Error {
	if message == "" {
		message = "Validation failed"
	}
	return &Error{
		Status:  http.StatusUnprocessableEntity,
		Code:    CodeValidationFailed,
		Message: message,
		Details: details,
	}
}

func Conflict(message string) *Error {
	if message == "" {
		message = "Conflict"
	}
	return New(http.StatusConflict, CodeConflict, message)
}

func Internal(message string) *Error {
	if message == "" {
		message = "Internal server error"
	}
	return New(http.StatusInternalServerError, CodeInternal, message)
}
