package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents common error identifiers reused across the API.
type ErrorCode string

const (
	ErrValidation   ErrorCode = "validation_error"
	ErrBadRequest   ErrorCode = "bad_request"
	ErrConflict     ErrorCode = "conflict"
	ErrNotFound     ErrorCode = "not_found"
	ErrUnauthorized ErrorCode = "unauthorized"
	ErrForbidden    ErrorCode = "forbidden"
	ErrUnavailable  ErrorCode = "unavailable"
	ErrTooMany      ErrorCode = "too_many_requests"
	ErrInternal     ErrorCode = "internal_error"
)

// AppError pairs a client-safe message and code with the HTTP status and the
// underlying cause, which is only ever logged.
type AppError struct {
	err        error
	message    string
	code       ErrorCode
	httpStatus int
	fields     map[string]string
}

// New creates a new AppError with supplied details.
func New(message string, status int, code ErrorCode, err error) *AppError {
	return &AppError{
		err:        err,
		message:    message,
		httpStatus: status,
		code:       code,
	}
}

// Validation builds a 400 error listing the offending fields.
func Validation(message string, fields map[string]string, cause error) *AppError {
	return New(message, http.StatusBadRequest, ErrValidation, cause).WithFields(fields)
}

// Unavailable builds a 503 error for a store or upstream that could not be reached.
func Unavailable(cause error) *AppError {
	return New("Service temporarily unavailable", http.StatusServiceUnavailable, ErrUnavailable, cause)
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s [%s]: %v", e.message, e.code, e.err)
	}
	return fmt.Sprintf("%s [%s]", e.message, e.code)
}

func (e *AppError) Unwrap() error {
	return e.err
}

// Message returns a safe error message for clients.
func (e *AppError) Message() string {
	return e.message
}

// StatusCode returns the HTTP status to use for this error.
func (e *AppError) StatusCode() int {
	return e.httpStatus
}

// Code returns the application level error code.
func (e *AppError) Code() ErrorCode {
	return e.code
}

// WithFields attaches field-level errors to the AppError.
func (e *AppError) WithFields(fields map[string]string) *AppError {
	clone := *e
	clone.fields = fields
	return &clone
}

// Fields returns any field-level errors recorded on the AppError.
func (e *AppError) Fields() map[string]string {
	return e.fields
}

// Detail is the payload placed in the "error" member of an error response.
func (e *AppError) Detail() interface{} {
	if len(e.fields) > 0 {
		return map[string]interface{}{"code": e.code, "fields": e.fields}
	}
	return map[string]interface{}{"code": e.code}
}

// Is reports whether err carries an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.code == code
	}
	return false
}

// Wrap converts a standard error into an AppError if needed.
func Wrap(err error, message string, status int, code ErrorCode) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return New(message, status, code, err)
}
