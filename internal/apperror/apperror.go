package apperror

import (
	"fmt"
	"net/http"
)

const (
	CodeInvalidField = "INVALID_FIELD"
	CodeDuplicateKey = "DUPLICATE_KEY"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is an error with a machine-checkable code and an HTTP status.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError without a wrapped cause.
func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// Wrap attaches code, message and status to an existing error.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}

// InvalidField reports a payload field that failed validation.
func InvalidField(field, reason string) *AppError {
	return New(
		CodeInvalidField,
		fmt.Sprintf("%s %s", field, reason),
		http.StatusUnprocessableEntity,
	)
}

// DuplicateEmail reports an email collision with another employee.
func DuplicateEmail(email string) *AppError {
	return New(
		CodeDuplicateKey,
		fmt.Sprintf("email %q already exists", email),
		http.StatusBadRequest,
	)
}

// NotFound reports that an id does not resolve to a row.
func NotFound(id int) *AppError {
	return New(
		CodeNotFound,
		fmt.Sprintf("employee %d not found", id),
		http.StatusNotFound,
	)
}

var ErrInternal = New(
	CodeInternal,
	"an unexpected error occurred",
	http.StatusInternalServerError,
)
