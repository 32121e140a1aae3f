// Package apperr defines the error taxonomy served at the API boundary.
// Clients match on the stable Code values, never on message text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation       Code = "VALIDATION_ERROR"
	CodeNotFound         Code = "NOT_FOUND"
	CodeUpstream         Code = "GENERATION_FAILED"
	CodePersistence      Code = "PERSISTENCE_FAILED"
	CodeMethodNotAllowed Code = "METHOD_NOT_ALLOWED"
	CodeInternal         Code = "SERVER_ERROR"
)

type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(resource string) *Error {
	return &Error{Code: CodeNotFound, Message: resource + " not found"}
}

func Upstream(message string, err error) *Error {
	return &Error{Code: CodeUpstream, Message: message, Err: err}
}

func Persistence(op string, err error) *Error {
	return &Error{Code: CodePersistence, Message: "unable to " + op, Err: err}
}

func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "internal server error", Err: err}
}

// CodeOf extracts the stable code from err, defaulting to SERVER_ERROR.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

// HTTPStatus maps a code to its response status.
func HTTPStatus(code Code) int {
	switch code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case CodeUpstream, CodePersistence, CodeInternal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func IsValidation(err error) bool  { return CodeOf(err) == CodeValidation }
func IsNotFound(err error) bool    { return CodeOf(err) == CodeNotFound }
func IsUpstream(err error) bool    { return CodeOf(err) == CodeUpstream }
func IsPersistence(err error) bool { return CodeOf(err) == CodePersistence }
