package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes used across the scoring engine and the HTTP surface.
const (
	CodeParamsError     = "PARAMS_ERROR"
	CodeNotFound        = "NOT_FOUND_ERROR"
	CodeSystemError     = "SYSTEM_ERROR"
	CodeOperationError  = "OPERATION_ERROR"
	CodeLockUnavailable = "LOCK_UNAVAILABLE"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Params(err error) *Error {
	return New(http.StatusBadRequest, CodeParamsError, err)
}

func NotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

func System(err error) *Error {
	return New(http.StatusInternalServerError, CodeSystemError, err)
}

func Operation(err error) *Error {
	return New(http.StatusInternalServerError, CodeOperationError, err)
}

// LockUnavailable is a transient outcome, not a hard failure: the bounded
// wait on the answer lock was exhausted and the caller may retry.
func LockUnavailable(err error) *Error {
	return New(http.StatusServiceUnavailable, CodeLockUnavailable, err)
}

// Code returns the error code carried by err, or SYSTEM_ERROR when err is
// not an *Error.
func Code(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != "" {
		return ae.Code
	}
	return CodeSystemError
}

// Status returns the HTTP status carried by err, defaulting to 500.
func Status(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}
