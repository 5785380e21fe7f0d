// Package apperr carries the error taxonomy shared by every service:
// controllers map codes to HTTP statuses, services attach codes at their
// own boundary.
package apperr

import (
	"errors"
	"fmt"
)

type ErrCode string

const (
	ErrValidation  ErrCode = "VALIDATION"
	ErrNotFound    ErrCode = "NOT_FOUND"
	ErrConflict    ErrCode = "CONFLICT"
	ErrDependency  ErrCode = "DEPENDENCY_FAILURE"
	ErrPersistence ErrCode = "PERSISTENCE"
)

type codedError struct {
	code  ErrCode
	msg   string
	cause error
}

func (e codedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e codedError) Code() ErrCode { return e.code }
func (e codedError) Unwrap() error { return e.cause }

func New(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

func Wrap(c ErrCode, msg string, cause error) error {
	return codedError{code: c, msg: msg, cause: cause}
}

// Code extracts the error code, or "" for uncoded errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Message returns the coded error's own message, without the wrapped
// cause, or a generic fallback for uncoded errors. Controllers use it
// for response bodies so internals stay out of the wire.
func Message(err error) string {
	var ce codedError
	if errors.As(err, &ce) {
		return ce.msg
	}
	return "internal error"
}

// HTTPStatus maps the taxonomy onto response codes: validation 400,
// not found 404, conflict 409, dependency failure 502, everything
// else 500.
func HTTPStatus(err error) int {
	switch Code(err) {
	case ErrValidation:
		return 400
	case ErrNotFound:
		return 404
	case ErrConflict:
		return 409
	case ErrDependency:
		return 502
	default:
		return 500
	}
}
