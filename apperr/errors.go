package apperr

import "errors"

// Code classifies an application error for the HTTP boundary.
type Code int

const (
	CodeBadRequest Code = iota
	CodeNotFound
	CodeConflict
	CodeForbidden
	CodeInternal
)

// Error is a typed application error. Service functions return these and the
// HTTP layer maps them to status codes in exactly one place.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

func BadRequest(msg string) *Error { return &Error{CodeBadRequest, msg} }
func NotFound(msg string) *Error   { return &Error{CodeNotFound, msg} }
func Conflict(msg string) *Error   { return &Error{CodeConflict, msg} }
func Forbidden(msg string) *Error  { return &Error{CodeForbidden, msg} }
func Internal(msg string) *Error   { return &Error{CodeInternal, msg} }

// CodeOf returns the code of err if it is an application error, CodeInternal
// otherwise.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// IsCode reports whether err is an application error with the given code.
func IsCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
