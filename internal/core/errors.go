package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure for the scoped error event sent back to
// the originating session. No kind is ever fatal to the process.
type ErrorKind string

const (
	KindAuthentication ErrorKind = "authentication"
	KindAuthorization  ErrorKind = "authorization"
	KindValidation     ErrorKind = "validation"
	KindNotFound       ErrorKind = "not_found"
	KindPersistence    ErrorKind = "persistence"
	KindConflict       ErrorKind = "conflict"
)

type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s/%s: %s: %v", e.Kind, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s/%s: %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(kind ErrorKind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func WrapError(kind ErrorKind, code, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

func Authenticationf(code, format string, args ...any) *Error {
	return NewError(KindAuthentication, code, fmt.Sprintf(format, args...))
}

func Authorizationf(code, format string, args ...any) *Error {
	return NewError(KindAuthorization, code, fmt.Sprintf(format, args...))
}

func Validationf(code, format string, args ...any) *Error {
	return NewError(KindValidation, code, fmt.Sprintf(format, args...))
}

func NotFoundf(code, format string, args ...any) *Error {
	return NewError(KindNotFound, code, fmt.Sprintf(format, args...))
}

// KindOf extracts the kind from any error chain. Unclassified failures
// default to persistence: they come from collaborators, not clients.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}

// CodeOf extracts the machine-readable code, if any.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "internal"
}
