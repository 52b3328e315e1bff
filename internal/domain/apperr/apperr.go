// Package apperr classifies the failures a workspace operation can end with.
package apperr

import (
	"errors"
	"fmt"
)

// Kind categorizes an application error.
type Kind int

const (
	// KindInternal is the zero kind for errors nobody classified.
	KindInternal Kind = iota
	// KindValidation blocks a local action before any network call.
	KindValidation
	// KindTransport means the quote backend could not be reached.
	KindTransport
	// KindUnauthorized means the backend rejected the stored token.
	KindUnauthorized
	// KindAuthentication means a login attempt failed.
	KindAuthentication
	// KindMalformed means the backend answered with an unusable payload.
	KindMalformed
	// KindRemote is any other non-2xx answer from the backend.
	KindRemote
	// KindNotFound means the referenced entity is not known locally.
	KindNotFound
	// KindConflict means the action is not allowed in the current state.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindUnauthorized:
		return "unauthorized"
	case KindAuthentication:
		return "authentication"
	case KindMalformed:
		return "malformed"
	case KindRemote:
		return "remote"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a classified error with a human readable message.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns an Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error of the given kind around cause.
func Wrap(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Validation is shorthand for New(KindValidation, ...).
func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

// Conflict is shorthand for New(KindConflict, ...).
func Conflict(format string, args ...any) *Error {
	return New(KindConflict, format, args...)
}

// NotFound is shorthand for New(KindNotFound, ...).
func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the message of the outermost *Error, or err.Error().
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
