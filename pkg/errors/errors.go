// Package errors defines the coded errors shared by the shelfview library,
// its CLI and its HTTP API.
//
// Every failure a caller can act on carries a [Code]. Codes group into a
// [Kind], which the HTTP layer maps to a status and the CLI maps to an exit
// code. Pure geometry never fails; degenerate inputs are clamped instead.
//
//	err := errors.New(errors.ErrCodeInvalidScene, "section %d has no items", i)
//	if errors.KindOf(err) == errors.KindInvalid { ... }
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidScene  Code = "INVALID_SCENE"
	ErrCodeInvalidMode   Code = "INVALID_MODE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"

	// Layout switch protocol violations.
	ErrCodeTransitionInProgress Code = "TRANSITION_IN_PROGRESS"
	ErrCodeNoTransition         Code = "NO_TRANSITION"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Kind is the coarse class of a Code.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindNotFound
	KindConflict
	KindUnsupported
)

var kinds = map[Code]Kind{
	ErrCodeInvalidInput:         KindInvalid,
	ErrCodeInvalidScene:         KindInvalid,
	ErrCodeInvalidMode:          KindInvalid,
	ErrCodeInvalidFormat:        KindInvalid,
	ErrCodeInvalidPath:          KindInvalid,
	ErrCodeNotFound:             KindNotFound,
	ErrCodeFileNotFound:         KindNotFound,
	ErrCodeSessionNotFound:      KindNotFound,
	ErrCodeTransitionInProgress: KindConflict,
	ErrCodeNoTransition:         KindConflict,
	ErrCodeUnsupported:          KindUnsupported,
}

// Kind classifies c. Unknown and empty codes are KindInternal.
func (c Code) Kind() Kind { return kinds[c] }

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindUnsupported:
		return "unsupported"
	}
	return "internal"
}

// Error carries a Code, a message for humans and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error whose cause is err.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := asError(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// KindOf classifies err. Errors without a code are KindInternal.
func KindOf(err error) Kind { return GetCode(err).Kind() }

// UserMessage strips the code prefix and cause from coded errors.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

// ExitCode maps err to a process exit status: 0 for nil, 2 for invalid
// input, 3 for missing resources and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindInvalid:
		return 2
	case KindNotFound:
		return 3
	}
	return 1
}
