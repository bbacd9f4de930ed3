// Package errors provides structured error types for hemicycle.
//
// Every failure that crosses a package boundary carries a machine-readable
// [Code] so the CLI and the HTTP API can react to it without string matching:
//
//   - INVALID_*: Input validation failures (rejected before any computation)
//   - *_NOT_FOUND: Missing files or resources
//   - INTERNAL_ERROR: Broken invariants inside the layout engine
//   - UNSUPPORTED: Requests for formats or backends that do not exist
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidScale, "scale must be positive, got %v", scale)
//	errors.Is(err, errors.ErrCodeInvalidScale) // true
//	errors.CodeOf(err).Validation()             // true
//
//	err = errors.Wrap(errors.ErrCodeFileNotFound, origErr, "read groups %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a machine-readable error code. Codes beginning with "INVALID_"
// mark input the caller can fix.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"    // malformed request or groups file
	ErrCodeInvalidScale    Code = "INVALID_SCALE"    // scale not finite and positive
	ErrCodeInvalidGroup    Code = "INVALID_GROUP"    // bad label or seat count
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY" // seats do not fit the rows
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"   // unknown export format
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR" // broken layout invariant
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

const validationPrefix = "INVALID_"

// Validation reports whether c rejects caller input.
func (c Code) Validation() bool {
	return strings.HasPrefix(string(c), validationPrefix)
}

// Error carries a Code, a message meant for users, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error with code that wraps cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// find returns the outermost *Error in err's chain.
func find(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func CodeOf(err error) Code {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ""
}

// Message returns the user-facing message of err without code or cause.
// Errors from outside this package are returned verbatim.
func Message(err error) string {
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err carries an INVALID_* code.
func IsValidation(err error) bool {
	return CodeOf(err).Validation()
}
