// Package codeerrors implements the typed error-kind scheme the full-text engine
// uses in place of exceptions: Syntax/Config/Format/IO/NotFound/Conflict errors are
// ordinary values callers can compare with errors.Is; an invariant violation is
// not one of these, it panics, since it has no recoverable path.
package codeerrors

import "fmt"

// Error wraps an implementation-specific error with a stable code so callers can
// branch on kind without string matching.
type Error struct {
	Code    string
	Message string
	Reason  error
}

// Error implements the standard error interface.
func (e Error) Error() string {
	if e.Reason != nil {
		return e.Reason.Error()
	}
	msg := e.Message + " (code=" + e.Code + ")"
	return msg
}

// Cause implements errors.Causer for github.com/pkg/errors interop.
func (e Error) Cause() error {
	return e.Reason
}

// Unwrap provides Go 1.13+ error chain compatibility.
func (e Error) Unwrap() error {
	return e.Reason
}

// Is consults errors.Is, comparing by code only.
func (e Error) Is(target error) bool {
	if tErr, ok := target.(Error); ok {
		return e.Code == tErr.Code
	}
	if tErr, ok := target.(*Error); ok {
		return e.Code == tErr.Code
	}
	return false
}

// WithMessage returns a copy of e with a formatted message.
func (e Error) WithMessage(format string, args ...interface{}) Error {
	e.Message = fmt.Sprintf(format, args...)
	return e
}

// WithReason returns a copy of e wrapping the given reason.
func (e Error) WithReason(err error) Error {
	e.Reason = err
	return e
}

// Wrap returns a copy of e with err chained onto any existing reason.
func (e Error) Wrap(err error) error {
	if e.Reason == nil {
		e.Reason = err
	} else if er, ok := e.Reason.(interface{ Wrap(error) error }); ok {
		e.Reason = er.Wrap(err)
	} else {
		panic("re-wrapping error not supporting Wrap()")
	}
	return e
}

// Invariant panics with a diagnostic message. Use it for fatal internal
// inconsistencies (docid out-of-order, corrupted internal state) that have no
// recoverable path, so it is not modeled as an error value.
func Invariant(format string, args ...interface{}) {
	panic("invariant violation: " + fmt.Sprintf(format, args...))
}
