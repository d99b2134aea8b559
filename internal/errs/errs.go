// Package errs defines the error kinds surfaced by wallet operations.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an expected failure.
type Kind string

const (
	KindValidation   Kind = "VALIDATION_ERROR"
	KindNetwork      Kind = "NETWORK_ERROR"
	KindParse        Kind = "PARSE_ERROR"
	KindNotFound     Kind = "NOT_FOUND"
	KindFatalEntropy Kind = "FATAL_ENTROPY"
)

// Error is a classified error. Msg is safe to show to the user.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports bad user input.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Network wraps a transport level failure.
func Network(err error, format string, args ...any) error {
	return &Error{Kind: KindNetwork, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Parse wraps a malformed remote response.
func Parse(err error, format string, args ...any) error {
	return &Error{Kind: KindParse, Msg: fmt.Sprintf(format, args...), Err: err}
}

// NotFound reports that the remote side has no record for the request.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// FatalEntropy wraps a failure of the secure random source.
func FatalEntropy(err error) error {
	return &Error{Kind: KindFatalEntropy, Msg: "secure random source unavailable", Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Retryable reports whether the operation that produced err may be retried.
// Only network failures qualify.
func Retryable(err error) bool {
	return Is(err, KindNetwork)
}
