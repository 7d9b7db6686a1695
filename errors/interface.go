package errors

import "errors"

// Error extends the standard error with a numeric classification code and a
// parent-error chain, so a single failure can carry the causes that led to
// it (e.g. a dial failure wrapping the underlying network error) without
// losing the CodeError that identifies which subsystem raised it.
//
// Construct one via a CodeError constant's Error method (e.g.
// ErrorMissingField.Error(cause)), never directly.
type Error interface {
	error

	// IsCode reports whether the error's own code equals code. It does not
	// search parents; use errors.IsCode(err, code) from a caller that only
	// has an `error`, not an Error.
	IsCode(code CodeError) bool

	// Code returns the numeric code classifying this error within its
	// owning package's MinPkg range (see modules.go).
	Code() uint16

	// HasParent reports whether any causes were attached via Add.
	HasParent() bool

	// Add attaches additional causes to this error. Nil errors are
	// ignored; plain (non-Error) errors are wrapped with code 0.
	Add(parent ...error)

	// GetTrace returns the "file#line" the error was constructed at, or
	// "" if no trace was captured.
	GetTrace() string

	// Unwrap exposes parent errors for compatibility with the standard
	// library's errors.Is and errors.As.
	Unwrap() []error
}

// IsCode reports whether err is an Error (see errors.As) whose own code
// equals code. It returns false for nil or non-Error errors.
func IsCode(e error, code CodeError) bool {
	var err Error
	if !errors.As(e, &err) {
		return false
	}
	return err.IsCode(code)
}

// New constructs an Error with the given code and message, attaching any
// non-nil parent errors as causes.
func New(code uint16, message string, parent ...error) Error {
	var p []Error
	for _, e := range parent {
		if e == nil {
			continue
		}
		if er, ok := e.(Error); ok {
			p = append(p, er)
		} else {
			p = append(p, &ers{e: e.Error()})
		}
	}

	return &ers{
		c: code,
		e: message,
		p: p,
		t: getFrame(),
	}
}
