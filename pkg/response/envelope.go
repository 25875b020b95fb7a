package response

import (
	errs "vkbackup/pkg/errors"
)

// Envelope is the result of a single remote call. A successful envelope
// carries Object and never an error; a failed one carries Err and the zero
// Object, except for partial results built with Partial.
type Envelope[T any] struct {
	Object  T
	Message string
	Err     *errs.Error
}

// OK builds a successful envelope
func OK[T any](obj T) Envelope[T] {
	return Envelope[T]{Object: obj}
}

// Info builds a successful envelope that still carries an informational message
func Info[T any](obj T, message string) Envelope[T] {
	return Envelope[T]{Object: obj, Message: message}
}

// Fail builds a failed envelope from a typed error
func Fail[T any](err *errs.Error) Envelope[T] {
	if err == nil {
		err = errs.New(errs.ErrorTypeInvalidInput, "unspecified failure")
	}
	return Envelope[T]{Message: err.Message, Err: err}
}

// Failf builds a failed envelope with a formatted message
func Failf[T any](errorType errs.ErrorType, format string, args ...interface{}) Envelope[T] {
	return Fail[T](errs.Newf(errorType, format, args...))
}

// Partial builds a failed envelope that keeps the data gathered before the failure.
func Partial[T any](obj T, err *errs.Error) Envelope[T] {
	env := Fail[T](err)
	env.Object = obj
	return env
}

// Success reports whether the call succeeded
func (e Envelope[T]) Success() bool {
	return e.Err == nil
}

// Error returns the failure as an error value, or nil on success.
func (e Envelope[T]) Error() error {
	if e.Err == nil {
		return nil
	}
	return e.Err
}

// Unwrap returns the object and the failure in the usual Go shape.
func (e Envelope[T]) Unwrap() (T, error) {
	return e.Object, e.Error()
}

// Map converts the object of a successful envelope. Failures pass through
// with their message and error; partial objects are dropped.
func Map[T, U any](e Envelope[T], fn func(T) U) Envelope[U] {
	if !e.Success() {
		return Envelope[U]{Message: e.Message, Err: e.Err}
	}
	return Envelope[U]{Object: fn(e.Object), Message: e.Message}
}

// Then chains a fallible conversion onto a successful envelope
func Then[T, U any](e Envelope[T], fn func(T) Envelope[U]) Envelope[U] {
	if !e.Success() {
		return Envelope[U]{Message: e.Message, Err: e.Err}
	}
	return fn(e.Object)
}
