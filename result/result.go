// Package result provides Result, which holds either the value of a successful
// operation or the error of a failed one.
//
// In synchronous code a (T, error) pair is the natural way to report an
// outcome. Result is for the places where the pair has to be stored or passed
// around as one value, such as the outcome of work done on another goroutine
// and handed back over a channel.
package result

import (
	"github.com/pkg/errors"
)

// ErrUnknown is the failure used when an outcome must be built but neither a
// value nor an error is available.
var ErrUnknown = errors.New("result: unknown error")

// Result is either a success holding a value, or a failure holding a non-nil
// error.
//
// The zero Result is a success holding the zero value of T.
type Result[T any] struct {
	value T
	err   error
}

// Success returns a successful Result holding value.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure returns a failed Result holding err. A nil err is replaced by
// ErrUnknown, so that a failure always carries an error.
func Failure[T any](err error) Result[T] {
	if err == nil {
		err = ErrUnknown
	}
	return Result[T]{err: err}
}

// FromPair builds a Result from an optional value and an optional error. A
// non-nil value wins and gives a success, even if err is also set. Otherwise
// err gives a failure. When both are nil, the Result is a failure holding
// ErrUnknown.
func FromPair[T any](value *T, err error) Result[T] {
	if value != nil {
		return Success(*value)
	}
	return Failure[T](err)
}

// Try calls op and captures its outcome. A non-nil error gives a failure
// regardless of the value returned alongside it.
func Try[T any](op func() (T, error)) Result[T] {
	value, err := op()
	if err != nil {
		return Failure[T](err)
	}
	return Success(value)
}

// IsSuccess reports whether r holds a value.
func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

// Value returns the value of a success. For a failure it returns the zero
// value and false.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.err == nil
}

// Err returns the error of a failure, or nil for a success.
func (r Result[T]) Err() error {
	return r.err
}

// Unwrap converts r back to a (T, error) pair.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// Map returns the success of transform applied to the value of r, or r's
// failure unchanged.
func Map[T, U any](r Result[T], transform func(T) U) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return Success(transform(r.value))
}

// FlatMap returns the Result of transform applied to the value of r, or r's
// failure unchanged.
func FlatMap[T, U any](r Result[T], transform func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return transform(r.value)
}
