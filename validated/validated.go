// Package validated provides Validated, a wrapper that guarantees its value
// always passes a validator, including after every change.
//
// If the value holds references, changes made through them bypass the
// validator.
package validated

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// ErrValueIsNotValid is available to validators that have nothing more
// specific to report.
var ErrValueIsNotValid = errors.New("validated: value is not valid")

// Validator reports why value is not valid, or nil if it is.
type Validator[T any] func(value T) error

// ValidationError is returned when a value fails validation. It holds the
// rejected value and the validator's error.
type ValidationError[T any] struct {
	InvalidValue T
	Err          error
}

func (e *ValidationError[T]) Error() string {
	return fmt.Sprintf("validated: invalid value %v: %v", e.InvalidValue, e.Err)
}

func (e *ValidationError[T]) Unwrap() error { return e.Err }

// Cause returns the validator's error, for use with errors.Cause.
func (e *ValidationError[T]) Cause() error { return e.Err }

// Validated holds a value that passed its validator.
type Validated[T any] struct {
	value     T
	validator Validator[T]
}

// New returns a Validated holding value, or a *ValidationError if value does
// not pass validator. The validator also checks every later Set.
func New[T any](value T, validator Validator[T]) (*Validated[T], error) {
	if err := validate(value, validator); err != nil {
		return nil, err
	}
	return &Validated[T]{value: value, validator: validator}, nil
}

// Value returns the current value.
func (v *Validated[T]) Value() T {
	return v.value
}

// Set replaces the value if the new one passes validation. Otherwise it returns
// a *ValidationError and keeps the current value.
func (v *Validated[T]) Set(value T) error {
	if err := validate(value, v.validator); err != nil {
		return err
	}
	v.value = value
	return nil
}

func validate[T any](value T, validator Validator[T]) error {
	if err := validator(value); err != nil {
		return &ValidationError[T]{InvalidValue: value, Err: err}
	}
	return nil
}

// All returns a validator that runs every given validator and reports all of
// their failures together. A value is valid only if it passes all of them.
func All[T any](validators ...Validator[T]) Validator[T] {
	return func(value T) error {
		var result *multierror.Error
		for _, validator := range validators {
			if err := validator(value); err != nil {
				result = multierror.Append(result, err)
			}
		}
		return result.ErrorOrNil()
	}
}

// Check returns a validator that fails with ErrValueIsNotValid, annotated with
// message, whenever valid returns false.
func Check[T any](valid func(T) bool, message string) Validator[T] {
	return func(value T) error {
		if !valid(value) {
			return errors.Wrap(ErrValueIsNotValid, message)
		}
		return nil
	}
}
