// Package box provides reference wrappers around values: Immutable, which never
// changes after construction, and Mutable, which can be reassigned.
//
// Boxes are not synchronized. Use the synchronized package to share a mutable
// value between goroutines.
package box

// Box is implemented by every box type.
type Box[T any] interface {
	// Value returns the wrapped value.
	Value() T
}

// Immutable is a box that keeps the value it was created with.
type Immutable[T any] struct {
	value T
}

// NewImmutable returns a box wrapping value.
func NewImmutable[T any](value T) *Immutable[T] {
	return &Immutable[T]{value: value}
}

func (b *Immutable[T]) Value() T { return b.value }

// Mutable is a box whose value can be replaced.
type Mutable[T any] struct {
	value T
}

// NewMutable returns a box initially wrapping value.
func NewMutable[T any](value T) *Mutable[T] {
	return &Mutable[T]{value: value}
}

func (b *Mutable[T]) Value() T { return b.value }

// Set replaces the wrapped value.
func (b *Mutable[T]) Set(value T) { b.value = value }

// Copy returns a new immutable box wrapping the current value of b. It is the
// way to hand out a Mutable that should not change anymore.
func Copy[T any](b Box[T]) *Immutable[T] {
	return NewImmutable(b.Value())
}

// MutableCopy returns a new mutable box wrapping the current value of b.
func MutableCopy[T any](b Box[T]) *Mutable[T] {
	return NewMutable(b.Value())
}

// Map returns a new immutable box wrapping transform applied to the value of b.
func Map[T, U any](b Box[T], transform func(T) U) *Immutable[U] {
	return NewImmutable(transform(b.Value()))
}

// FlatMap returns a new immutable box wrapping the value of the box that
// transform returns for the value of b.
func FlatMap[T, U any](b Box[T], transform func(T) Box[U]) *Immutable[U] {
	return Map(b, func(v T) U {
		return transform(v).Value()
	})
}

// Equal reports whether a and b wrap equal values, regardless of the kind of
// box. Use == on the pointers to check whether they are the same box.
func Equal[T comparable](a, b Box[T]) bool {
	return a.Value() == b.Value()
}
