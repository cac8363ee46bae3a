// Package synchronized provides Synchronized, a mutable cell whose value is
// only read or written while holding a lock from the lock package.
//
// Each public method is a single critical section, and composing them is not:
//
//	n := synchronized.New(0)
//	n.Set(n.Value() + 1) // NOT atomic
//
// Value and Set each take the lock, but another goroutine may update the cell
// in the gap between them, and that update is then overwritten. Updates that
// depend on the current value must go through AtomicallyUpdate:
//
//	n.AtomicallyUpdate(func(v *int) error {
//	    *v++
//	    return nil
//	})
//
// Only the cell itself is protected. If T holds pointers, maps or slices, a
// copy returned by Value still shares them with the cell, and mutating through
// it is not synchronized. Prefer wrapping types with value semantics.
package synchronized

import (
	"fmt"
	"sync"

	"github.com/notorious-go/bonbon/lock"
)

// Synchronized is a cell holding a value of type T that is only accessed under
// a lock chosen at construction.
//
// The zero-value Synchronized holds the zero value of T, is guarded by a
// [lock.ReadWrite] lock and is ready to use. A Synchronized must not be copied
// after first use.
type Synchronized[T any] struct {
	// Makes the zero-value Synchronized ready to use.
	initOnce sync.Once
	kind     lock.Kind
	lock     lock.Lock
	// read runs a function with the weakest access that still excludes writers:
	// shared access if the lock supports it, exclusive access otherwise.
	read  func(func())
	value T
}

type options struct {
	kind lock.Kind
}

// Option configures a Synchronized.
type Option func(*options)

// WithConcurrentReads sets whether Value calls may run alongside each other.
// Allowing them selects a [lock.ReadWrite] lock, disallowing them a
// [lock.Mutex]. Concurrent reads are allowed by default.
func WithConcurrentReads(allow bool) Option {
	return func(o *options) {
		if allow {
			o.kind = lock.ReadWrite
		} else {
			o.kind = lock.Mutex
		}
	}
}

// WithLock selects the kind of lock guarding the value.
func WithLock(kind lock.Kind) Option {
	return func(o *options) {
		o.kind = kind
	}
}

// New returns a Synchronized holding value.
func New[T any](value T, opts ...Option) *Synchronized[T] {
	o := options{kind: lock.ReadWrite}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Synchronized[T]{value: value}
	s.initOnce.Do(func() { s.setLock(o.kind) })
	return s
}

// init gives a zero-value Synchronized the default lock.
func (s *Synchronized[T]) init() {
	s.initOnce.Do(func() { s.setLock(lock.ReadWrite) })
}

func (s *Synchronized[T]) setLock(kind lock.Kind) {
	s.kind = kind
	switch kind.Capability() {
	case lock.ExclusiveShared:
		l := lock.NewConcurrent(kind)
		s.lock, s.read = l, l.ConcurrentSync
	default:
		l := lock.New(kind)
		s.lock, s.read = l, l.Sync
	}
}

// Kind reports the kind of lock guarding the value.
func (s *Synchronized[T]) Kind() lock.Kind {
	s.init()
	return s.kind
}

// Value returns a copy of the current value.
func (s *Synchronized[T]) Value() (value T) {
	s.init()
	s.read(func() {
		value = s.value
	})
	return value
}

// Set replaces the current value.
func (s *Synchronized[T]) Set(value T) {
	s.init()
	s.lock.Sync(func() {
		s.value = value
	})
}

// AtomicallyUpdate calls update with exclusive access to the value. It is the
// only way to change the value based on its previous state without another
// update interleaving.
//
// The pointer passed to update is valid only until update returns and must not
// be retained. The error returned by update, or its panic, reaches the caller
// after the lock has been released. Changes made before update failed are
// kept.
func (s *Synchronized[T]) AtomicallyUpdate(update func(value *T) error) (err error) {
	s.init()
	s.lock.Sync(func() {
		err = update(&s.value)
	})
	return err
}

func (s *Synchronized[T]) String() string {
	return fmt.Sprintf("Synchronized[%v](%v)", s.Kind(), s.Value())
}

// Map returns a new Synchronized holding transform applied to the current
// value of s, guarded by a lock of the same kind.
//
// The value is read under s's lock; transform runs after the lock is released.
// The result shares no state with s, so later changes to s do not affect it.
func Map[T, U any](s *Synchronized[T], transform func(T) U) *Synchronized[U] {
	return New(transform(s.Value()), WithLock(s.Kind()))
}

// FlatMap returns a new Synchronized holding the value of the Synchronized
// that transform returns for the current value of s. The result is guarded by
// a lock of the same kind as s.
func FlatMap[T, U any](s *Synchronized[T], transform func(T) *Synchronized[U]) *Synchronized[U] {
	return Map(s, func(v T) U {
		return transform(v).Value()
	})
}
