package semaphore

import (
	"fmt"
)

// Semaphore is a counting semaphore implemented as a buffered channel, wherein
// the buffer size is the number of tokens that can be held at once.
//
// The nil Semaphore is the zero-value Semaphore. It represents unlimited
// capacity and never blocks.
//
// The built-in len and cap functions inspect the state:
//   - len(s) is the number of tokens currently held.
//   - cap(s) is the maximum number of tokens that can be held at once.
//
// For nil semaphores, both len and cap return 0.
type Semaphore chan struct{}

// New creates a semaphore with the given number of tokens. A negative limit
// returns the nil Semaphore, which never blocks.
//
// New(1) is a binary semaphore, usable as a non-reentrant lock.
func New(limit int) Semaphore {
	if limit < 0 {
		return nil
	}
	return make(Semaphore, limit)
}

// String reports "Semaphore(held/capacity)", or "Semaphore(unlimited)" for
// the nil Semaphore.
func (s Semaphore) String() string {
	if s == nil {
		return "Semaphore(unlimited)"
	}
	return fmt.Sprintf("Semaphore(%v/%v)", len(s), cap(s))
}

// Acquire blocks until a token is available and takes it. It returns
// immediately for the nil Semaphore.
//
//	s.Acquire()
//	defer s.Release()
func (s Semaphore) Acquire() {
	if s == nil {
		return
	}
	s <- struct{}{}
}

// Release returns a token taken by Acquire or a successful TryAcquire. It is a
// no-op for the nil Semaphore.
//
// Releasing a token that was never taken blocks forever, because there is
// nothing in the channel to receive.
func (s Semaphore) Release() {
	if s == nil {
		return
	}
	<-s
}

// TryAcquire takes a token if one is available without blocking, and reports
// whether it did. It always succeeds for the nil Semaphore.
//
// TryAcquire may succeed while other goroutines are blocked in Acquire.
func (s Semaphore) TryAcquire() bool {
	if s == nil {
		return true
	}
	select {
	case s <- struct{}{}:
		return true
	default:
		return false
	}
}

// Held reports whether at least one token is currently taken.
func (s Semaphore) Held() bool {
	return len(s) != 0
}
