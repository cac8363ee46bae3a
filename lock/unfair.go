package lock

import (
	"runtime"
	"sync/atomic"
)

// spinLimit is the number of failed compare-and-swap attempts after which a
// waiting goroutine yields its processor between attempts.
const spinLimit = 16

// UnfairLock is an exclusive spin lock built on a single atomic word.
//
// Waiters compete by compare-and-swap with no queue, so there is no fairness
// between them: a goroutine that keeps re-acquiring the lock can starve the
// others. It is meant for very short critical sections where the cost of an
// uncontended acquisition matters more than fairness.
//
// The zero-value UnfairLock is unlocked and ready to use.
type UnfairLock struct {
	state atomic.Int32
}

var _ Lock = (*UnfairLock)(nil)

func (l *UnfairLock) Lock() {
	for spins := 0; !l.state.CompareAndSwap(0, 1); spins++ {
		if spins >= spinLimit {
			runtime.Gosched()
		}
	}
}

func (l *UnfairLock) Unlock() {
	if l.state.Swap(0) == 0 {
		panic("lock: unlock of unlocked UnfairLock")
	}
}

// TryLock acquires the lock if it is free and reports whether it did.
func (l *UnfairLock) TryLock() bool {
	return l.state.CompareAndSwap(0, 1)
}

func (l *UnfairLock) Sync(f func()) {
	locked(l, f)
}
