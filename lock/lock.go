package lock

import (
	"fmt"
	"sync"
)

// Lock is the exclusive tier of the lock family.
type Lock interface {
	// Sync runs f while holding exclusive access. Only one Sync call on the same
	// lock executes at a time, and no ConcurrentSync call runs alongside it.
	//
	// The lock is released when f returns or panics.
	Sync(f func())
}

// ConcurrentLock is the exclusive and shared tier of the lock family.
type ConcurrentLock interface {
	Lock

	// ConcurrentSync runs f while holding shared access. Any number of
	// ConcurrentSync calls may run at the same time, but none of them runs
	// alongside a Sync call.
	ConcurrentSync(f func())
}

// Capability names the access modes a lock supports.
type Capability int

const (
	// Exclusive locks implement only [Lock].
	Exclusive Capability = iota
	// ExclusiveShared locks implement [ConcurrentLock].
	ExclusiveShared
)

func (c Capability) String() string {
	switch c {
	case Exclusive:
		return "exclusive"
	case ExclusiveShared:
		return "exclusive+shared"
	default:
		return fmt.Sprintf("Capability(%d)", int(c))
	}
}

// Kind names a lock implementation.
type Kind int

const (
	Mutex     Kind = iota // MutexLock
	Semaphore             // SemaphoreLock
	Unfair                // UnfairLock
	ReadWrite             // ReadWriteLock
	Queue                 // QueueLock
)

// Kinds lists every lock implementation.
var Kinds = []Kind{Mutex, Semaphore, Unfair, ReadWrite, Queue}

func (k Kind) String() string {
	switch k {
	case Mutex:
		return "mutex"
	case Semaphore:
		return "semaphore"
	case Unfair:
		return "unfair"
	case ReadWrite:
		return "read-write"
	case Queue:
		return "queue"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Capability reports the access modes supported by locks of this kind.
func (k Kind) Capability() Capability {
	switch k {
	case ReadWrite, Queue:
		return ExclusiveShared
	default:
		return Exclusive
	}
}

// New returns a new lock of the given kind. It panics if the kind is unknown.
func New(k Kind) Lock {
	switch k {
	case Mutex:
		return new(MutexLock)
	case Semaphore:
		return new(SemaphoreLock)
	case Unfair:
		return new(UnfairLock)
	case ReadWrite, Queue:
		return NewConcurrent(k)
	default:
		panic(fmt.Errorf("lock: unknown kind %v", k))
	}
}

// NewConcurrent returns a new lock of the given kind with shared access. It
// panics if locks of that kind only support exclusive access.
func NewConcurrent(k Kind) ConcurrentLock {
	switch k {
	case ReadWrite:
		return new(ReadWriteLock)
	case Queue:
		return new(QueueLock)
	default:
		panic(fmt.Errorf("lock: %v lock does not support %v access", k, ExclusiveShared))
	}
}

// Sync runs op with exclusive access to l and returns its result.
func Sync[R any](l Lock, op func() (R, error)) (result R, err error) {
	l.Sync(func() {
		result, err = op()
	})
	return result, err
}

// ConcurrentSync runs op with shared access to l and returns its result.
func ConcurrentSync[R any](l ConcurrentLock, op func() (R, error)) (result R, err error) {
	l.ConcurrentSync(func() {
		result, err = op()
	})
	return result, err
}

// Read runs f with shared access if l is a [ConcurrentLock], and with
// exclusive access otherwise.
//
// Read decides by a type assertion on every call. Code that owns its lock
// should instead pick the access once, from [Kind.Capability], when the lock
// is created.
func Read(l Lock, f func()) {
	if cl, ok := l.(ConcurrentLock); ok {
		cl.ConcurrentSync(f)
		return
	}
	l.Sync(f)
}

// locked runs f between l.Lock and l.Unlock. It is the Sync of every lock that
// exposes explicit acquire and release calls.
func locked(l sync.Locker, f func()) {
	l.Lock()
	defer l.Unlock()
	f()
}
