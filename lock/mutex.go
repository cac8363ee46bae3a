package lock

import (
	"sync"

	"github.com/notorious-go/bonbon/semaphore"
)

// MutexLock is an exclusive lock backed by a [sync.Mutex]. Waiters block until
// the holder releases it.
//
// The zero-value MutexLock is unlocked and ready to use.
type MutexLock struct {
	mu sync.Mutex
}

var _ Lock = (*MutexLock)(nil)

func (l *MutexLock) Lock()   { l.mu.Lock() }
func (l *MutexLock) Unlock() { l.mu.Unlock() }

func (l *MutexLock) Sync(f func()) {
	locked(l, f)
}

// SemaphoreLock is an exclusive lock backed by a semaphore holding a single
// token.
//
// Unlike [MutexLock], a SemaphoreLock is not tied to the goroutine that
// acquired it, so Unlock may be called from another goroutine than Lock.
//
// The zero-value SemaphoreLock is unlocked and ready to use.
type SemaphoreLock struct {
	// Makes the zero-value SemaphoreLock ready to use. The nil Semaphore never
	// blocks, so the token must be created before the first acquisition.
	initOnce sync.Once
	sem      semaphore.Semaphore
}

var _ Lock = (*SemaphoreLock)(nil)

func (l *SemaphoreLock) token() semaphore.Semaphore {
	l.initOnce.Do(func() {
		l.sem = semaphore.New(1)
	})
	return l.sem
}

func (l *SemaphoreLock) Lock()   { l.token().Acquire() }
func (l *SemaphoreLock) Unlock() { l.token().Release() }

// TryLock acquires the lock if it is free and reports whether it did.
func (l *SemaphoreLock) TryLock() bool {
	return l.token().TryAcquire()
}

func (l *SemaphoreLock) Sync(f func()) {
	locked(l, f)
}

// ReadWriteLock is a reader/writer lock backed by a [sync.RWMutex].
//
// Sync waits until no reader and no writer holds the lock. ConcurrentSync waits
// only while a writer holds the lock, or while a writer is waiting for it: once
// Sync is blocked, new ConcurrentSync calls queue behind it. A steady stream
// of overlapping readers can still delay a writer for as long as it lasts.
//
// The zero-value ReadWriteLock is unlocked and ready to use.
type ReadWriteLock struct {
	mu sync.RWMutex
}

var _ ConcurrentLock = (*ReadWriteLock)(nil)

func (l *ReadWriteLock) Lock()    { l.mu.Lock() }
func (l *ReadWriteLock) Unlock()  { l.mu.Unlock() }
func (l *ReadWriteLock) RLock()   { l.mu.RLock() }
func (l *ReadWriteLock) RUnlock() { l.mu.RUnlock() }

func (l *ReadWriteLock) Sync(f func()) {
	locked(l, f)
}

func (l *ReadWriteLock) ConcurrentSync(f func()) {
	locked(l.mu.RLocker(), f)
}
