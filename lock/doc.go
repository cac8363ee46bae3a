// Package lock provides a family of mutual-exclusion primitives behind a
// uniform "synchronized execution" contract.
//
// Every lock runs a function with exclusive access through [Lock.Sync]. Locks
// that also support shared access implement [ConcurrentLock], whose
// ConcurrentSync runs a function alongside other shared callers while still
// excluding exclusive ones. The two tiers are described by [Capability], and
// every variant is named by a [Kind]:
//
//   - [Mutex]: a [sync.Mutex]. Exclusive only.
//   - [Semaphore]: a counting semaphore with a single token. Exclusive only.
//   - [Unfair]: a compare-and-swap spin lock with no fairness between waiters.
//     Exclusive only.
//   - [ReadWrite]: a [sync.RWMutex]. Exclusive and shared.
//   - [Queue]: a task queue where exclusive calls are barrier tasks and shared
//     calls are normal tasks. Exclusive and shared.
//
// # Usage
//
// Go methods cannot be generic, so Sync and ConcurrentSync take a plain
// func(). The package-level [Sync] and [ConcurrentSync] helpers carry a result
// and an error out of the locked section:
//
//	n, err := lock.Sync(l, func() (int, error) {
//	    return counter.Next()
//	})
//
// # Failure Semantics
//
// The lock is released on every exit path of the protected function, including
// panics. Errors and panics reach the caller unchanged; no lock wraps or
// inspects them.
//
// None of the locks is reentrant. Calling Sync from inside Sync on the same
// lock deadlocks. There is no timeout or cancellation on any acquisition.
package lock
