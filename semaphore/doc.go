// Package semaphore provides a counting semaphore implemented as a buffered
// channel, where nil represents unlimited capacity.
//
// # Why This Package Exists
//
// The lock package needs two flavours of counting semaphore: a binary one, used
// as an exclusive lock, and an optional limit on how many shared tasks a queue
// lock runs at once. In the second case the absence of a limit must mean
// unlimited capacity rather than blocking forever.
//
// Raw buffered channels can serve as semaphores, but a nil channel blocks
// forever on both send and receive. This package inverts that behaviour: a nil
// Semaphore never blocks. Callers can then acquire and release unconditionally
// instead of checking for a configured limit at every call site.
//
// # When NOT to Use This Package
//
//   - Weighted semaphores (acquiring multiple tokens at once): use golang.org/x/sync/semaphore
//   - Context cancellation support: use raw buffered channels with select statements
//   - Strict FIFO ordering guarantees: use raw buffered channels without TryAcquire
//
// # Design Trade-offs
//
//   - No context support. No lock operation in this module can be cancelled.
//   - Channel "barging": TryAcquire may succeed even when others are blocked.
//   - One token per operation.
//   - The channel type is exposed, so len and cap work directly on it.
package semaphore
