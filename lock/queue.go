package lock

import (
	"fmt"
	"sync"

	"github.com/notorious-go/bonbon/semaphore"
)

// QueueLock is a lock expressed as a concurrent task queue. Every call is a
// task submitted to the queue and run on the calling goroutine once the queue
// schedules it:
//
//   - ConcurrentSync submits a normal task. Normal tasks run alongside each
//     other.
//   - Sync submits a barrier task. A barrier starts only after every task
//     submitted before it has finished, and no task submitted after it starts
//     until the barrier has finished.
//
// This gives the same guarantees as [ReadWriteLock], with a strict submission
// order between barriers and the tasks around them: a reader that arrives
// after a waiting writer always runs after that writer.
//
// The zero-value QueueLock has no limit on concurrently running normal tasks
// and is ready to use.
type QueueLock struct {
	mu sync.Mutex
	// current is the epoch accepting normal tasks: the span of the queue after
	// the most recently submitted barrier.
	current *epoch
	// sem bounds the number of normal tasks running at once.
	sem semaphore.Semaphore
	// pending counts normal tasks submitted but not finished, whether running
	// or still queued behind a barrier. Each holds the sem it was submitted
	// with.
	pending int
}

var _ ConcurrentLock = (*QueueLock)(nil)

// An epoch is the run of normal tasks submitted between two barriers.
type epoch struct {
	// opened is closed when the barrier that started this epoch has finished,
	// allowing the epoch's normal tasks to run.
	opened <-chan struct{}
	// tasks counts the normal tasks submitted during this epoch that have not
	// finished yet. The next barrier waits for it to drain.
	tasks sync.WaitGroup
}

// init ensures that the queue is ready to use. The first epoch has no barrier
// before it, so it starts open.
func (q *QueueLock) init() {
	if q.current == nil {
		opened := make(chan struct{})
		close(opened)
		q.current = &epoch{opened: opened}
	}
}

// Sync runs f as a barrier task.
func (q *QueueLock) Sync(f func()) {
	q.mu.Lock()
	q.init()
	prev := q.current
	finished := make(chan struct{})
	q.current = &epoch{opened: finished}
	q.mu.Unlock()

	// No task joins prev after it stops being current, so waiting on its tasks
	// cannot race with a new registration.
	<-prev.opened
	prev.tasks.Wait()

	defer close(finished)
	f()
}

// ConcurrentSync runs f as a normal task.
func (q *QueueLock) ConcurrentSync(f func()) {
	q.mu.Lock()
	q.init()
	e := q.current
	e.tasks.Add(1)
	sem := q.sem
	q.pending++
	q.mu.Unlock()
	defer e.tasks.Done()
	defer q.finish()

	<-e.opened
	sem.Acquire()
	defer sem.Release()
	f()
}

func (q *QueueLock) finish() {
	q.mu.Lock()
	q.pending--
	q.mu.Unlock()
}

// SetLimit limits the number of normal tasks running at once to at most n. A
// negative value indicates no limit. A zero value blocks every further
// ConcurrentSync call.
//
// The limit must not be modified while any normal task is running or queued
// behind a barrier; SetLimit panics if one is.
func (q *QueueLock) SetLimit(n int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pending != 0 {
		panic(fmt.Errorf("lock: modify queue limit while %v tasks are still pending", q.pending))
	}
	q.sem = semaphore.New(n)
}
