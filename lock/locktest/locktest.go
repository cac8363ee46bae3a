// Package locktest provides utilities for testing lock implementations. It
// checks the properties every lock in the lock package promises, so that each
// variant, and any lock written outside the package, is tested the same way.
//
// # Example Usage
//
//	func TestMyLock(t *testing.T) {
//	    locktest.TestExclusive(t, new(MyLock))
//	    locktest.TestConcurrent(t, new(MyLock))
//	}
//
// The helpers never rely on sleeping for ordering. Wherever one goroutine must
// be known to be inside a locked section, it signals through a channel; sleeps
// are only used to give a wrongly admitted goroutine the chance to show up.
package locktest

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/notorious-go/bonbon/lock"
)

var (
	// Callers is the number of goroutines the helpers start against a lock.
	Callers = 32
	// Grace is how long the helpers wait for a goroutine that must stay
	// blocked to wrongly proceed.
	Grace = 20 * time.Millisecond
	// Timeout bounds every wait for a goroutine that must proceed.
	Timeout = 5 * time.Second
)

// TestExclusive verifies the exclusive tier of l:
//
//   - A Sync call requested while another one is in flight does not start
//     until the first one has finished.
//   - Concurrent Sync calls never overlap.
//   - A panic inside Sync releases the lock.
func TestExclusive(t *testing.T, l lock.Lock) {
	t.Helper()
	t.Run("Serializes", func(t *testing.T) { testSerializes(t, l) })
	t.Run("NoOverlap", func(t *testing.T) { testNoOverlap(t, l.Sync) })
	t.Run("ReleasesOnPanic", func(t *testing.T) { testReleasesOnPanic(t, l) })
}

// TestConcurrent verifies the shared tier of l:
//
//   - Concurrent ConcurrentSync calls all run at the same time.
//   - Sync does not start while a ConcurrentSync call is running.
//   - ConcurrentSync does not start while a Sync call is running.
//
// The shared calls must not be limited below Callers.
func TestConcurrent(t *testing.T, l lock.ConcurrentLock) {
	t.Helper()
	t.Run("ReadersOverlap", func(t *testing.T) { testReadersOverlap(t, l) })
	t.Run("WriterExcludesReaders", func(t *testing.T) { testExcludes(t, l.Sync, l.ConcurrentSync) })
	t.Run("ReaderExcludesWriter", func(t *testing.T) { testExcludes(t, l.ConcurrentSync, l.Sync) })
	t.Run("WritersDoNotOverlap", func(t *testing.T) { testNoOverlap(t, l.Sync) })
}

func testSerializes(t *testing.T, l lock.Lock) {
	var number int
	entered := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		l.Sync(func() {
			close(entered)
			time.Sleep(Grace)
			number++
		})
	}()

	<-entered
	l.Sync(func() {
		if number != 1 {
			t.Errorf("second Sync observed %d; it should wait for the first one to complete", number)
		}
	})
	<-done
}

func testNoOverlap(t *testing.T, sync func(func())) {
	var active, maxActive atomic.Int32
	var counter int

	var g errgroup.Group
	for range Callers {
		g.Go(func() error {
			sync(func() {
				n := active.Add(1)
				for {
					m := maxActive.Load()
					if n <= m || maxActive.CompareAndSwap(m, n) {
						break
					}
				}
				counter++
				active.Add(-1)
			})
			return nil
		})
	}
	_ = g.Wait()

	if got := maxActive.Load(); got != 1 {
		t.Errorf("%d exclusive sections overlapped", got)
	}
	if counter != Callers {
		t.Errorf("counter = %d, want %d", counter, Callers)
	}
}

var errPanicked = errors.New("locktest: panicked")

func testReleasesOnPanic(t *testing.T, l lock.Lock) {
	func() {
		defer func() {
			if r := recover(); r != errPanicked {
				t.Errorf("recovered %v, want %v", r, errPanicked)
			}
		}()
		l.Sync(func() { panic(errPanicked) })
	}()

	acquired := make(chan struct{})
	go l.Sync(func() { close(acquired) })
	select {
	case <-acquired:
	case <-time.After(Timeout):
		t.Fatal("lock was not released after a panic")
	}
}

func testReadersOverlap(t *testing.T, l lock.ConcurrentLock) {
	ctx, cancel := context.WithTimeout(t.Context(), Timeout)
	defer cancel()

	// Every reader waits inside its section until all readers are inside. If
	// the lock serialized them, the first reader would never see the rest.
	var arrived atomic.Int32
	allIn := make(chan struct{})

	g, ctx := errgroup.WithContext(ctx)
	for range Callers {
		g.Go(func() (err error) {
			l.ConcurrentSync(func() {
				if int(arrived.Add(1)) == Callers {
					close(allIn)
				}
				select {
				case <-allIn:
				case <-ctx.Done():
					err = fmt.Errorf("only %d of %d readers ran concurrently", arrived.Load(), Callers)
				}
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Error(err)
	}
}

// testExcludes holds the lock with first and verifies that second does not
// start until first releases it.
func testExcludes(t *testing.T, first, second func(func())) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var released atomic.Bool
	go first(func() {
		close(entered)
		<-release
		released.Store(true)
	})
	<-entered

	ran := make(chan bool)
	go second(func() { ran <- released.Load() })

	select {
	case <-ran:
		t.Fatal("second section started while the first one held the lock")
	case <-time.After(Grace):
	}

	close(release)
	select {
	case afterRelease := <-ran:
		if !afterRelease {
			t.Error("second section started before the first one finished")
		}
	case <-time.After(Timeout):
		t.Fatal("second section did not start after the first one released the lock")
	}
}
