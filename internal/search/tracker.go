package search

import (
	"sync"
	"sync/atomic"
)

// tracker decides when a search is finished.
//
// pending counts directories that were pushed but whose scan has not
// completed. Children are added before their parent is finished, so pending
// only reaches zero once the frontier is empty and no scan is in flight.
// Idle workers block in wait until new work is signalled or done closes.
type tracker struct {
	pending atomic.Int64
	wake    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// newTracker starts with one pending directory: the root.
func newTracker(workers int) *tracker {
	t := &tracker{
		wake: make(chan struct{}, max(workers, 1)),
		done: make(chan struct{}),
	}
	t.pending.Store(1)
	return t
}

func (t *tracker) add(n int) {
	t.pending.Add(int64(n))
}

// finish marks n directories as scanned and closes done when none remain.
func (t *tracker) finish(n int) {
	if t.pending.Add(-int64(n)) == 0 {
		t.stop()
	}
}

// signal wakes up to n idle workers. Tokens stay buffered, so a worker that
// has not reached wait yet still sees them. A full buffer already wakes everyone.
func (t *tracker) signal(n int) {
	for range n {
		select {
		case t.wake <- struct{}{}:
		default:
			return
		}
	}
}

// wait blocks until there may be new work (true) or the search is over (false).
func (t *tracker) wait() bool {
	select {
	case <-t.done:
		return false
	case <-t.wake:
		return true
	}
}

func (t *tracker) finished() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// abort ends the search regardless of pending work.
func (t *tracker) abort() {
	t.stop()
}

func (t *tracker) stop() {
	t.once.Do(func() { close(t.done) })
}
