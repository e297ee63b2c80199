package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackerFinishesAtZero(t *testing.T) {
	tr := newTracker(2)
	assert.False(t, tr.finished())

	tr.add(3)
	tr.finish(1)
	assert.False(t, tr.finished())

	tr.finish(3)
	assert.True(t, tr.finished())
	assert.False(t, tr.wait())
}

func TestTrackerWaitWakesOnSignal(t *testing.T) {
	tr := newTracker(1)

	woke := make(chan bool, 1)
	go func() { woke <- tr.wait() }()

	tr.signal(1)
	select {
	case ok := <-woke:
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("wait did not return after signal")
	}
}

func TestTrackerSignalBeforeWait(t *testing.T) {
	tr := newTracker(2)
	tr.signal(5) // buffer holds 2, the rest is dropped

	assert.True(t, tr.wait())
	assert.True(t, tr.wait())
	assert.Len(t, tr.wake, 0)
}

func TestTrackerAbortReleasesWaiters(t *testing.T) {
	tr := newTracker(3)

	results := make(chan bool, 3)
	for range 3 {
		go func() { results <- tr.wait() }()
	}
	tr.abort()
	tr.abort()

	for range 3 {
		select {
		case ok := <-results:
			assert.False(t, ok)
		case <-time.After(5 * time.Second):
			t.Fatal("waiter not released by abort")
		}
	}
}
