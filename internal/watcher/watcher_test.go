package watcher

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "deleted", EventDeleted.String())
	assert.Equal(t, "created", EventCreated.String())
	assert.Equal(t, "unknown", EventType(9).String())
}

func TestWatcherReportsDeletion(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("event latency on this platform makes the test flaky")
	}

	root := t.TempDir()
	target := filepath.Join(root, "victim.rs")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0644))

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Watch(root, []string{target}))
	w.Start()
	defer w.Stop()

	require.NoError(t, os.Remove(target))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-w.Events():
			if ev.Type == EventDeleted && ev.Path == target {
				return
			}
		case <-deadline:
			t.Fatal("no deletion event received")
		}
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	w.Start()

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())

	_, open := <-w.Events()
	assert.False(t, open)
}
