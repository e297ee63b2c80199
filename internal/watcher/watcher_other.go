//go:build !darwin && !windows

package watcher

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// maxWatchedDirs keeps us well below the default inotify watch limit
const maxWatchedDirs = 4096

// Watcher watches the directories that hold matches using fsnotify.
// inotify is not recursive, so only those directories are covered.
type Watcher struct {
	fs      *fsnotify.Watcher
	eventCh chan Event
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// New creates a new filesystem watcher
func New() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fs:      fsw,
		eventCh: make(chan Event, eventBuffer),
		done:    make(chan struct{}),
	}, nil
}

// Events returns the channel for receiving filesystem events
func (w *Watcher) Events() <-chan Event {
	return w.eventCh
}

// Watch adds the search root and the parent directory of every match.
// Directories that cannot be watched are skipped; the
// first such error is returned after all others were tried.
func (w *Watcher) Watch(root string, matches []string) error {
	dirs := make(map[string]bool)
	dirs[filepath.Clean(root)] = true
	for _, m := range matches {
		dirs[filepath.Dir(m)] = true
	}

	var firstErr error
	added := 0
	for dir := range dirs {
		if added >= maxWatchedDirs {
			return errors.Join(firstErr, errors.New("too many directories to watch"))
		}
		if err := w.fs.Add(dir); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		added++
	}
	return firstErr
}

// Start begins forwarding events
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.run()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.send(Event{Type: EventDeleted, Path: event.Name})
	case event.Has(fsnotify.Create):
		w.send(Event{Type: EventCreated, Path: event.Name})
	}
}

func (w *Watcher) send(e Event) {
	select {
	case w.eventCh <- e:
	default:
	}
}

// Stop stops the watcher and closes the event channel
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	close(w.eventCh)
	return err
}
