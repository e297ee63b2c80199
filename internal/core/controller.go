package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lumipallolabs/disksearch/internal/history"
	"github.com/lumipallolabs/disksearch/internal/logging"
	"github.com/lumipallolabs/disksearch/internal/model"
	"github.com/lumipallolabs/disksearch/internal/scanner"
	"github.com/lumipallolabs/disksearch/internal/search"
	"github.com/lumipallolabs/disksearch/internal/stats"
	"github.com/lumipallolabs/disksearch/internal/watcher"
)

var (
	// ErrSearchRunning is returned when a search is started while another is in flight
	ErrSearchRunning = errors.New("search already running")

	// ErrInvalidRoot is returned when the root is missing or not a directory.
	// The engines themselves treat such a root as empty.
	ErrInvalidRoot = errors.New("invalid search root")
)

// eventBuffer sizes the per-search and per-watch event channels
const eventBuffer = 100

// Options configures a Controller
type Options struct {
	Request search.Request
	Engine  string

	// Sort orders matches by path; otherwise they keep discovery order
	Sort bool

	// History is consulted for the previous run and receives the new one; nil disables it
	History *history.Store
	// Keep is passed to History.Prune after each save
	Keep int

	// Stats is updated after each successful search; nil disables it
	Stats *stats.Manager
}

// Result is the outcome of one search
type Result struct {
	Matches  []*model.Match
	Elapsed  time.Duration
	Diff     history.Diff
	HasDiff  bool   // a previous run for the same root and pattern existed
	RecordID string // empty when history is disabled
}

// Paths returns the matched paths in result order
func (r *Result) Paths() []string {
	return model.Paths(r.Matches)
}

// Controller manages a search session without UI dependencies
type Controller struct {
	mu sync.RWMutex

	opts    Options
	state   SessionState
	matches []*model.Match

	scanner scanner.Scanner
	watcher *watcher.Watcher
}

// NewController creates a controller for opts
func NewController(opts Options) (*Controller, error) {
	sc, err := scanner.New(opts.Engine)
	if err != nil {
		return nil, err
	}
	return &Controller{
		opts:    opts,
		scanner: sc,
		state: SessionState{
			Root:    opts.Request.Root,
			Pattern: opts.Request.Pattern,
		},
	}, nil
}

// State returns a snapshot of the session with live progress
func (c *Controller) State() SessionState {
	c.mu.RLock()
	s := c.state
	c.mu.RUnlock()

	if s.Phase == PhaseSearching {
		s.Progress = c.scanner.Progress()
	}
	return s
}

// Progress returns the counters of the search in flight (or the last one)
func (c *Controller) Progress() search.Progress {
	return c.scanner.Progress()
}

// Matches returns a copy of the last completed search's matches,
// including deletions seen by the watcher since
func (c *Controller) Matches() []*model.Match {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneMatches(c.matches)
}

// cloneMatches copies matches so the watcher never writes to a slice the caller holds
func cloneMatches(matches []*model.Match) []*model.Match {
	out := make([]*model.Match, len(matches))
	for i, m := range matches {
		cp := *m
		out[i] = &cp
	}
	return out
}

// Search runs the search synchronously
func (c *Controller) Search() (*Result, error) {
	c.mu.Lock()
	if c.state.Phase == PhaseSearching {
		c.mu.Unlock()
		return nil, ErrSearchRunning
	}
	req := c.opts.Request
	if err := checkRoot(req.Root); err != nil {
		c.state.Err = err
		c.mu.Unlock()
		return nil, err
	}
	start := time.Now()
	c.state.Phase = PhaseSearching
	c.state.StartTime = start
	c.state.Err = nil
	c.mu.Unlock()

	logging.Debug.Printf("[Controller] Starting search for %q in %s", req.Pattern, req.Root)

	paths, err := c.scanner.Search(req)
	elapsed := time.Since(start)
	progress := c.scanner.Progress()

	if err != nil {
		c.mu.Lock()
		c.state.Phase = PhaseIdle
		c.state.Err = err
		c.state.Progress = progress
		c.mu.Unlock()
		return nil, fmt.Errorf("search %s: %w", req.Root, err)
	}

	matches := model.NewMatches(paths)
	if c.opts.Sort {
		model.SortByPath(matches)
	}
	result := &Result{Matches: matches, Elapsed: elapsed}

	c.record(result)

	c.mu.Lock()
	c.matches = cloneMatches(matches)
	c.state.Phase = PhaseComplete
	c.state.Duration = elapsed
	c.state.Progress = progress
	c.mu.Unlock()

	logging.Debug.Printf("[Controller] Search complete: %d matches in %s", len(matches), elapsed)
	return result, nil
}

func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
	}
	return nil
}

// record diffs against and saves to history, then updates stats.
// Persistence failures are logged and never fail the search.
func (c *Controller) record(result *Result) {
	req := c.opts.Request
	paths := result.Paths()

	absRoot := req.Root
	if abs, err := filepath.Abs(req.Root); err == nil {
		absRoot = abs
	}

	if store := c.opts.History; store != nil {
		prev, err := store.LoadLatest(absRoot, req.Pattern)
		switch {
		case err == nil:
			result.Diff = history.Compare(paths, prev)
			result.HasDiff = true
		case !errors.Is(err, history.ErrNoHistory):
			logging.Debug.Printf("[Controller] Failed to load history: %v", err)
		}

		rec := &history.Record{
			Root:    req.Root,
			AbsRoot: absRoot,
			Pattern: req.Pattern,
			Engine:  c.opts.Engine,
			Workers: req.Workers,
			Matches: paths,
			Elapsed: result.Elapsed,
		}
		if err := store.Save(rec); err != nil {
			logging.Debug.Printf("[Controller] Failed to save history: %v", err)
		} else {
			result.RecordID = rec.ID
			if _, err := store.Prune(c.opts.Keep); err != nil {
				logging.Debug.Printf("[Controller] Failed to prune history: %v", err)
			}
		}
	}

	if c.opts.Stats != nil {
		c.opts.Stats.RecordSearch(absRoot, len(paths))
	}
}

// StartSearch runs the search in a goroutine. The returned channel carries
// SearchStartedEvent then SearchCompletedEvent (and ErrorEvent on failure)
// and is closed afterwards.
func (c *Controller) StartSearch() <-chan Event {
	eventCh := make(chan Event, eventBuffer)
	go func() {
		defer close(eventCh)

		eventCh <- SearchStartedEvent{Root: c.opts.Request.Root, Pattern: c.opts.Request.Pattern}

		result, err := c.Search()
		eventCh <- SearchCompletedEvent{Result: result, Err: err}
		if err != nil {
			eventCh <- ErrorEvent{Err: err}
		}
	}()
	return eventCh
}

// StartWatching starts the filesystem watcher for the last search's matches
func (c *Controller) StartWatching() (<-chan Event, error) {
	c.mu.Lock()
	if c.state.Phase != PhaseComplete {
		c.mu.Unlock()
		return nil, nil
	}

	if c.watcher != nil {
		_ = c.watcher.Stop()
		c.watcher = nil
	}

	w, err := watcher.New()
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.watcher = w
	root := c.opts.Request.Root
	paths := model.Paths(c.matches)
	c.mu.Unlock()

	if err := w.Watch(root, paths); err != nil {
		logging.Debug.Printf("Failed to add watch: %v", err)
	}
	w.Start()
	logging.Debug.Printf("Filesystem watcher started for %s", root)

	eventCh := make(chan Event, eventBuffer)
	go c.watchLoop(w, eventCh)
	return eventCh, nil
}

// watchLoop processes filesystem events
func (c *Controller) watchLoop(w *watcher.Watcher, eventCh chan Event) {
	defer close(eventCh)

	matcher := search.NewMatcher(c.opts.Request.Pattern)
	for event := range w.Events() {
		switch event.Type {
		case watcher.EventDeleted:
			c.handleDeletion(event.Path, eventCh)
		case watcher.EventCreated:
			if matcher.Match(filepath.Base(event.Path)) {
				eventCh <- MatchCreatedEvent{Path: event.Path}
			}
		}
	}
}

// handleDeletion flags matches at or below path
func (c *Controller) handleDeletion(path string, eventCh chan Event) {
	c.mu.Lock()
	n := model.MarkDeleted(c.matches, path)
	c.mu.Unlock()

	if n == 0 {
		logging.Debug.Printf("Watcher: DELETE event for path not in results: %s", path)
		return
	}
	logging.Debug.Printf("Watcher: MARKED DELETED: %s (%d matches)", path, n)
	eventCh <- MatchDeletedEvent{Path: path, Count: n}
}

// Stop cleans up resources
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.watcher != nil {
		_ = c.watcher.Stop()
		c.watcher = nil
	}
	if c.opts.Stats != nil {
		_ = c.opts.Stats.Close()
	}
}
