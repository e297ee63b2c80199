package search

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/lumipallolabs/disksearch/internal/logging"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ErrWorkerPanic is returned when a worker crashes. No partial results are
// returned in that case.
var ErrWorkerPanic = errors.New("search worker panicked")

// Pool runs one search with a fixed number of workers sharing a Frontier.
// A Pool is single use: call Run once.
type Pool struct {
	req      Request
	matcher  Matcher
	frontier *Frontier
	tracker  *tracker
	states   []atomic.Int32

	rootDev    uint64
	rootDevOK  bool
	readDir    func(string) ([]os.DirEntry, error)
	skipLogger rate.Sometimes

	dirsScanned atomic.Int64
	entriesSeen atomic.Int64
	matches     atomic.Int64
}

// NewPool prepares a search. Every worker slot starts as Scanning so the pool
// never looks finished before a worker has run.
func NewPool(req Request) *Pool {
	req = req.normalize()
	p := &Pool{
		req:        req,
		matcher:    NewMatcher(req.Pattern),
		frontier:   NewFrontier(req.Root),
		tracker:    newTracker(req.Workers),
		states:     make([]atomic.Int32, req.Workers),
		readDir:    os.ReadDir,
		skipLogger: rate.Sometimes{First: 10, Interval: time.Second},
	}
	if req.OneFilesystem {
		p.rootDev, p.rootDevOK = DeviceOf(req.Root)
	}
	return p
}

// Search runs req to completion and returns the matched paths in arrival order.
func Search(req Request) ([]string, error) {
	return NewPool(req).Run()
}

// Run spawns the workers, waits for all of them and returns the matches.
// Unreadable directories, including the root, are skipped silently; the only
// error is a crashed worker.
func (p *Pool) Run() ([]string, error) {
	start := time.Now()
	logging.Debug.Printf("[search] root=%q pattern=%q workers=%d", p.req.Root, p.req.Pattern, p.req.Workers)

	results := newSink()

	var g errgroup.Group
	for id := range p.req.Workers {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					p.tracker.abort()
					err = fmt.Errorf("%w: worker %d: %v", ErrWorkerPanic, id, r)
				}
			}()
			p.work(id, results)
			return nil
		})
	}

	err := g.Wait()
	matches := results.close()
	if err != nil {
		logging.Debug.Printf("[search] failed after %v: %v", time.Since(start), err)
		return nil, err
	}

	logging.Debug.Printf("[search] found %d in %d dirs after %v", len(matches), p.dirsScanned.Load(), time.Since(start))
	return matches, nil
}

// Progress returns the current counters. Safe to call while Run is active.
func (p *Pool) Progress() Progress {
	return Progress{
		DirsScanned: p.dirsScanned.Load(),
		EntriesSeen: p.entriesSeen.Load(),
		Matches:     p.matches.Load(),
	}
}

// WorkerStates returns a snapshot of every worker's state.
func (p *Pool) WorkerStates() []WorkerState {
	out := make([]WorkerState, len(p.states))
	for i := range p.states {
		out[i] = WorkerState(p.states[i].Load())
	}
	return out
}

func (p *Pool) setState(id int, s WorkerState) {
	p.states[id].Store(int32(s))
}

// work is one worker's loop. Each tick pops a batch, scans it and pushes the
// discovered subdirectories back in one call.
func (p *Pool) work(id int, results *sink) {
	logging.Scanner.Printf("[%d]: spawned", id)
	defer func() {
		p.setState(id, Terminated)
		logging.Scanner.Printf("[%d]: finished", id)
	}()

	var next []string
	for {
		if p.tracker.finished() {
			return
		}

		batch := p.frontier.PopBatch(BatchSize)
		if len(batch) == 0 {
			p.setState(id, Idle)
			if !p.tracker.wait() {
				return
			}
			continue
		}
		p.setState(id, Scanning)

		next = next[:0]
		for _, dir := range batch {
			next = p.scan(id, dir, next, results)
		}

		if len(next) > 0 {
			found := make([]string, len(next))
			copy(found, next)
			p.tracker.add(len(found))
			p.frontier.PushMany(found)
			p.tracker.signal(len(found))
		}
		p.tracker.finish(len(batch))
	}
}

// scan lists dir, sends matching entries to results and appends
// subdirectories to next. A failed listing is logged and dropped.
func (p *Pool) scan(id int, dir string, next []string, results *sink) []string {
	logging.Scanner.Printf("[%d]: scanning %s", id, dir)

	entries, err := p.readDir(dir)
	if err != nil {
		p.skipLogger.Do(func() {
			logging.Debug.Printf("[%d]: %v in %s", id, err, dir)
		})
		if len(entries) == 0 {
			return next
		}
	}
	p.dirsScanned.Add(1)
	p.entriesSeen.Add(int64(len(entries)))

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		if p.matcher.Match(name) {
			logging.Scanner.Printf("[%d]: found %s", id, path)
			p.matches.Add(1)
			results.send(path)
		}

		if p.descend(entry, path) {
			next = append(next, path)
		}
	}
	return next
}

// descend reports whether entry is a directory worth queueing.
func (p *Pool) descend(entry fs.DirEntry, path string) bool {
	isDir := entry.IsDir()
	if !isDir && !p.req.SkipSymlinks && entry.Type()&fs.ModeSymlink != 0 {
		if info, err := os.Stat(path); err == nil {
			isDir = info.IsDir()
		}
	}
	if !isDir {
		return false
	}
	if p.req.OneFilesystem && p.rootDevOK {
		dev, ok := DeviceOf(path)
		if ok && dev != p.rootDev {
			logging.Debug.Printf("skipping mount point %s", path)
			return false
		}
	}
	return true
}
