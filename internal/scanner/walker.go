package scanner

import (
	"io/fs"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"github.com/lumipallolabs/disksearch/internal/logging"
	"github.com/lumipallolabs/disksearch/internal/search"
)

// Walker implements the search on top of fastwalk. It applies the same
// matching rules as the frontier engine and serves as a cross-check for it.
type Walker struct {
	dirsScanned atomic.Int64
	entriesSeen atomic.Int64
	matches     atomic.Int64
}

// NewWalker creates a new fastwalk-backed scanner
func NewWalker() *Walker {
	return &Walker{}
}

// Progress returns the counters of the current or last search
func (w *Walker) Progress() search.Progress {
	return search.Progress{
		DirsScanned: w.dirsScanned.Load(),
		EntriesSeen: w.entriesSeen.Load(),
		Matches:     w.matches.Load(),
	}
}

// Search walks req.Root with fastwalk. Walk errors are absorbed like
// the frontier engine absorbs unreadable directories.
func (w *Walker) Search(req search.Request) ([]string, error) {
	w.dirsScanned.Store(0)
	w.entriesSeen.Store(0)
	w.matches.Store(0)

	root := filepath.Clean(req.Root)
	matcher := search.NewMatcher(req.Pattern)

	var rootDev uint64
	var rootDevOK bool
	if req.OneFilesystem {
		rootDev, rootDevOK = search.DeviceOf(root)
	}

	// Use channels for lock-free match collection
	matchCh := make(chan string, 1024)
	matches := make([]string, 0, 64)
	var collectWg sync.WaitGroup
	collectWg.Add(1)
	go func() {
		defer collectWg.Done()
		for path := range matchCh {
			matches = append(matches, path)
		}
	}()

	conf := &fastwalk.Config{
		Follow:     !req.SkipSymlinks,
		NumWorkers: max(req.Workers, 1),
	}

	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Debug.Printf("[fastwalk] %v in %s", err, path)
			return nil
		}
		if path == root {
			w.dirsScanned.Add(1)
			return nil
		}
		w.entriesSeen.Add(1)

		path = filepath.Clean(path)
		if matcher.Match(d.Name()) {
			w.matches.Add(1)
			matchCh <- path
		}

		if d.IsDir() {
			if req.OneFilesystem && rootDevOK {
				if dev, ok := search.DeviceOf(path); ok && dev != rootDev {
					return fs.SkipDir
				}
			}
			w.dirsScanned.Add(1)
		}
		return nil
	})

	close(matchCh)
	collectWg.Wait()

	if walkErr != nil {
		logging.Debug.Printf("[fastwalk] walk of %s ended early: %v", root, walkErr)
	}
	return matches, nil
}

// Ensure Walker implements Scanner
var _ Scanner = (*Walker)(nil)
