package search

import "sync"

// BatchSize is how many directories a worker takes from the frontier at once.
const BatchSize = 24

// Frontier is the shared stack of directories waiting to be scanned.
// The lock is held only while the slice is mutated.
type Frontier struct {
	mu   sync.Mutex
	dirs []string
}

// NewFrontier creates a frontier holding seed.
func NewFrontier(seed ...string) *Frontier {
	dirs := make([]string, 0, max(len(seed), 64))
	return &Frontier{dirs: append(dirs, seed...)}
}

// PushMany adds paths to the top of the stack. Duplicates are kept.
func (f *Frontier) PushMany(paths []string) {
	if len(paths) == 0 {
		return
	}
	f.mu.Lock()
	f.dirs = append(f.dirs, paths...)
	f.mu.Unlock()
}

// PopBatch removes up to n entries from the top of the stack, most recently
// pushed first. It returns nil when the frontier is empty.
func (f *Frontier) PopBatch(n int) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	n = min(n, len(f.dirs))
	if n <= 0 {
		return nil
	}

	top := len(f.dirs)
	batch := make([]string, n)
	for i := range n {
		batch[i] = f.dirs[top-1-i]
	}
	clear(f.dirs[top-n:])
	f.dirs = f.dirs[:top-n]
	return batch
}

// Len returns the number of pending directories.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.dirs)
}
