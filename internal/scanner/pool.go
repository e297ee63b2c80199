package scanner

import (
	"sync/atomic"

	"github.com/lumipallolabs/disksearch/internal/search"
)

// PoolScanner runs searches on the shared-frontier worker pool.
type PoolScanner struct {
	current atomic.Pointer[search.Pool]
}

// NewPoolScanner creates a scanner backed by search.Pool
func NewPoolScanner() *PoolScanner {
	return &PoolScanner{}
}

// Search runs a new pool for req
func (s *PoolScanner) Search(req search.Request) ([]string, error) {
	p := search.NewPool(req)
	s.current.Store(p)
	return p.Run()
}

// Progress reports the most recently started pool
func (s *PoolScanner) Progress() search.Progress {
	if p := s.current.Load(); p != nil {
		return p.Progress()
	}
	return search.Progress{}
}

var _ Scanner = (*PoolScanner)(nil)
