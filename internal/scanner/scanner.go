package scanner

import (
	"errors"
	"fmt"

	"github.com/lumipallolabs/disksearch/internal/search"
)

// Engine names accepted by New.
const (
	EngineFrontier = "frontier"
	EngineFastwalk = "fastwalk"
)

// ErrUnknownEngine is returned by New for an unrecognised engine name.
var ErrUnknownEngine = errors.New("unknown search engine")

// Scanner defines the interface for filesystem searches
type Scanner interface {
	// Search walks req.Root and returns every entry whose name matches req.Pattern
	Search(req search.Request) ([]string, error)

	// Progress returns counters for the search in flight (or the last one)
	Progress() search.Progress
}

// Engines lists the available engine names.
func Engines() []string {
	return []string{EngineFrontier, EngineFastwalk}
}

// New returns the scanner for the named engine. An empty name selects the frontier engine.
func New(engine string) (Scanner, error) {
	switch engine {
	case "", EngineFrontier:
		return NewPoolScanner(), nil
	case EngineFastwalk:
		return NewWalker(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}
