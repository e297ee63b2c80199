package search

import "strings"

// FileType is reserved for a future entry-type filter.
// Request carries it, but matching never consults it.
type FileType string

// Request describes one search. It is copied into the pool and not
// modified once the search starts.
type Request struct {
	// Root is the directory to start from. Result paths keep its form,
	// so a relative root yields relative results.
	Root string
	// Pattern is matched as a case-insensitive substring of each entry name.
	// The empty pattern matches everything.
	Pattern string
	// FileType is inert; see FileType.
	FileType FileType
	// Workers is the number of parallel workers. Values below 1 mean 1.
	Workers int
	// SkipSymlinks stops the search from descending into symlinked
	// directories. By default links are followed without loop detection;
	// a cycle ends once the path fails to resolve (ELOOP or ENAMETOOLONG).
	SkipSymlinks bool
	// OneFilesystem skips directories that live on a different device than Root.
	OneFilesystem bool
}

func (r Request) normalize() Request {
	if r.Workers < 1 {
		r.Workers = 1
	}
	return r
}

// Matcher tests entry names against a lower-cased pattern.
type Matcher struct {
	needle string
}

// NewMatcher lower-cases pattern once so each test only folds the name.
func NewMatcher(pattern string) Matcher {
	return Matcher{needle: strings.ToLower(pattern)}
}

// Match reports whether name contains the pattern, ignoring case.
func (m Matcher) Match(name string) bool {
	return strings.Contains(strings.ToLower(name), m.needle)
}
