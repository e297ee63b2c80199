package model

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Kind tells directories from everything else
type Kind uint8

const (
	KindUnknown Kind = iota // not looked up yet
	KindFile
	KindDir
)

// Match is one search hit as shown to the user
type Match struct {
	Path    string
	Name    string
	Kind    Kind
	Type    string // detected file type, e.g. "PDF"; empty until DetectType
	Deleted bool   // removed from disk after the search
}

// NewMatches wraps raw result paths without touching the filesystem.
func NewMatches(paths []string) []*Match {
	out := make([]*Match, len(paths))
	for i, p := range paths {
		out[i] = &Match{Path: p, Name: filepath.Base(p)}
	}
	return out
}

// IsDir reports whether the match is a directory, looking it up with Lstat
// on first use. Entries that vanished since the search count as files.
func (m *Match) IsDir() bool {
	if m.Kind == KindUnknown {
		m.Kind = KindFile
		if info, err := os.Lstat(m.Path); err == nil && info.IsDir() {
			m.Kind = KindDir
		}
	}
	return m.Kind == KindDir
}

// DetectType fills Type from the file's magic numbers. Directories get "DIR".
func (m *Match) DetectType() string {
	if m.Type != "" {
		return m.Type
	}
	if m.IsDir() {
		m.Type = "DIR"
		return m.Type
	}
	m.Type = fileType(m.Path)
	return m.Type
}

// fileType detects file type using magic numbers
func fileType(path string) string {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return ""
	}
	if ext := mtype.Extension(); ext != "" {
		return strings.ToUpper(strings.TrimPrefix(ext, "."))
	}
	return mtype.String()
}

// SortByPath sorts matches by path, directories and files interleaved
func SortByPath(matches []*Match) {
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Path < matches[j].Path
	})
}

// Paths returns the paths of matches in their current order
func Paths(matches []*Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Path
	}
	return out
}

// MarkDeleted flags the match at path (or below it) as deleted and returns
// how many matches were affected.
func MarkDeleted(matches []*Match, path string) int {
	prefix := path + string(filepath.Separator)
	n := 0
	for _, m := range matches {
		if m.Deleted {
			continue
		}
		if m.Path == path || strings.HasPrefix(m.Path, prefix) {
			m.Deleted = true
			n++
		}
	}
	return n
}
