package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	prev := &Record{Matches: []string{"/r/old", "/r/same"}}
	curr := []string{"/r/same", "/r/new", "/r/another"}

	d := Compare(curr, prev)
	assert.Equal(t, []string{"/r/another", "/r/new"}, d.Added)
	assert.Equal(t, []string{"/r/old"}, d.Removed)
	assert.False(t, d.Empty())
}

func TestCompareNoPrevious(t *testing.T) {
	d := Compare([]string{"/b", "/a"}, nil)
	assert.Equal(t, []string{"/a", "/b"}, d.Added)
	assert.Empty(t, d.Removed)
}

func TestCompareUnchanged(t *testing.T) {
	d := Compare([]string{"/a"}, &Record{Matches: []string{"/a"}})
	assert.True(t, d.Empty())
}
