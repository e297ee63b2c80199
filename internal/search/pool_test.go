package search

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTree creates files under root. Entries ending in "/" are directories.
func makeTree(t testing.TB, root string, entries ...string) {
	t.Helper()
	for _, e := range entries {
		path := filepath.Join(root, filepath.FromSlash(e))
		if strings.HasSuffix(e, "/") {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
}

// makeWideTree builds depth levels of fanout directories, each holding a
// few files, so the pool has real contention.
func makeWideTree(t testing.TB, root string, depth, fanout int) {
	t.Helper()
	var build func(dir string, level int)
	build = func(dir string, level int) {
		makeTree(t, dir, "main.go", "README.md", fmt.Sprintf("data_%d.RS", level))
		if level == depth {
			return
		}
		for i := range fanout {
			build(filepath.Join(dir, fmt.Sprintf("pkg%d", i)), level+1)
		}
	}
	build(root, 0)
}

// walkMatches is the sequential reference traversal.
func walkMatches(t testing.TB, root, pattern string) []string {
	t.Helper()
	m := NewMatcher(pattern)
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path != root && m.Match(d.Name()) {
			out = append(out, path)
		}
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestSearchScenario(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.rs", "b.txt", "sub/c.RS")

	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			got, err := Search(Request{Root: root, Pattern: ".rs", Workers: workers})
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{
				filepath.Join(root, "a.rs"),
				filepath.Join(root, "sub", "c.RS"),
			}, got)
		})
	}
}

func TestSearchEmptyRoot(t *testing.T) {
	got, err := Search(Request{Root: t.TempDir(), Pattern: "", Workers: 4})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchEmptyPatternMatchesEverything(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a", "b/", "b/c", "b/d/e.txt", "f/")

	got, err := Search(Request{Root: root, Workers: 3})
	require.NoError(t, err)
	assert.ElementsMatch(t, walkMatches(t, root, ""), got)
	assert.Len(t, got, 6)
}

func TestSearchMatchedDirectoriesAreDescended(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "rs_tools/inner/lib.rs", "other/")

	got, err := Search(Request{Root: root, Pattern: "RS", Workers: 2})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "rs_tools"),
		filepath.Join(root, "rs_tools", "inner", "lib.rs"),
	}, got)
}

func TestSearchWorkerCountsAgree(t *testing.T) {
	root := t.TempDir()
	makeWideTree(t, root, 3, 4)

	want := walkMatches(t, root, ".rs")
	require.Len(t, want, 1+4+16+64)

	for _, workers := range []int{1, 2, 8, 32} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			got, err := Search(Request{Root: root, Pattern: ".rs", Workers: workers})
			require.NoError(t, err)
			assert.ElementsMatch(t, want, got)
		})
	}
}

func TestSearchResultProperties(t *testing.T) {
	root := t.TempDir()
	makeWideTree(t, root, 2, 3)

	const pattern = "ReAd"
	got, err := Search(Request{Root: root, Pattern: pattern, Workers: runtime.NumCPU()})
	require.NoError(t, err)
	require.NotEmpty(t, got)

	for _, p := range got {
		assert.Contains(t, strings.ToLower(filepath.Base(p)), strings.ToLower(pattern))
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		assert.False(t, strings.HasPrefix(rel, ".."), "%s escapes root", p)
	}

	again, err := Search(Request{Root: root, Pattern: pattern, Workers: 2})
	require.NoError(t, err)
	assert.ElementsMatch(t, got, again)
}

func TestSearchRelativeRootKeepsForm(t *testing.T) {
	dir := t.TempDir()
	makeTree(t, dir, "tree/x.rs", "tree/nested/y.rs")
	t.Chdir(dir)

	got, err := Search(Request{Root: "tree", Pattern: ".rs", Workers: 2})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join("tree", "x.rs"),
		filepath.Join("tree", "nested", "y.rs"),
	}, got)
}

func TestSearchMissingRoot(t *testing.T) {
	got, err := Search(Request{Root: filepath.Join(t.TempDir(), "nope"), Pattern: "x", Workers: 2})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchUnreadableRoot(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.rs")

	p := NewPool(Request{Root: root, Pattern: ".rs", Workers: 2})
	p.readDir = func(string) ([]os.DirEntry, error) {
		return nil, fs.ErrPermission
	}

	got, err := p.Run()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, int64(0), p.Progress().DirsScanned)
}

func TestSearchUnreadableSubtreeIsSkipped(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	root := t.TempDir()
	makeTree(t, root, "open/a.rs", "locked/b.rs")

	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	got, err := Search(Request{Root: root, Pattern: ".rs", Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "open", "a.rs")}, got)
}

func TestSearchWorkerPanic(t *testing.T) {
	root := t.TempDir()
	makeWideTree(t, root, 2, 3)

	p := NewPool(Request{Root: root, Pattern: "", Workers: 4})
	calls := 0
	p.readDir = func(dir string) ([]os.DirEntry, error) {
		if dir != root {
			panic("disk on fire")
		}
		calls++
		return os.ReadDir(dir)
	}

	got, err := p.Run()
	require.ErrorIs(t, err, ErrWorkerPanic)
	assert.Contains(t, err.Error(), "disk on fire")
	assert.Nil(t, got)
	assert.Equal(t, 1, calls)
}

func TestSearchWorkersTerminate(t *testing.T) {
	root := t.TempDir()
	makeWideTree(t, root, 2, 2)

	p := NewPool(Request{Root: root, Pattern: "main", Workers: 6})
	for _, s := range p.WorkerStates() {
		assert.Equal(t, Scanning, s)
	}

	got, err := p.Run()
	require.NoError(t, err)
	assert.Len(t, got, 7)

	for i, s := range p.WorkerStates() {
		assert.Equal(t, Terminated, s, "worker %d", i)
	}

	progress := p.Progress()
	assert.Equal(t, int64(7), progress.DirsScanned)
	assert.Equal(t, int64(7), progress.Matches)
	assert.Equal(t, int64(7*3+6), progress.EntriesSeen)
}

func TestSearchFileTypeIsInert(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a.rs", "dir.rs/")

	plain, err := Search(Request{Root: root, Pattern: ".rs"})
	require.NoError(t, err)
	typed, err := Search(Request{Root: root, Pattern: ".rs", FileType: "file"})
	require.NoError(t, err)
	assert.ElementsMatch(t, plain, typed)
	assert.Len(t, typed, 2)
}

func TestSearchSymlinks(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()
	makeTree(t, target, "linked.rs")
	if err := os.Symlink(target, filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := Search(Request{Root: root, Pattern: ".rs", Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "link", "linked.rs")}, got, "links are followed by default")

	got, err = Search(Request{Root: root, Pattern: ".rs", Workers: 2, SkipSymlinks: true})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchSymlinkCycleTerminates(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a/x.rs")
	if err := os.Symlink(root, filepath.Join(root, "a", "up")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := Search(Request{Root: root, Pattern: "x.rs", Workers: 4})
	require.NoError(t, err)
	assert.Contains(t, got, filepath.Join(root, "a", "x.rs"))
	assert.Contains(t, got, filepath.Join(root, "a", "up", "a", "x.rs"))

	got, err = Search(Request{Root: root, Pattern: "x.rs", Workers: 4, SkipSymlinks: true})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a", "x.rs")}, got)
}

func TestSearchOneFilesystemSameDevice(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a/b/c.rs")

	got, err := Search(Request{Root: root, Pattern: ".rs", Workers: 2, OneFilesystem: true})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a", "b", "c.rs")}, got)
}

func TestMatcher(t *testing.T) {
	m := NewMatcher(".RS")
	assert.True(t, m.Match("main.rs"))
	assert.True(t, m.Match("MAIN.Rs"))
	assert.False(t, m.Match("main.go"))
	assert.True(t, NewMatcher("").Match("anything"))
}

func TestWorkerStateString(t *testing.T) {
	assert.Equal(t, "scanning", Scanning.String())
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "terminated", Terminated.String())
	assert.Equal(t, "unknown", WorkerState(42).String())
}

// BenchmarkSearch also exposes the cost of idle workers: with many more
// workers than directories, most of them spend the search waiting.
func BenchmarkSearch(b *testing.B) {
	root := b.TempDir()
	makeWideTree(b, root, 3, 6)

	for _, workers := range []int{1, 4, 16, 64} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			for b.Loop() {
				if _, err := Search(Request{Root: root, Pattern: ".go", Workers: workers}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
