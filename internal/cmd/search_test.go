package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPrintsMatchesAndSummary(t *testing.T) {
	isolate(t)
	root := makeTree(t)

	out, errOut, err := execute(t, "search", ".rs", root, "--sort", "-w", "3")
	require.NoError(t, err)

	assert.Equal(t,
		"[1/2] "+filepath.Join(root, "src", "deep", "lib.rs")+"\n"+
			"[2/2] "+filepath.Join(root, "src", "main.rs")+"\n",
		out)
	assert.Contains(t, errOut, "[INFO] found 2 after")
}

func TestSearchEnginesAgree(t *testing.T) {
	isolate(t)
	root := makeTree(t)

	frontier, _, err := execute(t, "search", "", root, "--sort", "--no-history")
	require.NoError(t, err)
	fast, _, err := execute(t, "search", "", root, "--sort", "--no-history", "--engine", "fastwalk")
	require.NoError(t, err)
	assert.Equal(t, frontier, fast)
	assert.Len(t, strings.Split(strings.TrimSpace(frontier), "\n"), 5)
}

func TestSearchDefaultsToLastRoot(t *testing.T) {
	isolate(t)
	root := makeTree(t)

	_, _, err := execute(t, "search", "notes", root)
	require.NoError(t, err)

	out, _, err := execute(t, "search", "notes")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(root, "notes.txt"))
}

func TestSearchDiff(t *testing.T) {
	isolate(t)
	root := makeTree(t)

	_, errOut, err := execute(t, "search", ".rs", root, "--diff")
	require.NoError(t, err)
	assert.Contains(t, errOut, "no earlier search")

	require.NoError(t, os.Remove(filepath.Join(root, "src", "main.rs")))
	require.NoError(t, os.WriteFile(filepath.Join(root, "new.rs"), []byte("x"), 0644))

	out, _, err := execute(t, "search", ".rs", root, "--diff")
	require.NoError(t, err)
	assert.Contains(t, out, "+ "+filepath.Join(root, "new.rs"))
	assert.Contains(t, out, "- "+filepath.Join(root, "src", "main.rs"))

	out, _, err = execute(t, "search", ".rs", root, "--diff")
	require.NoError(t, err)
	assert.Contains(t, out, "no changes since last search")

	hist, _, err := execute(t, "history", "--limit", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(hist), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], `".rs"`)
}

func TestSearchNoHistory(t *testing.T) {
	home := isolate(t)
	root := makeTree(t)

	_, _, err := execute(t, "search", ".rs", root, "--no-history")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(home, ".disksearch", "history"))
	assert.True(t, os.IsNotExist(err))

	out, _, err := execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved searches")
}

func TestSearchTypes(t *testing.T) {
	isolate(t)
	root := makeTree(t)

	out, _, err := execute(t, "search", "src", root, "--types")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(root, "src")+"  DIR")
}

func TestSearchUsesConfigFile(t *testing.T) {
	isolate(t)
	root := makeTree(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("engine = \"fastwalk\"\nlog_level = \"warn\"\n"), 0644))

	out, errOut, err := execute(t, "search", ".rs", root, "--config", cfgPath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
	assert.NotContains(t, errOut, "found", "info summary is filtered at warn")
}

func TestSearchErrors(t *testing.T) {
	isolate(t)
	root := makeTree(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing root", []string{"search", "x", filepath.Join(root, "missing")}},
		{"bad engine", []string{"search", "x", root, "--engine", "warp"}},
		{"zero workers", []string{"search", "x", root, "-w", "0"}},
		{"no pattern", []string{"search"}},
		{"root with all drives", []string{"search", "x", root, "--all-drives"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
