package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, "frontier", cfg.Engine)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 50, cfg.History.Keep)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.False(t, cfg.SkipSymlinks, "symlinked directories are followed by default")
	require.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
workers: 3
engine: fastwalk
skip_symlinks: true
log_level: debug
history:
  keep: 5
output:
  show_types: true
  color: never
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "fastwalk", cfg.Engine)
	assert.True(t, cfg.SkipSymlinks)
	assert.False(t, cfg.OneFilesystem)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5, cfg.History.Keep)
	assert.True(t, cfg.History.Enabled, "unset fields keep their defaults")
	assert.True(t, cfg.Output.ShowTypes)
	assert.Equal(t, "never", cfg.Output.Color)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
workers = 2
one_filesystem = true

[history]
enabled = false
dir = "/var/tmp/ds"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.OneFilesystem)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "/var/tmp/ds", cfg.History.Dir)
	assert.Equal(t, "frontier", cfg.Engine)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"negative workers", "c.yaml", "workers: -1"},
		{"bad engine", "c.yaml", "engine: quantum"},
		{"bad level", "c.yml", "log_level: loud"},
		{"bad color", "c.toml", "[output]\ncolor = \"sometimes\""},
		{"negative keep", "c.yaml", "history:\n  keep: -2"},
		{"malformed yaml", "c.yaml", "workers: [1"},
		{"malformed toml", "c.toml", "workers = "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load(writeFile(t, "config.json", "{}"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, "frontier", cfg.Engine)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "auto", cfg.Output.Color)
}

func TestLoadDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	if runtime.GOOS == "windows" {
		t.Setenv("AppData", filepath.Join(home, ".config"))
	}

	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, "frontier", cfg.Engine)

	dir := DefaultDir()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("engine: fastwalk\n"), 0644))

	cfg, err = LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, "fastwalk", cfg.Engine)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}

	assert.Equal(t, filepath.Join(home, ".disksearch"), ExpandHome("~/.disksearch"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}

func TestLoadDefaultExpandsHistoryDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".disksearch", "history"), cfg.History.Dir)
}
