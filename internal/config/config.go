// Package config loads disksearch settings from a YAML or TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/lumipallolabs/disksearch/internal/logging"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for config files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// configNames are tried in order by LoadDefault
var configNames = []string{"config.yaml", "config.yml", "config.toml"}

// engines mirrors the scanner engine names; config must not import scanner
var engines = []string{"frontier", "fastwalk"}

// HistoryConfig controls persisted search results
type HistoryConfig struct {
	// Enabled stores every search so later runs can show what changed
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Dir is where history files live; "~/" is expanded
	Dir string `yaml:"dir" toml:"dir"`

	// Keep is how many searches to retain (0 = unlimited)
	Keep int `yaml:"keep" toml:"keep"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	// ShowTypes appends the detected file type to each match
	ShowTypes bool `yaml:"show_types" toml:"show_types"`

	// Color is auto, always or never
	Color string `yaml:"color" toml:"color"`
}

// Config represents disksearch configuration options
type Config struct {
	// Workers is the number of parallel search workers (0 = one per CPU)
	Workers int `yaml:"workers" toml:"workers"`

	// Engine selects the search implementation: frontier or fastwalk
	Engine string `yaml:"engine" toml:"engine"`

	// SkipSymlinks stops the search at symlinked directories (followed by default)
	SkipSymlinks bool `yaml:"skip_symlinks" toml:"skip_symlinks"`

	// OneFilesystem stays on the device of the search root
	OneFilesystem bool `yaml:"one_filesystem" toml:"one_filesystem"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// LogFile receives debug output instead of stderr
	LogFile string `yaml:"log_file" toml:"log_file"`

	History HistoryConfig `yaml:"history" toml:"history"`
	Output  OutputConfig  `yaml:"output" toml:"output"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Workers:  runtime.NumCPU(),
		Engine:   "frontier",
		LogLevel: "info",
		History: HistoryConfig{
			Enabled: true,
			Dir:     filepath.Join("~", ".disksearch", "history"),
			Keep:    50,
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// DefaultDir returns the directory searched by LoadDefault
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return ".disksearch"
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "disksearch")
}

// LoadDefault loads the first config file found in DefaultDir.
// A missing file is not an error; defaults are returned.
func LoadDefault() (*Config, error) {
	dir := DefaultDir()
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads path on top of the defaults and validates the result.
// The format is chosen by extension: .yaml, .yml or .toml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values and fills in derived defaults
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}

	if c.Engine == "" {
		c.Engine = "frontier"
	}
	if !slices.Contains(engines, c.Engine) {
		return fmt.Errorf("unknown engine %q (want one of %s)", c.Engine, strings.Join(engines, ", "))
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	switch c.Output.Color {
	case "":
		c.Output.Color = "auto"
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color must be auto, always or never, got %q", c.Output.Color)
	}

	if c.History.Keep < 0 {
		return fmt.Errorf("history.keep must not be negative, got %d", c.History.Keep)
	}
	c.History.Dir = ExpandHome(c.History.Dir)
	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
