package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Stats holds persistent statistics
type Stats struct {
	SearchesRun  int64  `json:"searches_run"`
	MatchesFound int64  `json:"matches_found"`
	LastRoot     string `json:"last_root,omitempty"` // default root when none is given
}

// Manager handles loading and saving stats
type Manager struct {
	path         string
	stats        Stats
	mu           sync.RWMutex
	dirty        bool
	saveTimer    *time.Timer
	saveDuration time.Duration
}

// NewManager creates a stats manager backed by path (DefaultPath when empty)
func NewManager(path string) *Manager {
	if path == "" {
		path = DefaultPath()
	}
	return &Manager{
		path:         path,
		saveDuration: 2 * time.Second, // Debounce saves
	}
}

// DefaultPath returns the default stats file path
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".disksearch-stats.json"
	}
	return filepath.Join(home, ".disksearch", "stats.json")
}

// Load loads stats from disk
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.stats = Stats{}
			return nil
		}
		return err
	}

	return json.Unmarshal(data, &m.stats)
}

// Save saves stats to disk immediately
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saveLocked()
}

// saveLocked saves stats without acquiring the lock (caller must hold lock)
func (m *Manager) saveLocked() error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m.stats, "", "  ")
	if err != nil {
		return err
	}

	m.dirty = false
	return os.WriteFile(m.path, data, 0644)
}

// Snapshot returns a copy of the current stats
func (m *Manager) Snapshot() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

// LastRoot returns the root of the most recent search
func (m *Manager) LastRoot() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats.LastRoot
}

// RecordSearch counts a finished search and schedules a debounced save
func (m *Manager) RecordSearch(root string, matches int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.SearchesRun++
	m.stats.MatchesFound += int64(matches)
	m.stats.LastRoot = root
	m.dirty = true
	m.scheduleLocked()
}

func (m *Manager) scheduleLocked() {
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveTimer = time.AfterFunc(m.saveDuration, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.dirty {
			_ = m.saveLocked() // Ignore errors for background save
		}
	})
}

// Close ensures any pending saves are written
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}

	if m.dirty {
		return m.saveLocked()
	}
	return nil
}
