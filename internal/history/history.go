// Package history persists search results so later runs can report what changed.
package history

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/lumipallolabs/disksearch/internal/logging"
)

const (
	fileSuffix = ".gob.zst"
	timeLayout = "2006-01-02_150405.000000000" // fixed width so names sort by time
	lockName   = ".lock"
)

// ErrNoHistory is returned when no earlier search matches the query
var ErrNoHistory = errors.New("no history")

// Record is one persisted search. Root keeps the form the user typed, like
// the result paths; AbsRoot is what LoadLatest matches on, so "." searched
// from two directories never collides.
type Record struct {
	ID      string
	Root    string
	AbsRoot string
	Pattern string
	Engine  string
	Workers int
	Matches []string
	Elapsed time.Duration
	Time    time.Time
}

// Store handles saving and loading search records
type Store struct {
	dir  string
	lock *flock.Flock
}

// New creates a store in the given directory
func New(dir string) *Store {
	return &Store{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, lockName)),
	}
}

// DefaultDir returns the default history directory
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".disksearch"
	}
	return filepath.Join(home, ".disksearch", "history")
}

// Dir returns the directory records are stored in
func (s *Store) Dir() string {
	return s.dir
}

// Save writes rec to disk, filling ID and Time when unset
func (s *Store) Save(rec *Record) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock history: %w", err)
	}
	defer s.lock.Unlock()

	filename := fmt.Sprintf("%s_%s%s", rec.Time.Format(timeLayout), rec.ID, fileSuffix)
	path := filepath.Join(s.dir, filename)

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if err := encode(tmp, rec); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	logging.Debug.Printf("history: saved %s (%d matches)", filename, len(rec.Matches))
	return nil
}

func encode(f *os.File, rec *Record) error {
	zw, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if err := gob.NewEncoder(zw).Encode(rec); err != nil {
		zw.Close()
		return fmt.Errorf("encode: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

func load(path string) (*Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	zr, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer zr.Close()

	var rec Record
	if err := gob.NewDecoder(zr).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return &rec, nil
}

// files returns record files sorted oldest first (filenames lead with the timestamp)
func (s *Store) files() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, "*"+fileSuffix))
	if err != nil {
		return nil, fmt.Errorf("glob: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// List returns all readable records, newest first. Corrupt files are skipped.
func (s *Store) List() ([]*Record, error) {
	files, err := s.files()
	if err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(files))
	for _, f := range files {
		rec, err := load(f)
		if err != nil {
			logging.Debug.Printf("history: skipping %s: %v", filepath.Base(f), err)
			continue
		}
		records = append(records, rec)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Time.After(records[j].Time)
	})
	return records, nil
}

// LoadLatest loads the most recent record for the same root and pattern.
// A relative root is resolved against the current working directory.
func (s *Store) LoadLatest(root, pattern string) (*Record, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	records, err := s.List()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.Pattern == pattern && rec.key() == abs {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("%w for %q in %s", ErrNoHistory, pattern, abs)
}

// key is the absolute root a record was taken from. Records without AbsRoot
// only match when their Root was already absolute.
func (r *Record) key() string {
	if r.AbsRoot != "" {
		return r.AbsRoot
	}
	if filepath.IsAbs(r.Root) {
		return filepath.Clean(r.Root)
	}
	return ""
}

// Prune deletes all but the newest keep records. keep <= 0 keeps everything.
func (s *Store) Prune(keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		return 0, nil
	}
	if err := s.lock.Lock(); err != nil {
		return 0, fmt.Errorf("lock history: %w", err)
	}
	defer s.lock.Unlock()

	files, err := s.files()
	if err != nil {
		return 0, err
	}
	if len(files) <= keep {
		return 0, nil
	}

	removed := 0
	for _, f := range files[:len(files)-keep] {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("remove %s: %w", filepath.Base(f), err)
		}
		removed++
	}
	return removed, nil
}

// Timestamp returns the time encoded in a record filename
func Timestamp(filename string) (time.Time, error) {
	base := strings.TrimSuffix(filepath.Base(filename), fileSuffix)
	if len(base) < len(timeLayout) {
		return time.Time{}, fmt.Errorf("invalid filename %q", filename)
	}
	return time.ParseInLocation(timeLayout, base[:len(timeLayout)], time.Local)
}
