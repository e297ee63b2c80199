package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// EnvDebug enables debug logging when set. A level name ("trace", "debug")
// selects the verbosity; any other non-empty value means "debug".
const EnvDebug = "DISKSEARCH_DEBUG"

// EnvLogFile redirects debug output from stderr to a file.
const EnvLogFile = "DISKSEARCH_LOG_FILE"

var (
	// Debug receives diagnostic messages (search lifecycle, skipped directories).
	Debug *log.Logger
	// Scanner receives one line per scanned directory. Only enabled at trace level.
	Scanner *log.Logger
	Enabled bool

	// logFile is the file opened by the last Setup, closed by the next one
	logFile *os.File
)

func init() {
	Debug = discard()
	Scanner = discard()

	level, ok := EnvLevel()
	if !ok {
		return
	}
	if err := Setup(level.String(), os.Getenv(EnvLogFile)); err != nil {
		Debug = log.New(os.Stderr, "[DEBUG] ", log.Ldate|log.Ltime)
		Enabled = true
	}
}

// Setup (re)configures the package loggers. Levels above debug disable them.
// An empty path logs to stderr. Call it before starting any search.
func Setup(level, path string) error {
	lvl := ParseLevel(level)

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	Debug = discard()
	Scanner = discard()
	Enabled = lvl <= LevelDebug
	if !Enabled {
		return nil
	}

	var out io.Writer = os.Stderr
	if path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			Enabled = false
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		out = f
	}

	Debug = log.New(out, "", log.Lmicroseconds)
	if lvl == LevelTrace {
		Scanner = log.New(out, "", log.Lmicroseconds)
	}
	return nil
}

// EnvLevel returns the level requested through EnvDebug. Anything that is
// not trace counts as debug.
func EnvLevel() (Level, bool) {
	v := os.Getenv(EnvDebug)
	if v == "" {
		return LevelInfo, false
	}
	if l := ParseLevel(v); l == LevelTrace {
		return l, true
	}
	return LevelDebug, true
}

func discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// Level is a log verbosity threshold.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts a level name to a Level. Unknown names map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// ValidLevel reports whether s names a known level.
func ValidLevel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}
