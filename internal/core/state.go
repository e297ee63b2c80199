package core

import (
	"time"

	"github.com/lumipallolabs/disksearch/internal/search"
)

// Phase represents where the session is in its lifecycle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSearching
	PhaseComplete
)

// String returns a human-readable phase name
func (p Phase) String() string {
	switch p {
	case PhaseSearching:
		return "Searching"
	case PhaseComplete:
		return "Complete"
	default:
		return ""
	}
}

// SessionState holds the current search state
type SessionState struct {
	Phase     Phase
	Root      string
	Pattern   string
	StartTime time.Time
	Duration  time.Duration // set once the search completes
	Progress  search.Progress
	Err       error
}

// IsSearching returns true while a search is in progress
func (s SessionState) IsSearching() bool {
	return s.Phase == PhaseSearching
}

// Elapsed returns time since the search started, or its final duration
func (s SessionState) Elapsed() time.Duration {
	if s.Phase == PhaseComplete {
		return s.Duration
	}
	if s.StartTime.IsZero() {
		return 0
	}
	return time.Since(s.StartTime).Truncate(time.Millisecond)
}
