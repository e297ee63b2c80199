// Package watcher reports filesystem changes below a search root so stale
// matches can be flagged after the search finished.
package watcher

// EventType represents the type of filesystem event
type EventType int

const (
	EventDeleted EventType = iota
	EventCreated
)

func (t EventType) String() string {
	switch t {
	case EventDeleted:
		return "deleted"
	case EventCreated:
		return "created"
	default:
		return "unknown"
	}
}

// Event represents a filesystem change event
type Event struct {
	Type EventType
	Path string
}

// eventBuffer bounds the event channel; events beyond it are dropped
const eventBuffer = 100
