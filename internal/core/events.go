package core

// Event represents a state change from the controller
type Event interface {
	isEvent()
}

// SearchStartedEvent is emitted when a search begins
type SearchStartedEvent struct {
	Root    string
	Pattern string
}

func (SearchStartedEvent) isEvent() {}

// SearchCompletedEvent is emitted when a search finishes, successfully or not
type SearchCompletedEvent struct {
	Result *Result
	Err    error
}

func (SearchCompletedEvent) isEvent() {}

// MatchDeletedEvent is emitted when a match (or a directory holding matches)
// disappears from disk after the search
type MatchDeletedEvent struct {
	Path  string
	Count int // matches flagged by this deletion
}

func (MatchDeletedEvent) isEvent() {}

// MatchCreatedEvent is emitted when a new entry matching the pattern appears
// in a watched directory
type MatchCreatedEvent struct {
	Path string
}

func (MatchCreatedEvent) isEvent() {}

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Err error
}

func (ErrorEvent) isEvent() {}
