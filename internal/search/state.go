package search

// WorkerState is what a worker was last doing.
type WorkerState int32

const (
	// Scanning means the worker holds a batch (or has not started yet).
	Scanning WorkerState = iota
	// Idle means the worker found the frontier empty and is waiting.
	Idle
	// Terminated means the worker has left its loop.
	Terminated
)

// String returns a human-readable state name
func (s WorkerState) String() string {
	switch s {
	case Scanning:
		return "scanning"
	case Idle:
		return "idle"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Progress is a snapshot of search counters.
type Progress struct {
	DirsScanned int64
	EntriesSeen int64
	Matches     int64
}
