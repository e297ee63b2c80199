package search

// resultBuffer keeps workers from waiting on the collector in bursts.
const resultBuffer = 4096

// sink gathers matches from many workers. A single collector goroutine
// drains the channel, so producers never wait for the orchestrator.
type sink struct {
	ch      chan string
	matches []string
	done    chan struct{}
}

func newSink() *sink {
	s := &sink{
		ch:      make(chan string, resultBuffer),
		matches: make([]string, 0, 64),
		done:    make(chan struct{}),
	}
	go s.collect()
	return s
}

func (s *sink) collect() {
	defer close(s.done)
	for path := range s.ch {
		s.matches = append(s.matches, path)
	}
}

func (s *sink) send(path string) {
	s.ch <- path
}

// close must only be called after every producer has returned.
// It returns the matches in arrival order.
func (s *sink) close() []string {
	close(s.ch)
	<-s.done
	return s.matches
}
