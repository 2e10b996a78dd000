package uartwatch

// Sink receives everything a session produces. Calls are fire-and-forget
// and arrive in stream order from a single goroutine.
type Sink interface {
	HandleLine(line LogLine)
	HandleSignals(c Classification)
	HandleState(change StateChange)
}

// StateChange describes one session state transition
type StateChange struct {
	Port      string
	SessionID string
	From      State
	To        State
	Err       error // cause of a failed open or a transport fault
}

// MultiSink fans every call out to each sink in order
type MultiSink []Sink

func (m MultiSink) HandleLine(line LogLine) {
	for _, s := range m {
		s.HandleLine(line)
	}
}

func (m MultiSink) HandleSignals(c Classification) {
	for _, s := range m {
		s.HandleSignals(c)
	}
}

func (m MultiSink) HandleState(change StateChange) {
	for _, s := range m {
		s.HandleState(change)
	}
}

// Journal persists the lines of one session
type Journal interface {
	Record(line LogLine) error
	Close() error
}

// JournalFactory starts a journal for a newly opened session
type JournalFactory func(port, sessionID string) (Journal, error)

type discardSink struct{}

func (discardSink) HandleLine(LogLine)           {}
func (discardSink) HandleSignals(Classification) {}
func (discardSink) HandleState(StateChange)      {}
