package uartwatch

import (
	"errors"
	"sync"
	"time"
)

var errUnplugged = errors.New("input/output error")

// fakeConn hands out queued chunks, then either stays idle or faults
type fakeConn struct {
	mu      sync.Mutex
	chunks  [][]byte
	fault   error
	closes  int
	polls   int
	onEmpty func()
}

func (c *fakeConn) BytesAvailable() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.polls++

	if len(c.chunks) > 0 {
		return len(c.chunks[0]), nil
	}
	if c.fault != nil {
		return 0, c.fault
	}
	if c.onEmpty != nil {
		c.onEmpty()
	}
	return 0, nil
}

func (c *fakeConn) ReadAvailable() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.chunks) == 0 {
		return nil, nil
	}
	chunk := c.chunks[0]
	c.chunks = c.chunks[1:]
	return chunk, nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	return nil
}

func (c *fakeConn) closeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closes
}

// fakeTransport returns scripted connections or errors per open call
type fakeTransport struct {
	mu     sync.Mutex
	opens  []string
	bauds  []int
	script []func(port string) (Conn, error)
}

func (t *fakeTransport) Open(port string, baudRate int, _ time.Duration) (Conn, error) {
	t.mu.Lock()
	t.opens = append(t.opens, port)
	t.bauds = append(t.bauds, baudRate)
	var step func(string) (Conn, error)
	if len(t.script) > 0 {
		step = t.script[0]
		t.script = t.script[1:]
	}
	t.mu.Unlock()

	if step == nil {
		return nil, errors.New("no such file or directory")
	}
	return step(port)
}

func (t *fakeTransport) openedPorts() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.opens...)
}

func connStep(c *fakeConn) func(string) (Conn, error) {
	return func(string) (Conn, error) { return c, nil }
}

func errStep(err error) func(string) (Conn, error) {
	return func(string) (Conn, error) { return nil, err }
}

// fakeDiscovery returns successive port lists, repeating the last one
type fakeDiscovery struct {
	mu    sync.Mutex
	lists [][]string
	errs  []error
	calls int
}

func (d *fakeDiscovery) ListPorts() ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.calls
	d.calls++
	if i < len(d.errs) && d.errs[i] != nil {
		return nil, d.errs[i]
	}
	if len(d.lists) == 0 {
		return nil, nil
	}
	return d.lists[min(i, len(d.lists)-1)], nil
}

// recordingSink keeps everything it is handed
type recordingSink struct {
	mu      sync.Mutex
	lines   []LogLine
	signals []Classification
	states  []StateChange
}

func (s *recordingSink) HandleLine(line LogLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
}

func (s *recordingSink) HandleSignals(c Classification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signals = append(s.signals, c)
}

func (s *recordingSink) HandleState(change StateChange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = append(s.states, change)
}

func (s *recordingSink) texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var texts []string
	for _, l := range s.lines {
		texts = append(texts, l.Text)
	}
	return texts
}

func (s *recordingSink) transitions() []State {
	s.mu.Lock()
	defer s.mu.Unlock()
	var states []State
	for _, c := range s.states {
		states = append(states, c.To)
	}
	return states
}

// memJournal records lines in memory
type memJournal struct {
	lines   []string
	closes  int
	failAt  int
	written int
}

func (j *memJournal) Record(line LogLine) error {
	j.written++
	if j.failAt > 0 && j.written >= j.failAt {
		return errors.New("no space left on device")
	}
	j.lines = append(j.lines, line.Text)
	return nil
}

func (j *memJournal) Close() error {
	j.closes++
	return nil
}
