package uartwatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle state of a Session
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateStreaming
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateStreaming:
		return "streaming"
	case StateClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// Outcome tells why Pump returned
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCancelled
	OutcomeTransportFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeTransportFailed:
		return "transport failed"
	default:
		return "none"
	}
}

// Session owns one connect, stream, disconnect cycle on a single port.
//
// The transport connection, line buffer and journal belong to the session
// alone and are released by Close. A Session is driven from one goroutine.
type Session struct {
	port      string
	id        string
	config    Config
	transport Transport
	sink      Sink
	logger    *slog.Logger

	state       State
	conn        Conn
	journal     Journal
	reassembler *Reassembler
	classifier  *Classifier
}

// NewSession creates a disconnected session for port
func NewSession(port string, transport Transport, sink Sink, opts ...Option) (*Session, error) {
	config, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return newSession(port, transport, sink, config), nil
}

func newSession(port string, transport Transport, sink Sink, config Config) *Session {
	if sink == nil {
		sink = discardSink{}
	}
	return &Session{
		port:        port,
		config:      config,
		transport:   transport,
		sink:        sink,
		logger:      config.Logger,
		state:       StateDisconnected,
		reassembler: NewReassembler(),
		classifier:  NewClassifier(config.Extractors...),
	}
}

// Port returns the device path the session was created for
func (s *Session) Port() string { return s.port }

// ID returns the identifier of the current or last connection attempt
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state
func (s *Session) State() State { return s.state }

// Open connects the transport and starts the journal.
//
// A failed open returns a *ConnectError and leaves the session
// Disconnected; the caller decides whether to retry.
func (s *Session) Open() error {
	if s.state != StateDisconnected {
		return ErrSessionOpen
	}

	s.id = uuid.NewString()
	s.reassembler.Reset()
	s.setState(StateConnecting, nil)
	s.logger.Info("connecting", "port", s.port, "baud", s.config.BaudRate, "session", s.id)

	conn, err := s.transport.Open(s.port, s.config.BaudRate, s.config.OpenTimeout)
	if err != nil {
		connectErr := &ConnectError{Port: s.port, Err: err}
		s.logger.Warn("failed to connect", "port", s.port, "error", err)
		s.setState(StateDisconnected, connectErr)
		return connectErr
	}
	s.conn = conn

	if s.config.Journal != nil {
		journal, err := s.config.Journal(s.port, s.id)
		if err != nil {
			s.logger.Warn("log file unavailable, continuing without it", "port", s.port, "error", err)
		} else {
			s.journal = journal
		}
	}

	s.setState(StateStreaming, nil)
	s.logger.Info("connected", "port", s.port, "session", s.id)
	return nil
}

// Pump streams lines until ctx is cancelled or the transport fails.
//
// When no bytes are waiting it sleeps for the poll interval. A read fault
// is not retried: the session closes itself and reports
// OutcomeTransportFailed with an error wrapping ErrTransportFault.
func (s *Session) Pump(ctx context.Context) (Outcome, error) {
	if s.state != StateStreaming {
		return OutcomeNone, ErrSessionNotOpen
	}

	for {
		if ctx.Err() != nil {
			s.logger.Info("stopping session", "port", s.port, "session", s.id)
			s.setState(StateClosing, nil)
			if err := s.Close(); err != nil {
				s.logger.Warn("error closing session", "port", s.port, "error", err)
			}
			return OutcomeCancelled, nil
		}

		chunk, err := s.poll()
		if err != nil {
			fault := fmt.Errorf("%w: %w", ErrTransportFault, err)
			s.logger.Info("device disconnected", "port", s.port, "session", s.id, "error", err)
			s.setState(StateClosing, fault)
			if err := s.Close(); err != nil {
				s.logger.Debug("error closing faulted session", "port", s.port, "error", err)
			}
			return OutcomeTransportFailed, fault
		}

		if len(chunk) == 0 {
			sleepContext(ctx, s.config.PollInterval)
			continue
		}
		s.dispatch(chunk)
	}
}

// poll drains whatever the transport currently has buffered
func (s *Session) poll() ([]byte, error) {
	n, err := s.conn.BytesAvailable()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return s.conn.ReadAvailable()
}

func (s *Session) dispatch(chunk []byte) {
	for line := range s.reassembler.Feed(chunk) {
		s.sink.HandleLine(line)

		if s.journal != nil {
			if err := s.journal.Record(line); err != nil {
				s.logger.Warn("log file write failed, disabling it", "port", s.port, "error", err)
				s.journal.Close()
				s.journal = nil
			}
		}

		if c := s.classifier.Classify(line); c.Found() {
			s.sink.HandleSignals(c)
		}
	}
}

// Close releases the transport and finalizes the journal.
// It is idempotent and safe to call when Open never succeeded.
func (s *Session) Close() error {
	if s.conn == nil && s.journal == nil {
		if s.state != StateDisconnected {
			s.setState(StateDisconnected, nil)
		}
		return nil
	}

	if s.state != StateClosing {
		s.setState(StateClosing, nil)
	}

	var errs []error
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close transport: %w", err))
		}
		s.conn = nil
	}
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close log file: %w", err))
		}
		s.journal = nil
	}

	s.setState(StateDisconnected, nil)
	s.logger.Debug("session closed", "port", s.port, "session", s.id)
	return errors.Join(errs...)
}

func (s *Session) setState(to State, err error) {
	from := s.state
	s.state = to
	s.sink.HandleState(StateChange{
		Port:      s.port,
		SessionID: s.id,
		From:      from,
		To:        to,
		Err:       err,
	})
}

// sleepContext waits for d or until ctx is done, whichever comes first
func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
