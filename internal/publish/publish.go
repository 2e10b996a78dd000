// Package publish forwards extracted signals to NATS subjects.
package publish

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/allbin/uartwatch"
)

// DefaultSubject is the subject prefix events are published under
const DefaultSubject = "uartwatch.signals"

// Event is the payload published for every extracted signal
type Event struct {
	Session     string    `json:"session" msgpack:"session"`
	Port        string    `json:"port" msgpack:"port"`
	Seq         uint64    `json:"seq" msgpack:"seq"`
	Time        time.Time `json:"time" msgpack:"time"`
	Kind        string    `json:"kind" msgpack:"kind"`
	Value       string    `json:"value" msgpack:"value"`
	Environment string    `json:"environment,omitempty" msgpack:"environment,omitempty"`
	Line        string    `json:"line" msgpack:"line"`
}

// Encoding selects the wire format of events
type Encoding string

const (
	EncodingJSON    Encoding = "json"
	EncodingMsgpack Encoding = "msgpack"
)

// ParseEncoding validates an encoding name
func ParseEncoding(name string) (Encoding, error) {
	switch Encoding(strings.ToLower(name)) {
	case EncodingJSON, "":
		return EncodingJSON, nil
	case EncodingMsgpack:
		return EncodingMsgpack, nil
	default:
		return "", fmt.Errorf("unknown encoding %q (valid: json, msgpack)", name)
	}
}

func (e Encoding) marshal(ev Event) ([]byte, error) {
	if e == EncodingMsgpack {
		return msgpack.Marshal(ev)
	}
	return json.Marshal(ev)
}

// Publisher is the subset of *nats.Conn the sink needs
type Publisher interface {
	Publish(subject string, data []byte) error
}

var _ Publisher = (*nats.Conn)(nil)

// Sink publishes one event per extracted signal to <subject>.<kind>.
// Lines and failed publishes never interrupt the session; errors are logged.
type Sink struct {
	pub      Publisher
	subject  string
	encoding Encoding
	logger   *slog.Logger

	mu      sync.Mutex
	port    string
	session string
}

var _ uartwatch.Sink = (*Sink)(nil)

// NewSink creates a sink publishing under subject
func NewSink(pub Publisher, subject string, encoding Encoding, logger *slog.Logger) *Sink {
	if subject == "" {
		subject = DefaultSubject
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Sink{pub: pub, subject: subject, encoding: encoding, logger: logger}
}

// Connect dials NATS at url and returns the connection and a sink on it.
// The caller owns the connection and should Drain it on shutdown.
func Connect(url, subject string, encoding Encoding, logger *slog.Logger) (*nats.Conn, *Sink, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	nc, err := nats.Connect(url,
		nats.Name("uartwatch"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to nats at %s: %w", url, err)
	}
	return nc, NewSink(nc, subject, encoding, logger), nil
}

func (s *Sink) HandleLine(uartwatch.LogLine) {}

func (s *Sink) HandleState(change uartwatch.StateChange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.port = change.Port
	s.session = change.SessionID
}

func (s *Sink) HandleSignals(c uartwatch.Classification) {
	s.mu.Lock()
	port, session := s.port, s.session
	s.mu.Unlock()

	for _, sig := range c.Signals {
		ev := Event{
			Session:     session,
			Port:        port,
			Seq:         c.Line.Seq,
			Time:        c.Line.Time,
			Kind:        sig.Kind.String(),
			Value:       sig.Value,
			Environment: string(sig.Environment),
			Line:        c.Line.Text,
		}
		data, err := s.encoding.marshal(ev)
		if err != nil {
			s.logger.Warn("failed to encode event", "kind", ev.Kind, "error", err)
			continue
		}

		subject := s.subject + "." + ev.Kind
		if err := s.pub.Publish(subject, data); err != nil {
			s.logger.Warn("failed to publish event", "subject", subject, "error", err)
			continue
		}
		s.logger.Debug("published event", "subject", subject, "value", ev.Value)
	}
}
