package uartwatch

import (
	"context"
	"errors"
	"log/slog"
	"slices"
)

// Monitor supervises sessions across repeated connect and disconnect
// cycles: wait for a device, stream until it goes away, repeat.
type Monitor struct {
	config    Config
	transport Transport
	discovery Discovery
	sink      Sink
	logger    *slog.Logger
}

// NewMonitor creates a monitor. discovery may be nil when Run is always
// given an explicit port in one-shot mode.
func NewMonitor(transport Transport, discovery Discovery, sink Sink, opts ...Option) (*Monitor, error) {
	if transport == nil {
		return nil, ErrInvalidConfig
	}
	config, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if sink == nil {
		sink = discardSink{}
	}
	return &Monitor{
		config:    config,
		transport: transport,
		discovery: discovery,
		sink:      sink,
		logger:    config.Logger,
	}, nil
}

// Run monitors port, or the next device to appear when port is empty.
//
// With continuous false exactly one iteration runs, whatever its outcome.
// With continuous true the monitor waits for a new device after every
// disconnect until ctx is cancelled. Cancellation is a clean exit and
// returns nil; every session is closed before Run returns.
func (m *Monitor) Run(ctx context.Context, port string, continuous bool) error {
	for {
		if port == "" {
			found, err := m.WaitForDevice(ctx)
			if err != nil {
				if ctx.Err() != nil {
					m.logger.Info("exiting")
					return nil
				}
				return err
			}
			port = found
		}

		outcome := m.runOnce(ctx, port)
		if ctx.Err() != nil || outcome == OutcomeCancelled {
			m.logger.Info("exiting")
			return nil
		}
		if !continuous {
			return nil
		}

		m.logger.Info("waiting for reconnection")
		port = ""
	}
}

// runOnce opens one session on port and streams until it ends. The
// session is always closed before returning.
func (m *Monitor) runOnce(ctx context.Context, port string) Outcome {
	session := newSession(port, m.transport, m.sink, m.config)
	defer func() {
		if err := session.Close(); err != nil {
			m.logger.Warn("error closing session", "port", port, "error", err)
		}
	}()

	if err := session.Open(); err != nil {
		return OutcomeNone
	}

	outcome, err := session.Pump(ctx)
	if err != nil && !errors.Is(err, ErrTransportFault) {
		m.logger.Warn("session ended unexpectedly", "port", port, "error", err)
	}
	return outcome
}

// WaitForDevice blocks until a port appears that was not present when the
// wait began, and returns it. When several appear at once the first in
// lexical order wins. List errors are logged and retried.
func (m *Monitor) WaitForDevice(ctx context.Context) (string, error) {
	if m.discovery == nil {
		return "", ErrInvalidConfig
	}

	m.logger.Info("waiting for device")

	// A nil baseline means no listing has succeeded yet; the first one to
	// succeed becomes the baseline instead of reporting every port as new.
	var known map[string]struct{}
	if ports, err := m.discovery.ListPorts(); err != nil {
		m.logger.Warn("failed to list ports", "error", err)
	} else {
		known = toSet(ports)
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		current, err := m.discovery.ListPorts()
		if err != nil {
			m.logger.Warn("failed to list ports", "error", err)
		} else {
			if added := newPorts(known, current); known != nil && len(added) > 0 {
				m.logger.Info("device connected", "port", added[0])
				return added[0], nil
			}
			// Ports that vanished must count as new if they come back.
			known = toSet(current)
		}

		if !sleepContext(ctx, m.config.DiscoveryInterval) {
			return "", ctx.Err()
		}
	}
}

// newPorts returns the sorted members of current missing from known
func newPorts(known map[string]struct{}, current []string) []string {
	var added []string
	for _, p := range current {
		if _, ok := known[p]; !ok {
			added = append(added, p)
		}
	}
	slices.Sort(added)
	return added
}

func toSet(ports []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ports))
	for _, p := range ports {
		set[p] = struct{}{}
	}
	return set
}
