// Package tui renders a running monitor as a full-screen terminal view.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/allbin/uartwatch"
	"github.com/allbin/uartwatch/internal/tui/models"
)

// Sink forwards session output to a running program
type Sink struct {
	send func(tea.Msg)
}

var _ uartwatch.Sink = Sink{}

func NewSink(send func(tea.Msg)) Sink {
	return Sink{send: send}
}

func (s Sink) HandleLine(line uartwatch.LogLine)        { s.send(models.LineMsg(line)) }
func (s Sink) HandleSignals(c uartwatch.Classification) { s.send(models.SignalsMsg(c)) }
func (s Sink) HandleState(change uartwatch.StateChange) { s.send(models.StateMsg(change)) }

// Options describe what the status bar shows before the first session
type Options struct {
	Port     string
	BaudRate int
	History  int
}

// Run starts the view and calls monitor on its own goroutine with a sink
// feeding the view. Quitting the view cancels monitor's context; Run
// returns once monitor has returned.
func Run(ctx context.Context, opts Options, monitor func(ctx context.Context, sink uartwatch.Sink) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := models.NewMonitorModel(opts.Port, opts.BaudRate, opts.History)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	done := make(chan error, 1)
	go func() {
		err := monitor(ctx, NewSink(p.Send))
		done <- err
		p.Send(models.StoppedMsg{Err: err})
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		// Interrupted from outside, e.g. SIGTERM; not an error
		err = nil
	}
	cancel()
	return errors.Join(err, <-done)
}
