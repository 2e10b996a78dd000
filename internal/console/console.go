// Package console prints a session's lines, notices and connection status
// to a terminal.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/uartwatch"
	"github.com/allbin/uartwatch/internal/tui/styles"
)

// Printer is a uartwatch.Sink writing human-readable output
type Printer struct {
	mu    sync.Mutex
	out   io.Writer
	plain bool
	quiet bool
}

var _ uartwatch.Sink = (*Printer)(nil)

// Option configures a Printer
type Option func(*Printer)

// WithQuiet suppresses the raw line echo; notices and status still print
func WithQuiet(quiet bool) Option {
	return func(p *Printer) { p.quiet = quiet }
}

// WithPlain disables styling entirely
func WithPlain(plain bool) Option {
	return func(p *Printer) { p.plain = plain }
}

// New creates a printer on out. Styling follows the colour profile lipgloss
// detects for the terminal unless WithPlain is given.
func New(out io.Writer, opts ...Option) *Printer {
	p := &Printer{out: out}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Printer) render(s lipgloss.Style, text string) string {
	if p.plain {
		return text
	}
	return s.Render(text)
}

func (p *Printer) HandleLine(line uartwatch.LogLine) {
	if p.quiet {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, line.Text)
}

func (p *Printer) HandleSignals(c uartwatch.Classification) {
	notice := uartwatch.FormatNotice(c)
	if len(notice) == 0 {
		return
	}

	mac, hasMAC := c.MAC()
	host, hasHost := c.Host()

	// Highlight the extracted values on the notice lines, never inside the
	// echoed log text.
	styled := make([]string, len(notice))
	for i, line := range notice {
		styled[i] = line
		if strings.HasPrefix(line, "    Log: ") {
			continue
		}
		if hasMAC {
			line = strings.Replace(line, "WiFi MAC Address:", p.render(styles.NoticeStyle, "WiFi MAC Address:"), 1)
			line = strings.Replace(line, mac, p.render(styles.MACStyle, mac), 1)
		}
		if hasHost {
			env := string(host.Environment)
			line = strings.Replace(line, "host: "+host.Value, "host: "+p.render(styles.HostStyle, host.Value), 1)
			line = strings.Replace(line, "found: "+host.Value, "found: "+p.render(styles.HostStyle, host.Value), 1)
			line = strings.Replace(line, "env: "+env, "env: "+p.render(styles.EnvironmentStyle(host.Environment), env), 1)
		}
		styled[i] = line
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out)
	for _, line := range styled {
		fmt.Fprintln(p.out, line)
	}
	fmt.Fprintln(p.out)
}

func (p *Printer) HandleState(change uartwatch.StateChange) {
	var msg string
	switch {
	case change.To == uartwatch.StateConnecting:
		msg = p.info(fmt.Sprintf("Connecting to %s...", change.Port))
	case change.To == uartwatch.StateStreaming:
		msg = p.render(styles.SuccessStyle, "[✓]") + " Connected successfully!"
	case change.From == uartwatch.StateConnecting && change.To == uartwatch.StateDisconnected:
		msg = p.render(styles.ErrorStyle, "[✗]") + fmt.Sprintf(" Failed to connect: %v", change.Err)
	case change.To == uartwatch.StateClosing && change.Err != nil:
		msg = "\n" + p.info("Device disconnected")
	case change.To == uartwatch.StateDisconnected:
		msg = p.info("Connection closed")
	default:
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, msg)
}

func (p *Printer) info(text string) string {
	return p.render(styles.InfoStyle, "[*]") + " " + text
}
