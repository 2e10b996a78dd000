package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/uartwatch"
	"github.com/allbin/uartwatch/internal/tui/styles"
)

type StatusBar struct {
	portPath  string
	sessionID string
	baudRate  int
	state     uartwatch.State
	err       error
	width     int

	lines   int
	macs    int
	lastMAC string
	stopped bool
}

func NewStatusBar(portPath string, baudRate int) *StatusBar {
	return &StatusBar{
		portPath: portPath,
		baudRate: baudRate,
		state:    uartwatch.StateDisconnected,
	}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

// SetState records a session transition. A reconnect to a different
// device updates the port shown.
func (sb *StatusBar) SetState(change uartwatch.StateChange) {
	if change.Port != "" {
		sb.portPath = change.Port
	}
	sb.sessionID = change.SessionID
	sb.state = change.To
	switch {
	case change.Err != nil:
		sb.err = change.Err
	case change.To == uartwatch.StateStreaming:
		sb.err = nil
	}
}

func (sb *StatusBar) State() uartwatch.State {
	return sb.state
}

func (sb *StatusBar) Err() error {
	return sb.err
}

func (sb *StatusBar) CountLine() {
	sb.lines++
}

func (sb *StatusBar) RecordSignals(c uartwatch.Classification) {
	if mac, ok := c.MAC(); ok {
		sb.macs++
		sb.lastMAC = mac
	}
}

// SetStopped marks the monitor as finished; the view stays until quit
func (sb *StatusBar) SetStopped(err error) {
	sb.stopped = true
	if err != nil {
		sb.err = err
	}
}

// statusText describes the connection for the left-hand section
func (sb *StatusBar) statusText() string {
	switch {
	case sb.stopped:
		return "stopped"
	case sb.state == uartwatch.StateDisconnected && sb.portPath == "":
		return "waiting for device"
	case sb.state == uartwatch.StateDisconnected:
		return "disconnected"
	default:
		return sb.state.String()
	}
}

// Render draws the single-line status bar
func (sb *StatusBar) Render(following bool, timestamp string) string {
	terminalWidth := sb.width
	if terminalWidth <= 0 {
		terminalWidth = 80
	}

	modeText, modeColor := "FOLLOW", styles.Blue
	if !following {
		modeText, modeColor = "PAUSED", styles.Peach
	}
	mode := lipgloss.NewStyle().
		Foreground(styles.Base).
		Background(modeColor).
		Bold(true).
		Padding(0, 1).
		Render(modeText)

	portPath := sb.portPath
	if portPath == "" {
		portPath = "-"
	}
	port := lipgloss.NewStyle().
		Foreground(styles.Mauve).
		Bold(true).
		Padding(0, 1).
		Render(portPath)

	indicator := styles.StateStyle(sb.state).Render(styles.StateIndicator(sb.state, sb.err != nil && sb.state != uartwatch.StateStreaming))
	status := lipgloss.NewStyle().
		Foreground(styles.Subtext0).
		Padding(0, 1).
		Render(sb.statusText())

	divider := lipgloss.NewStyle().
		Foreground(styles.Surface2).
		Padding(0, 1).
		Render("│")

	leftParts := []string{mode, port, indicator, status}
	if sb.lastMAC != "" {
		leftParts = append(leftParts, divider, styles.MACStyle.Render(sb.lastMAC))
	}
	leftSide := lipgloss.JoinHorizontal(lipgloss.Left, leftParts...)

	details := lipgloss.NewStyle().
		Foreground(styles.Subtext0).
		Padding(0, 1).
		Render(fmt.Sprintf("⚡ %d baud  %d lines  %d MAC", sb.baudRate, sb.lines, sb.macs))
	clock := lipgloss.NewStyle().
		Foreground(styles.Subtext1).
		Padding(0, 1).
		Render(timestamp)
	rightSide := lipgloss.JoinHorizontal(lipgloss.Left, details, divider, clock)

	spacerWidth := max(terminalWidth-lipgloss.Width(leftSide)-lipgloss.Width(rightSide), 1)
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	return lipgloss.NewStyle().
		Foreground(styles.Text).
		Background(styles.Surface0).
		Width(terminalWidth).
		Render(lipgloss.JoinHorizontal(lipgloss.Left, leftSide, spacer, rightSide))
}

// ErrorLine renders the last error under the status bar, or "" if none
func (sb *StatusBar) ErrorLine() string {
	if sb.err == nil {
		return ""
	}
	return lipgloss.NewStyle().Foreground(styles.Red).Render("✗ " + sb.err.Error())
}
