package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/uartwatch"
	"github.com/allbin/uartwatch/internal/tui/styles"
)

// Entry is one displayed line and whatever was extracted from it
type Entry struct {
	Line    uartwatch.LogLine
	Signals []uartwatch.Signal
}

type DisplayMode struct {
	ShowTimestamps bool
	SignalsOnly    bool
}

type LineFormatter struct {
	mode DisplayMode
}

func NewLineFormatter(showTimestamps bool) *LineFormatter {
	return &LineFormatter{mode: DisplayMode{ShowTimestamps: showTimestamps}}
}

func (f *LineFormatter) GetDisplayMode() DisplayMode {
	return f.mode
}

func (f *LineFormatter) FormatEntry(e Entry) string {
	var parts []string

	if f.mode.ShowTimestamps {
		parts = append(parts, styles.TimestampStyle.Render(fmt.Sprintf("[%s]", e.Line.Time.Format("15:04:05.000"))))
	}

	text := e.Line.Text
	if len(e.Signals) == 0 {
		parts = append(parts, styles.LineStyle.Render(text))
		return strings.Join(parts, " ")
	}

	parts = append(parts, lipgloss.NewStyle().Foreground(styles.Text).Bold(true).Render(text))
	for _, s := range e.Signals {
		parts = append(parts, badge(s))
	}
	return strings.Join(parts, " ")
}

// badge renders a signal as a short tag after the line
func badge(s uartwatch.Signal) string {
	switch s.Kind {
	case uartwatch.SignalMAC:
		return styles.MACStyle.Render("◆ MAC " + s.Value)
	case uartwatch.SignalHost:
		return styles.HostStyle.Render("◆ "+s.Value) + " " +
			styles.EnvironmentStyle(s.Environment).Render(string(s.Environment))
	default:
		return ""
	}
}

// FormatEntries formats entries in order, dropping plain lines in
// signals-only mode
func (f *LineFormatter) FormatEntries(entries []Entry) []string {
	formatted := make([]string, 0, len(entries))
	for _, e := range entries {
		if f.mode.SignalsOnly && len(e.Signals) == 0 {
			continue
		}
		formatted = append(formatted, f.FormatEntry(e))
	}
	return formatted
}

func (f *LineFormatter) ToggleTimestamps() {
	f.mode.ShowTimestamps = !f.mode.ShowTimestamps
}

func (f *LineFormatter) ToggleSignalsOnly() {
	f.mode.SignalsOnly = !f.mode.SignalsOnly
}
