package models

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/uartwatch"
	"github.com/allbin/uartwatch/internal/tui/components"
	"github.com/allbin/uartwatch/internal/tui/keys"
	"github.com/allbin/uartwatch/internal/tui/styles"
)

// Messages carrying sink callbacks into the update loop
type (
	LineMsg    uartwatch.LogLine
	SignalsMsg uartwatch.Classification
	StateMsg   uartwatch.StateChange

	// StoppedMsg is sent once the monitor goroutine has returned
	StoppedMsg struct{ Err error }

	tickMsg time.Time
)

// MonitorModel is the Bubble Tea model of the monitor view
type MonitorModel struct {
	terminal  *components.Terminal
	statusBar *components.StatusBar
	help      help.Model
	keys      keys.MonitorKeys
	ready     bool
	now       func() time.Time
}

func NewMonitorModel(portPath string, baudRate, history int) *MonitorModel {
	return &MonitorModel{
		terminal:  components.NewTerminal(80, 20, history),
		statusBar: components.NewStatusBar(portPath, baudRate),
		help:      help.New(),
		keys:      keys.NewMonitorKeys(),
		now:       time.Now,
	}
}

func (m *MonitorModel) Terminal() *components.Terminal {
	return m.terminal
}

func (m *MonitorModel) StatusBar() *components.StatusBar {
	return m.statusBar
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *MonitorModel) Init() tea.Cmd {
	return tick()
}

func (m *MonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Content border and status bar take one line each, the error line one more
		m.terminal.SetSize(msg.Width, max(msg.Height-3, 1))
		m.statusBar.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		// Redraw the clock
		return m, tick()

	case LineMsg:
		m.terminal.AddLine(uartwatch.LogLine(msg))
		m.statusBar.CountLine()

	case SignalsMsg:
		c := uartwatch.Classification(msg)
		m.terminal.MarkSignals(c)
		m.statusBar.RecordSignals(c)

	case StateMsg:
		m.statusBar.SetState(uartwatch.StateChange(msg))

	case StoppedMsg:
		m.statusBar.SetStopped(msg.Err)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Clear):
			m.terminal.Clear()
		case key.Matches(msg, m.keys.Follow):
			m.terminal.ToggleFollow()
		case key.Matches(msg, m.keys.ToggleTimestamps):
			m.terminal.ToggleTimestamps()
		case key.Matches(msg, m.keys.ToggleSignals):
			m.terminal.ToggleSignalsOnly()
		default:
			return m, m.terminal.Update(msg)
		}

	case tea.MouseMsg:
		return m, m.terminal.Update(msg)
	}

	return m, nil
}

func (m *MonitorModel) View() string {
	content := styles.MutedStyle.Render("Waiting for data...")
	if m.ready && len(m.terminal.Entries()) > 0 {
		content = m.terminal.View()
	}

	sections := []string{styles.ContentBorderStyle.Render(content)}
	if m.help.ShowAll {
		helpView := lipgloss.JoinVertical(lipgloss.Left,
			styles.TitleStyle.Render("uartwatch"),
			m.help.View(m.keys),
		)
		sections = append(sections, styles.HelpStyle.Render(helpView))
	}
	sections = append(sections, m.statusBar.Render(m.terminal.Following(), m.now().Format("15:04:05")))
	if errLine := m.statusBar.ErrorLine(); errLine != "" {
		sections = append(sections, errLine)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
