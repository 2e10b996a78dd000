package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/allbin/uartwatch"
)

// DefaultHistory is how many lines the terminal keeps for scrollback
const DefaultHistory = 5000

type Terminal struct {
	viewport   viewport.Model
	formatter  *LineFormatter
	entries    []Entry
	maxEntries int
	follow     bool
}

func NewTerminal(width, height, maxEntries int) *Terminal {
	if maxEntries <= 0 {
		maxEntries = DefaultHistory
	}
	return &Terminal{
		viewport:   viewport.New(width, height),
		formatter:  NewLineFormatter(true),
		maxEntries: maxEntries,
		follow:     true,
	}
}

func (t *Terminal) SetSize(width, height int) {
	t.viewport.Width = width
	t.viewport.Height = height
	t.refresh()
}

func (t *Terminal) Width() int {
	return t.viewport.Width
}

func (t *Terminal) Entries() []Entry {
	return t.entries
}

// AddLine appends a line, dropping the oldest beyond the history limit
func (t *Terminal) AddLine(line uartwatch.LogLine) {
	t.entries = append(t.entries, Entry{Line: line})
	if over := len(t.entries) - t.maxEntries; over > 0 {
		t.entries = append(t.entries[:0:0], t.entries[over:]...)
	}
	t.refresh()
}

// MarkSignals attaches a classification to the line it was extracted from.
// Signals always follow their line, so the search runs from the end.
func (t *Terminal) MarkSignals(c uartwatch.Classification) {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Line.Seq == c.Line.Seq {
			t.entries[i].Signals = c.Signals
			t.refresh()
			return
		}
	}
	t.entries = append(t.entries, Entry{Line: c.Line, Signals: c.Signals})
	t.refresh()
}

func (t *Terminal) Clear() {
	t.entries = nil
	t.viewport.SetContent("")
}

func (t *Terminal) ToggleTimestamps() {
	t.formatter.ToggleTimestamps()
	t.refresh()
}

func (t *Terminal) ToggleSignalsOnly() {
	t.formatter.ToggleSignalsOnly()
	t.refresh()
}

// ToggleFollow switches between tailing new lines and a fixed scroll position
func (t *Terminal) ToggleFollow() bool {
	t.follow = !t.follow
	if t.follow {
		t.viewport.GotoBottom()
	}
	return t.follow
}

func (t *Terminal) Following() bool {
	return t.follow
}

func (t *Terminal) GetDisplayMode() DisplayMode {
	return t.formatter.GetDisplayMode()
}

func (t *Terminal) refresh() {
	t.viewport.SetContent(strings.Join(t.formatter.FormatEntries(t.entries), "\n"))
	if t.follow {
		t.viewport.GotoBottom()
	}
}

// Update forwards resize and scroll input to the viewport. Scrolling away
// from the bottom pauses following; returning to it resumes.
func (t *Terminal) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch msg.(type) {
	case tea.WindowSizeMsg, tea.KeyMsg, tea.MouseMsg:
		t.viewport, cmd = t.viewport.Update(msg)
		if _, ok := msg.(tea.WindowSizeMsg); !ok {
			t.follow = t.viewport.AtBottom()
		}
	}
	return cmd
}

func (t *Terminal) View() string {
	return t.viewport.View()
}
