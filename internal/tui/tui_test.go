package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allbin/uartwatch"
	"github.com/allbin/uartwatch/internal/tui/models"
)

func TestSinkSendsMessages(t *testing.T) {
	var msgs []tea.Msg
	s := NewSink(func(msg tea.Msg) { msgs = append(msgs, msg) })

	s.HandleState(uartwatch.StateChange{Port: "/dev/ttyUSB0", To: uartwatch.StateStreaming})
	s.HandleLine(uartwatch.LogLine{Seq: 1, Text: "boot ok"})
	s.HandleSignals(uartwatch.Classification{Line: uartwatch.LogLine{Seq: 1}})

	require.Len(t, msgs, 3)
	assert.IsType(t, models.StateMsg{}, msgs[0])
	assert.Equal(t, models.LineMsg{Seq: 1, Text: "boot ok"}, msgs[1])
	assert.IsType(t, models.SignalsMsg{}, msgs[2])
}

func update(m *models.MonitorModel, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestMonitorModel(t *testing.T) {
	m := models.NewMonitorModel("/dev/ttyUSB0", 115200, 100)
	now := time.Now()
	mac := uartwatch.LogLine{Seq: 2, Text: "wifi:mode : sta (aa:bb:cc:dd:ee:ff)", Time: now}

	update(m,
		tea.WindowSizeMsg{Width: 140, Height: 20},
		models.StateMsg{Port: "/dev/ttyUSB0", From: uartwatch.StateConnecting, To: uartwatch.StateStreaming},
		models.LineMsg{Seq: 1, Text: "boot ok", Time: now},
		models.LineMsg(mac),
		models.SignalsMsg{Line: mac, Signals: []uartwatch.Signal{{Kind: uartwatch.SignalMAC, Value: "AA:BB:CC:DD:EE:FF"}}},
	)

	require.Len(t, m.Terminal().Entries(), 2)
	view := m.View()
	assert.Contains(t, view, "boot ok")
	assert.Contains(t, view, "MAC AA:BB:CC:DD:EE:FF")
	assert.Contains(t, view, "streaming")

	update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.True(t, m.Terminal().GetDisplayMode().SignalsOnly)
	assert.NotContains(t, m.View(), "boot ok")

	update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	assert.False(t, m.Terminal().Following())
	assert.Contains(t, m.View(), "PAUSED")

	update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	assert.Empty(t, m.Terminal().Entries())
	assert.Contains(t, m.View(), "Waiting for data...")
}

func TestMonitorModelQuit(t *testing.T) {
	m := models.NewMonitorModel("", 115200, 0)
	cmd := update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestMonitorModelStopped(t *testing.T) {
	m := models.NewMonitorModel("/dev/ttyACM0", 9600, 0)
	update(m,
		tea.WindowSizeMsg{Width: 140, Height: 10},
		models.StoppedMsg{},
	)
	assert.Contains(t, m.View(), "stopped")
}
