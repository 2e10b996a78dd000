package uartwatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMonitor(t *testing.T, transport Transport, discovery Discovery, sink Sink) *Monitor {
	t.Helper()
	m, err := NewMonitor(transport, discovery, sink,
		WithPollInterval(time.Millisecond),
		WithDiscoveryInterval(time.Millisecond),
	)
	require.NoError(t, err)
	return m
}

func TestMonitorOneShotWithPort(t *testing.T) {
	conn := &fakeConn{chunks: [][]byte{[]byte("hello\n")}, fault: errUnplugged}
	transport := &fakeTransport{script: []func(string) (Conn, error){connStep(conn)}}
	sink := &recordingSink{}
	m := newTestMonitor(t, transport, nil, sink)

	require.NoError(t, m.Run(context.Background(), "/dev/ttyACM0", false))

	assert.Equal(t, []string{"/dev/ttyACM0"}, transport.openedPorts())
	assert.Equal(t, []int{115200}, transport.bauds)
	assert.Equal(t, []string{"hello"}, sink.texts())
	assert.Equal(t, 1, conn.closeCount())
}

func TestMonitorOneShotOpenFailure(t *testing.T) {
	transport := &fakeTransport{script: []func(string) (Conn, error){errStep(errors.New("permission denied"))}}
	sink := &recordingSink{}
	m := newTestMonitor(t, transport, nil, sink)

	require.NoError(t, m.Run(context.Background(), "/dev/ttyACM0", false))
	assert.Equal(t, []string{"/dev/ttyACM0"}, transport.openedPorts())
	assert.Equal(t, []State{StateConnecting, StateDisconnected}, sink.transitions())
}

func TestMonitorContinuousReconnects(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := &fakeConn{chunks: [][]byte{[]byte("first session\n")}, fault: errUnplugged}
	second := &fakeConn{chunks: [][]byte{[]byte("second session\n")}}
	second.onEmpty = cancel

	transport := &fakeTransport{script: []func(string) (Conn, error){
		connStep(first),
		connStep(second),
	}}
	discovery := &fakeDiscovery{lists: [][]string{
		{"/dev/ttyS0"},
		{"/dev/ttyS0"},
		{"/dev/ttyS0", "/dev/ttyUSB1"},
	}}
	sink := &recordingSink{}
	m := newTestMonitor(t, transport, discovery, sink)

	require.NoError(t, m.Run(ctx, "/dev/ttyUSB0", true))

	assert.Equal(t, []string{"/dev/ttyUSB0", "/dev/ttyUSB1"}, transport.openedPorts())
	assert.Equal(t, []string{"first session", "second session"}, sink.texts())
	assert.Equal(t, 1, first.closeCount())
	assert.Equal(t, 1, second.closeCount())
	assert.Equal(t, StateDisconnected, sink.states[len(sink.states)-1].To)
}

func TestMonitorContinuousRetriesAfterOpenFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := &fakeConn{}
	conn.onEmpty = cancel
	transport := &fakeTransport{script: []func(string) (Conn, error){
		errStep(errors.New("device or resource busy")),
		connStep(conn),
	}}
	discovery := &fakeDiscovery{lists: [][]string{
		{},
		{"/dev/ttyUSB3"},
	}}
	m := newTestMonitor(t, transport, discovery, nil)

	require.NoError(t, m.Run(ctx, "/dev/ttyUSB0", true))
	assert.Equal(t, []string{"/dev/ttyUSB0", "/dev/ttyUSB3"}, transport.openedPorts())
	assert.Equal(t, 1, conn.closeCount())
}

func TestMonitorCancelWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	transport := &fakeTransport{}
	discovery := &fakeDiscovery{lists: [][]string{{"/dev/ttyS0"}}}
	m := newTestMonitor(t, transport, discovery, nil)

	start := time.Now()
	require.NoError(t, m.Run(ctx, "", true))
	assert.Less(t, time.Since(start), time.Second)
	assert.Empty(t, transport.openedPorts())
}

func TestWaitForDevice(t *testing.T) {
	t.Run("lexically first new port", func(t *testing.T) {
		discovery := &fakeDiscovery{lists: [][]string{
			{"/dev/ttyS0"},
			{"/dev/ttyUSB2", "/dev/ttyS0", "/dev/ttyACM0"},
		}}
		m := newTestMonitor(t, &fakeTransport{}, discovery, nil)

		port, err := m.WaitForDevice(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "/dev/ttyACM0", port)
	})

	t.Run("baseline listing fails", func(t *testing.T) {
		discovery := &fakeDiscovery{
			errs: []error{errors.New("permission denied")},
			lists: [][]string{
				nil,
				{"/dev/ttyS0"},
				{"/dev/ttyS0"},
				{"/dev/ttyS0", "/dev/ttyUSB0"},
			},
		}
		m := newTestMonitor(t, &fakeTransport{}, discovery, nil)

		port, err := m.WaitForDevice(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "/dev/ttyUSB0", port)
	})

	t.Run("port that vanished and returned", func(t *testing.T) {
		discovery := &fakeDiscovery{lists: [][]string{
			{"/dev/ttyUSB0"},
			{},
			{"/dev/ttyUSB0"},
		}}
		m := newTestMonitor(t, &fakeTransport{}, discovery, nil)

		port, err := m.WaitForDevice(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "/dev/ttyUSB0", port)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		m := newTestMonitor(t, &fakeTransport{}, &fakeDiscovery{}, nil)

		_, err := m.WaitForDevice(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("no discovery", func(t *testing.T) {
		m := newTestMonitor(t, &fakeTransport{}, nil, nil)
		_, err := m.WaitForDevice(context.Background())
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestMultiSink(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	sink := MultiSink{a, b}

	sink.HandleLine(LogLine{Seq: 1, Text: "x"})
	sink.HandleSignals(Classification{Signals: []Signal{{Kind: SignalMAC}}})
	sink.HandleState(StateChange{To: StateStreaming})

	for _, s := range []*recordingSink{a, b} {
		assert.Equal(t, []string{"x"}, s.texts())
		assert.Len(t, s.signals, 1)
		assert.Equal(t, []State{StateStreaming}, s.transitions())
	}
}
