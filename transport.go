package uartwatch

import "time"

// Transport opens byte connections to serial ports
type Transport interface {
	Open(port string, baudRate int, timeout time.Duration) (Conn, error)
}

// Conn is an open, non-blocking byte connection.
//
// Any error from BytesAvailable or ReadAvailable is treated as a transport
// fault (typically the device was unplugged) and ends the session.
type Conn interface {
	BytesAvailable() (int, error)
	ReadAvailable() ([]byte, error)
	Close() error
}

// Discovery enumerates the serial ports currently present
type Discovery interface {
	ListPorts() ([]string, error)
}

// TransportFunc adapts a function to the Transport interface
type TransportFunc func(port string, baudRate int, timeout time.Duration) (Conn, error)

func (f TransportFunc) Open(port string, baudRate int, timeout time.Duration) (Conn, error) {
	return f(port, baudRate, timeout)
}

// DiscoveryFunc adapts a function to the Discovery interface
type DiscoveryFunc func() ([]string, error)

func (f DiscoveryFunc) ListPorts() ([]string, error) {
	return f()
}
