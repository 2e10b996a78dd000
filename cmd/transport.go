/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"time"

	"github.com/allbin/uartwatch"
	"github.com/allbin/uartwatch/internal/serialport"
)

// maxReadTimeout is the largest VTIME the line discipline accepts
const maxReadTimeout = 25500 * time.Millisecond

// serialTransport opens real serial devices for a monitor
type serialTransport struct{}

var _ uartwatch.Transport = serialTransport{}

func (serialTransport) Open(port string, baudRate int, timeout time.Duration) (uartwatch.Conn, error) {
	timeout = min(timeout, maxReadTimeout).Truncate(100 * time.Millisecond)
	p, err := serialport.Open(port,
		serialport.WithBaudRate(baudRate),
		serialport.WithReadTimeout(max(timeout, 0)),
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func serialDiscovery() uartwatch.Discovery {
	return uartwatch.DiscoveryFunc(serialport.ListPorts)
}
