package uartwatch

import (
	"errors"
	"fmt"
)

// Predefined error types for robust error handling
var (
	ErrTransportFault   = errors.New("serial transport fault")
	ErrInvalidBaudRate  = errors.New("invalid baud rate")
	ErrInvalidConfig    = errors.New("invalid monitor configuration")
	ErrUnknownExtractor = errors.New("unknown extractor")

	// Session lifecycle errors
	ErrSessionOpen    = errors.New("session already open")
	ErrSessionNotOpen = errors.New("session is not streaming")
)

// ConnectError reports a failed attempt to open the transport for a port.
// The caller decides whether to retry; it is never fatal on its own.
type ConnectError struct {
	Port string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Port, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}
