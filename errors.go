package rustis

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned when sending through a closed connection or
	// client.
	ErrClosed = errors.New("rustis: closed")

	// ErrNoServers is returned when a client is configured without
	// addresses.
	ErrNoServers = errors.New("rustis: no servers configured")
)

// ConnectionError wraps an I/O failure on a connection. The connection
// is broken once this is returned; the pool destroys it.
type ConnectionError struct {
	Op  string // "dial", "write", "read"
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("rustis: connection error during %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
