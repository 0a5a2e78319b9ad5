package rustis

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/muenchow/rustis/resp"
)

// Connection is a single connection to a server. It serializes one
// command, flushes it, and reads one reply per Send call; the mutex
// keeps concurrent callers from interleaving request/reply cycles.
type Connection struct {
	conn   net.Conn
	reader *resp.Reader
	writer *resp.Writer

	mu     sync.Mutex
	closed bool
}

// NewConnection wraps an established network connection.
func NewConnection(conn net.Conn) *Connection {
	return &Connection{
		conn:   conn,
		reader: resp.NewReader(conn),
		writer: resp.NewWriter(conn),
	}
}

var _ Sender = (*Connection)(nil)

// Send writes cmd and reads its reply. The context deadline, when set,
// bounds the whole cycle. After an I/O or parse failure the connection
// is marked closed: the reply stream position is unknown and the
// connection cannot be reused.
//
// Store error replies are returned as Values, not Go errors; the
// decode stage surfaces them.
func (c *Connection) Send(ctx context.Context, cmd *resp.Command) (resp.Value, error) {
	if err := ctx.Err(); err != nil {
		return resp.Value{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return resp.Value{}, ErrClosed
	}

	if deadline, ok := ctx.Deadline(); ok {
		c.conn.SetDeadline(deadline)
	} else {
		c.conn.SetDeadline(time.Time{})
	}

	if err := c.writer.WriteCommand(cmd); err != nil {
		c.closed = true
		return resp.Value{}, &ConnectionError{Op: "write", Err: err}
	}
	if err := c.writer.Flush(); err != nil {
		c.closed = true
		return resp.Value{}, &ConnectionError{Op: "write", Err: err}
	}

	value, err := c.reader.ReadValue()
	if err != nil {
		c.closed = true
		return resp.Value{}, &ConnectionError{Op: "read", Err: err}
	}
	return value, nil
}

// IsClosed reports whether the connection has been closed or broken.
func (c *Connection) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close closes the underlying network connection.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}
