package transport

import (
	"errors"
	"net"
	"time"

	"github.com/indigo-web/bufreader/internal/unreader"
)

type Client interface {
	Read() ([]byte, error)
	Pushback([]byte)
	Remote() net.Addr
	Close() error
}

type client struct {
	unreader unreader.Unreader
	conn     net.Conn
	buff     []byte
	timeout  time.Duration
}

// NewClient wraps the connection. Reads are done into buff, therefore data returned by
// Read stays valid only until the next call. A zero timeout disables read deadlines.
func NewClient(conn net.Conn, timeout time.Duration, buff []byte) Client {
	return &client{
		buff:    buff,
		conn:    conn,
		timeout: timeout,
	}
}

// Read returns the data preserved by Pushback, if any, or otherwise reads the connection.
// Timeouts are handled automatically and are reported as ErrTimeout.
func (c *client) Read() ([]byte, error) {
	return c.unreader.PendingOr(c.read)
}

func (c *client) read() ([]byte, error) {
	if c.timeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return nil, err
		}
	}

	n, err := c.conn.Read(c.buff)
	if err != nil && isTimeout(err) {
		err = ErrTimeout
	}

	return c.buff[:n], err
}

// Pushback preserves a chunk of data from the previous read for the next read.
func (c *client) Pushback(b []byte) {
	c.unreader.Unread(b)
}

// Remote returns the remote address of the connection.
func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection.
func (c *client) Close() error {
	return c.conn.Close()
}

var ErrTimeout = errors.New("read timeout")

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
