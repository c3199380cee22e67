package dummy

import (
	"io"
	"net"

	"github.com/indigo-web/bufreader/internal/unreader"
	"github.com/indigo-web/bufreader/transport"
)

var _ transport.Client = new(Client)

// Client returns the pieces it was initialised with one by one, followed by io.EOF, unless
// set to loop the reads. It also journals all the reads, making it suitable to check what
// exactly was fetched from it.
type Client struct {
	unreader unreader.Unreader
	closed   bool
	loop     bool
	pointer  int
	reads    int
	err      error
	data     [][]byte
}

func NewMockClient(data ...[]byte) *Client {
	return &Client{
		data: data,
	}
}

// NewMockClientString is a shorthand for NewMockClient with the string pieces.
func NewMockClientString(data ...string) *Client {
	pieces := make([][]byte, len(data))
	for i, piece := range data {
		pieces[i] = []byte(piece)
	}

	return NewMockClient(pieces...)
}

func (c *Client) Read() (data []byte, err error) {
	if c.closed {
		return nil, io.EOF
	}

	return c.unreader.PendingOr(c.next)
}

func (c *Client) next() ([]byte, error) {
	if c.pointer >= len(c.data) {
		if !c.loop || len(c.data) == 0 {
			if c.err != nil {
				return nil, c.err
			}

			return nil, io.EOF
		}

		c.pointer = 0
	}

	piece := c.data[c.pointer]
	c.pointer++
	c.reads++

	return piece, nil
}

func (c *Client) Pushback(takeback []byte) {
	c.unreader.Unread(takeback)
}

// Pending returns the data preserved by Pushback.
func (c *Client) Pending() []byte {
	return c.unreader.Pending()
}

// Reads returns how many pieces were handed out, pushed back data not counted.
func (c *Client) Reads() int {
	return c.reads
}

func (*Client) Remote() net.Addr {
	return nil
}

func (c *Client) Close() error {
	c.closed = true
	return nil
}

// LoopReads makes the client start over instead of returning io.EOF.
func (c *Client) LoopReads() *Client {
	c.loop = true
	return c
}

// FailWith makes the client return the error instead of io.EOF once the pieces are over.
func (c *Client) FailWith(err error) *Client {
	c.err = err
	return c
}
