package body

import (
	"errors"
	"io"
	"math"

	"github.com/indigo-web/bufreader/bufreader"
	"github.com/indigo-web/bufreader/config"
	"github.com/indigo-web/bufreader/transport"
	"github.com/indigo-web/chunkedbody"
)

var (
	ErrBodyTooLarge         = errors.New("body too large")
	ErrInvalidContentLength = errors.New("invalid content length")
)

// Body turns request bodies arriving over the client into bounded readers. The client is
// shared with whatever reads the stream next, so bytes past the body are always pushed
// back into it.
type Body struct {
	cfg       config.Body
	readerCfg config.Reader
	plain     plainBodyReader
	chunked   chunkedBodyReader
}

func New(client transport.Client, cfg config.Body, readerCfg config.Reader) *Body {
	return &Body{
		cfg:       cfg,
		readerCfg: readerCfg,
		plain:     plainBodyReader{client: client},
		chunked:   chunkedBodyReader{client: client, maxBodyLen: cfg.MaxSize},
	}
}

// Init returns a reader over the next body. Plain bodies are bounded by their length,
// chunked ones by the configured maximal body size. The previously returned reader must
// be exhausted first, otherwise its leftovers are treated as the beginning of the new body.
func (b *Body) Init(contentLength int64, chunked bool) (*bufreader.Reader, error) {
	if chunked {
		b.chunked.init()
		// one extra byte lets the pull notice bodies crossing the limit
		return bufreader.NewFromConfig(b.chunked.read, addint64(b.cfg.MaxSize, 1), b.readerCfg), nil
	}

	switch {
	case contentLength < 0:
		return nil, ErrInvalidContentLength
	case contentLength > b.cfg.MaxSize:
		return nil, ErrBodyTooLarge
	}

	return bufreader.NewFromConfig(b.plain.read, contentLength, b.readerCfg), nil
}

type plainBodyReader struct {
	client transport.Client
}

// read returns at most n bytes of the next piece, pushing the rest back. The reader takes
// care of never asking for more than the body contains.
func (p *plainBodyReader) read(n int) (body []byte, err error) {
	data, err := p.client.Read()
	if len(data) > n {
		p.client.Pushback(data[n:])
		data = data[:n]
	}

	// the client reuses its buffer on the following reads
	return clone(data), err
}

type chunkedBodyReader struct {
	client               transport.Client
	parser               *chunkedbody.Parser
	maxBodyLen, received int64
	pending              []byte
	done                 bool
}

func (c *chunkedBodyReader) init() {
	c.parser = chunkedbody.NewParser(chunkedbody.DefaultSettings())
	c.received = 0
	c.pending = nil
	c.done = false
}

func (c *chunkedBodyReader) read(n int) (body []byte, err error) {
	for len(c.pending) == 0 {
		if c.done {
			return nil, io.EOF
		}

		data, err := c.client.Read()
		switch {
		case err == io.EOF:
			return nil, io.ErrUnexpectedEOF
		case err != nil:
			return nil, err
		}

		chunk, extra, err := c.parser.Parse(data, false)
		switch err {
		case nil:
		case io.EOF:
			c.done = true
		default:
			return nil, err
		}

		c.client.Pushback(extra)
		c.pending = chunk
	}

	body = c.pending[:min(n, len(c.pending))]
	c.pending = c.pending[len(body):]

	c.received += int64(len(body))
	if c.received > c.maxBodyLen {
		return nil, ErrBodyTooLarge
	}

	return clone(body), nil
}

func clone(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}

	return append(make([]byte, 0, len(b)), b...)
}

func addint64(x, y int64) int64 {
	if x > math.MaxInt64-y {
		return math.MaxInt64
	}

	return x + y
}
