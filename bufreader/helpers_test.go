package bufreader

import (
	"bytes"
	"errors"
	"strings"
)

var errWouldHang = errors.New("would hang")

const (
	line     = "123456789ABCDEF\n"
	boundary = "--boundary1234567890--"
)

var testData = []byte(
	strings.Repeat(line, 64*64) + boundary +
		strings.Repeat(line, 64*63) + boundary +
		strings.Repeat(line, 64*62) + boundary,
)

// glitchy fails on unbounded reads and on any read past the data, so the reader must never
// ask for more than the ceiling allows.
func glitchy(data []byte) Pull {
	return func(n int) (chunk []byte, err error) {
		if n <= 0 || len(data) == 0 {
			return nil, errWouldHang
		}

		n = min(n, len(data))
		chunk, data = data[:n:n], data[n:]
		return chunk, nil
	}
}

// fragmented returns at most half of the requested bytes, and a single byte for requests
// below 8 bytes.
func fragmented(data []byte) Pull {
	source := glitchy(data)

	return func(n int) ([]byte, error) {
		switch {
		case n <= 1:
		case n < 8:
			n = 1
		default:
			n /= 2
		}

		return source(n)
	}
}

// pieces returns the pieces one by one, regardless of the requested size (as long as it
// isn't exceeded), then EOF.
func pieces(p ...string) Pull {
	return func(n int) ([]byte, error) {
		if len(p) == 0 {
			return nil, nil
		}

		piece := p[0]
		if len(piece) > n {
			p[0] = piece[n:]
			piece = piece[:n]
		} else {
			p = p[1:]
		}

		return []byte(piece), nil
	}
}

// journal records every request to the pull and every byte delivered by it.
type journal struct {
	requests  []int
	delivered int
}

func (j *journal) wrap(pull Pull) Pull {
	return func(n int) ([]byte, error) {
		j.requests = append(j.requests, n)
		chunk, err := pull(n)
		j.delivered += len(chunk)
		return chunk, err
	}
}

func newTestReader(chunkSize int) *Reader {
	return New(glitchy(testData), int64(len(testData)), WithChunkSize(chunkSize))
}

func newShorterReader() *Reader {
	return New(glitchy(testData), 1024, WithChunkSize(128))
}

func readAll(r *Reader, chunk int) ([]byte, error) {
	var out bytes.Buffer

	for {
		data, err := r.Next(chunk)
		if err != nil {
			return out.Bytes(), err
		}

		if len(data) == 0 {
			return out.Bytes(), nil
		}

		out.Write(data)
	}
}
