package bufreader

import (
	"bytes"
	"fmt"

	"github.com/indigo-web/bufreader/internal/buffer"
)

// ReadUntil reads up to n bytes, stopping right before the first occurrence of the
// delimiter. A negative n means no limit. The delimiter itself is left unread, unless
// consume is set: then it's skipped, and it's an error if the stream ended before the
// delimiter (ErrDelimiterNotFound) or the delimiter doesn't follow the returned data
// immediately, e.g. because n was hit first (ErrDelimiterMismatch.)
//
// The delimiter may not be empty or longer than the chunk size.
func (r *Reader) ReadUntil(delim []byte, n int, consume bool) ([]byte, error) {
	if err := r.checkDelimiter(delim); err != nil {
		return nil, err
	}

	size := r.normalize(n)
	if size <= r.chunkSize*r.maxJoinChunks {
		return r.readUntil(delim, size, consume)
	}

	// a large size was requested. Avoid momentarily keeping both the chunks and their join
	// in memory at the same time by writing them into a single growing sink instead
	sink := buffer.New(r.chunkSize, size)
	if err := r.pipeUntil(delim, sink, consume, size); err != nil {
		return nil, err
	}

	return sink.Bytes(), nil
}

func (r *Reader) checkDelimiter(delim []byte) error {
	if len(delim) == 0 || len(delim) > r.chunkSize {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidDelimiter, len(delim))
	}

	return nil
}

// scan holds the state of a single readUntil call.
type scan struct {
	delim   []byte
	size    int
	backlog [][]byte
	have    int
	consume int
}

func (r *Reader) readUntil(delim []byte, size int, consume bool) ([]byte, error) {
	s := scan{
		delim: delim,
		size:  size,
	}
	if consume {
		s.consume = len(delim)
	}

	delimLen1 := len(delim) - 1

	// if the requested size is a multiple of the chunk size, align the buffer. Reading
	// chunk by chunk gets a lot faster this way
	if size%r.chunkSize == 0 {
		if err := r.fill(); err != nil {
			return nil, err
		}
	}

	for {
		if r.buffered() > 0 {
			if found := r.searcher.Index(r.buffer[r.pos:], delim); found != -1 {
				return r.finalize(&s, r.pos+found, nil)
			}
		}

		if size < s.have+r.buffered()-delimLen1 {
			// enough delimiter-free data is resident already
			return r.finalize(&s, -1, nil)
		}

		chunk, err := r.fetch(r.chunkSize)
		if err != nil {
			return nil, err
		}

		if r.remaining == 0 {
			r.buffer = append(r.buffer, chunk...)
			return r.finalize(&s, -1, nil)
		}

		if r.buffered() == 0 {
			r.buffer, r.pos = chunk, 0
			continue
		}

		// before splicing the chunk, make sure no delimiter is cut by the chunk boundary
		if delimLen1 > 0 {
			offset := max(len(r.buffer)-delimLen1, r.pos)
			if found := boundaryIndex(r.searcher, r.buffer[offset:], chunk, delim); found != -1 {
				r.buffer = append(r.buffer, chunk...)
				return r.finalize(&s, offset+found, nil)
			}
		}

		if s.have+r.buffered() >= size {
			// everything resident is verified to be delimiter-free now, including the
			// border with the upcoming chunk
			return r.finalize(&s, -1, chunk)
		}

		s.have += r.buffered()
		s.backlog = append(s.backlog, r.buffer[r.pos:])
		r.buffer, r.pos = chunk, 0
	}
}

// finalize cuts the result out of the backlog and the buffer. The delimiter position is
// an absolute offset within the buffer, -1 if it's unknown yet. A pending chunk, if any,
// is appended to the buffer afterward.
func (r *Reader) finalize(s *scan, delimPos int, pending []byte) ([]byte, error) {
	if delimPos == -1 && r.buffered() > 0 {
		if found := r.searcher.Index(r.buffer[r.pos:], s.delim); found != -1 {
			delimPos = r.pos + found
		}
	}

	size := s.size
	if delimPos != -1 {
		size = min(size, s.have+delimPos-r.pos)
	}

	var result []byte
	if s.have == 0 {
		tail, err := r.next(size)
		if err != nil {
			return nil, err
		}

		result = tail
	} else {
		tail, err := r.next(size - s.have)
		if err != nil {
			return nil, err
		}

		result = bytes.Join(append(s.backlog, tail), nil)
	}

	if len(pending) > 0 {
		if r.buffered() == 0 {
			r.buffer, r.pos = pending, 0
		} else {
			r.buffer, r.pos = concat(r.buffer[r.pos:], pending), 0
		}
	}

	r.consumed += int64(len(result))

	if s.consume > 0 {
		// the position is known only when the delimiter was found in the buffer, which
		// wasn't dropped since then. Otherwise it must be checked the slow way
		if delimPos == -1 || len(pending) > 0 {
			if err := r.expectDelimiter(s.delim); err != nil {
				return nil, err
			}
		} else if r.pos != delimPos {
			return nil, ErrDelimiterMismatch
		}

		r.skip(s.consume)
	}

	return result, nil
}

// expectDelimiter checks whether the delimiter is right at the current position.
func (r *Reader) expectDelimiter(delim []byte) error {
	peek, err := r.Peek(len(delim))
	if err != nil {
		return err
	}

	if bytes.Equal(peek, delim) {
		return nil
	}

	if r.remaining == 0 && r.searcher.Index(r.buffer[r.pos:], delim) == -1 {
		return ErrDelimiterNotFound
	}

	return ErrDelimiterMismatch
}

// skip advances past n resident bytes.
func (r *Reader) skip(n int) {
	r.pos += n
	r.consumed += int64(n)
	if r.pos >= len(r.buffer) {
		r.reset()
	}
}
