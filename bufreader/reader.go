package bufreader

import (
	"io"
	"math"
)

// Unbounded is the size meaning "as much as the reader may ever produce". Any negative
// size is treated the same way.
const Unbounded = -1

// Reader is a buffered reader over a Pull, which never pulls more than the ceiling it was
// created with. It is capable of splitting the stream by delimiters which may straddle
// chunk boundaries, and of deriving sub-readers ending at a delimiter (see Delimit.)
//
// Slices returned by the Reader may share memory with its internal buffer. They stay valid
// and intact after subsequent calls, but must not be modified.
//
// The Reader is not safe for concurrent use.
type Reader struct {
	source        Pull
	searcher      Searcher
	chunkSize     int
	maxJoinChunks int
	// buffer[:pos] is already consumed, buffer[pos:] is resident but not read yet.
	// Bytes within len(buffer) are never overwritten, as they may be shared with slices
	// handed out earlier, so the buffer is only ever appended to or replaced.
	buffer    []byte
	pos       int
	remaining int64
	consumed  int64
}

// New returns a reader pulling at most maxLen bytes in total from the pull.
func New(pull Pull, maxLen int64, opts ...Option) *Reader {
	if maxLen < 0 {
		maxLen = 0
	}

	r := &Reader{
		source:        pull,
		searcher:      IndexSearcher,
		chunkSize:     DefaultChunkSize,
		maxJoinChunks: DefaultMaxJoinChunks,
		remaining:     maxLen,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ChunkSize returns the refill granularity of the reader.
func (r *Reader) ChunkSize() int {
	return r.chunkSize
}

// Remaining returns the maximal number of bytes the reader could still produce.
func (r *Reader) Remaining() int {
	return r.normalize(Unbounded)
}

// Consumed returns the number of bytes the reader has handed out so far, including
// consumed delimiters.
func (r *Reader) Consumed() int64 {
	return r.consumed
}

// EOF reports whether the reader is known to produce no more data. It may return false
// even though nothing is left, if the source hasn't signalled its EOF yet.
func (r *Reader) EOF() bool {
	return r.remaining == 0 && r.buffered() == 0
}

func (r *Reader) buffered() int {
	return len(r.buffer) - r.pos
}

// reset drops the buffer. Must be called only when everything is consumed.
func (r *Reader) reset() {
	r.buffer = nil
	r.pos = 0
}

// fetch pulls up to size bytes, but never more than the ceiling allows. Short reads are
// retried until either the size is satisfied or the source reaches its EOF, which is
// final: the ceiling is dropped to zero and the source is never asked again.
func (r *Reader) fetch(size int) ([]byte, error) {
	if int64(size) > r.remaining {
		size = int(r.remaining)
	}

	if size <= 0 {
		return nil, nil
	}

	chunk, eof, err := r.pullOnce(size)
	if err != nil || eof || len(chunk) == size {
		return chunk, err
	}

	result := append(make([]byte, 0, len(chunk)), chunk...)

	for len(result) < size {
		chunk, eof, err = r.pullOnce(size - len(result))
		if err != nil {
			return nil, err
		}

		result = append(result, chunk...)
		if eof {
			break
		}
	}

	return result, nil
}

func (r *Reader) pullOnce(size int) (chunk []byte, eof bool, err error) {
	chunk, err = r.source(size)
	if len(chunk) > size {
		chunk = chunk[:size]
	}

	// the reader appends to its buffer, so must never touch the source's spare capacity
	chunk = chunk[:len(chunk):len(chunk)]
	r.remaining -= int64(len(chunk))

	switch err {
	case nil:
	case io.EOF:
		r.remaining = 0
		return chunk, true, nil
	default:
		return nil, false, err
	}

	if len(chunk) == 0 {
		r.remaining = 0
		return nil, true, nil
	}

	return chunk, false, nil
}

// fill tops the buffer up to a whole chunk of resident bytes, dropping the consumed ones.
func (r *Reader) fill() error {
	buffered := r.buffered()
	if buffered >= r.chunkSize {
		return nil
	}

	chunk, err := r.fetch(r.chunkSize - buffered)
	if err != nil {
		return err
	}

	switch {
	case buffered == 0:
		r.buffer, r.pos = chunk, 0
	case r.pos == 0:
		r.buffer = append(r.buffer, chunk...)
	default:
		r.buffer, r.pos = concat(r.buffer[r.pos:], chunk), 0
	}

	return nil
}

// Peek returns up to n bytes without advancing the reader. A negative n or exceeding the
// chunk size is clamped to the chunk size. Fewer bytes are returned only at EOF.
func (r *Reader) Peek(n int) ([]byte, error) {
	if n < 0 || n > r.chunkSize {
		n = r.chunkSize
	}

	if r.buffered() < n {
		if err := r.fill(); err != nil {
			return nil, err
		}
	}

	end := min(r.pos+n, len(r.buffer))
	return r.buffer[r.pos:end:end], nil
}

// normalize resolves a negative or unreachable size into the maximal number of bytes the
// reader could ever produce.
func (r *Reader) normalize(size int) int {
	limit := r.remaining + int64(r.buffered())
	if limit > math.MaxInt {
		limit = math.MaxInt
	}

	if size < 0 || int64(size) > limit {
		return int(limit)
	}

	return size
}

// Next reads up to n bytes. A negative n reads everything that is left. Fewer bytes are
// returned only at EOF, no bytes at all means there's nothing left.
func (r *Reader) Next(n int) ([]byte, error) {
	data, err := r.next(r.normalize(n))
	r.consumed += int64(len(data))
	return data, err
}

func (r *Reader) next(size int) ([]byte, error) {
	buffered := r.buffered()

	// dish directly from the buffer, if possible
	if size <= buffered {
		if size == len(r.buffer) && r.pos == 0 {
			result := r.buffer
			r.reset()
			return result, nil
		}

		r.pos += size
		result := r.buffer[r.pos-size : r.pos : r.pos]
		if r.pos == len(r.buffer) {
			r.reset()
		}

		return result, nil
	}

	// pass large reads through
	if buffered == 0 && size >= r.chunkSize {
		return r.fetch(size)
	}

	readSize := size - buffered
	if readSize >= r.chunkSize {
		chunk, err := r.fetch(readSize)
		if err != nil {
			return nil, err
		}

		result := concat(r.buffer[r.pos:], chunk)
		r.reset()
		return result, nil
	}

	chunk, err := r.fetch(r.chunkSize)
	if err != nil {
		return nil, err
	}

	result := r.buffer[r.pos:]
	tail := min(readSize, len(chunk))
	result = concat(result, chunk[:tail])
	r.buffer, r.pos = chunk, tail
	if r.pos == len(r.buffer) {
		r.reset()
	}

	return result, nil
}

// concat always allocates, so neither of the arguments is ever written to.
func concat(a, b []byte) []byte {
	result := make([]byte, len(a)+len(b))
	copy(result[copy(result, a):], b)
	return result
}
