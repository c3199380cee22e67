package bufreader

import (
	"io"
	"iter"
)

// Pipe writes everything left into the writer, chunk by chunk. A nil writer discards the
// data.
func (r *Reader) Pipe(w io.Writer) error {
	for {
		chunk, err := r.Next(r.chunkSize)
		if err != nil {
			return err
		}

		if len(chunk) == 0 {
			return nil
		}

		if w != nil {
			if _, err = w.Write(chunk); err != nil {
				return err
			}
		}
	}
}

// PipeUntil writes everything until the delimiter into the writer, chunk by chunk,
// without ever materializing the whole span. A nil writer discards the data. Consuming
// the delimiter behaves exactly as in ReadUntil.
func (r *Reader) PipeUntil(delim []byte, w io.Writer, consume bool) error {
	if err := r.checkDelimiter(delim); err != nil {
		return err
	}

	return r.pipeUntil(delim, w, consume, Unbounded)
}

func (r *Reader) pipeUntil(delim []byte, w io.Writer, consume bool, size int) error {
	remaining := r.normalize(size)

	for remaining > 0 {
		chunk, err := r.readUntil(delim, min(r.chunkSize, remaining), false)
		if err != nil {
			return err
		}

		if len(chunk) == 0 {
			break
		}

		if w != nil {
			if _, err = w.Write(chunk); err != nil {
				return err
			}
		}

		remaining -= len(chunk)
	}

	if consume {
		if err := r.expectDelimiter(delim); err != nil {
			return err
		}

		r.skip(len(delim))
	}

	return nil
}

// Exhaust reads and discards everything left.
func (r *Reader) Exhaust() error {
	return r.Pipe(nil)
}

// Delimit returns a new reader, producing the data of this one up to the first occurrence
// of the delimiter. The delimiter itself is left unread in this reader.
//
// Reading the derived reader advances this one, so they must not be read interleaved.
// Bytes left unread in the derived reader aren't returned back: skip them (e.g. via
// PipeUntil) before proceeding with this reader.
func (r *Reader) Delimit(delim []byte) (*Reader, error) {
	if err := r.checkDelimiter(delim); err != nil {
		return nil, err
	}

	pull := func(n int) ([]byte, error) {
		return r.ReadUntil(delim, n, false)
	}

	return New(
		pull, int64(r.normalize(Unbounded)),
		WithChunkSize(r.chunkSize),
		WithMaxJoinChunks(r.maxJoinChunks),
		WithSearcher(r.searcher),
	), nil
}

var newline = []byte{'\n'}

// ReadLine reads a single line, including the trailing newline, if any. At most n
// bytes are returned (a negative n means no limit), the rest of a longer line is left
// for the following reads.
func (r *Reader) ReadLine(n int) ([]byte, error) {
	size := r.normalize(n)

	line, err := r.ReadUntil(newline, size, false)
	if err != nil || len(line) >= size {
		return line, err
	}

	lf, err := r.Next(1)
	if err != nil {
		return nil, err
	}

	return append(line, lf...), nil
}

// ReadLines reads lines until EOF. If hint is non-negative, reading stops as soon as the
// total length of read lines reaches it.
func (r *Reader) ReadLines(hint int) (lines [][]byte, err error) {
	var total int

	for {
		line, err := r.ReadLine(Unbounded)
		if err != nil {
			return lines, err
		}

		if len(line) == 0 {
			return lines, nil
		}

		lines = append(lines, line)

		if hint >= 0 {
			if total += len(line); total >= hint {
				return lines, nil
			}
		}
	}
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}

	data, err := r.Next(len(p))
	if err != nil {
		return 0, err
	}

	if len(data) == 0 {
		return 0, io.EOF
	}

	return copy(p, data), nil
}

// WriteTo implements io.WriterTo.
func (r *Reader) WriteTo(w io.Writer) (n int64, err error) {
	before := r.consumed
	err = r.Pipe(w)
	return r.consumed - before, err
}

// Chunks iterates over the rest of the data chunk by chunk. The iteration stops after
// the first error.
func (r *Reader) Chunks() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for {
			chunk, err := r.Next(r.chunkSize)
			if err != nil {
				yield(nil, err)
				return
			}

			if len(chunk) == 0 || !yield(chunk, nil) {
				return
			}
		}
	}
}
