package bufreader

import "io"

// Pull supplies up to n bytes from the underlying source. It may return fewer bytes than
// requested, that's not an error. An empty result with nil error means EOF, as does
// io.EOF (data returned alongside it is still accepted). Any other error is passed
// through to the caller of the reader unchanged.
//
// The reader takes the ownership over returned slices: a Pull must never modify them
// afterwards.
type Pull func(n int) ([]byte, error)

const (
	// maxPullSize limits a single allocation made by FromReader, so the declared body
	// length alone cannot force a huge allocation.
	maxPullSize = 64 * 1024
	// maxEmptyReads mirrors bufio's tolerance for readers returning 0, nil.
	maxEmptyReads = 100
)

// FromReader adapts an io.Reader into a Pull.
func FromReader(r io.Reader) Pull {
	return func(n int) ([]byte, error) {
		if n > maxPullSize {
			n = maxPullSize
		}

		buff := make([]byte, n)

		for i := 0; i < maxEmptyReads; i++ {
			got, err := r.Read(buff)
			switch {
			case err == io.EOF:
				return buff[:got:got], nil
			case err != nil:
				return nil, err
			case got > 0:
				return buff[:got:got], nil
			}
		}

		return nil, io.ErrNoProgress
	}
}

// FromBytes returns a Pull serving the data.
func FromBytes(data []byte) Pull {
	return func(n int) (chunk []byte, err error) {
		if n > len(data) {
			n = len(data)
		}

		chunk, data = data[:n:n], data[n:]
		return chunk, nil
	}
}
