package buffer

import "errors"

var ErrOverflow = errors.New("buffer limit exceeded")

// Buffer is a growable sink for byte sequences with a hard upper limit. Serves primarily
// the purpose of collecting a big result from many small pieces without keeping both the
// pieces and their join in memory at the same time.
type Buffer struct {
	memory  []byte
	maxSize int
}

func New(initialSize, maxSize int) *Buffer {
	if initialSize > maxSize {
		initialSize = maxSize
	}

	return &Buffer{
		memory:  make([]byte, 0, initialSize),
		maxSize: maxSize,
	}
}

// Append writes data, checking whether the new amount of elements (bytes) doesn't exceed the
// limit, otherwise discarding the data and returning false.
func (b *Buffer) Append(elements []byte) (ok bool) {
	if len(b.memory)+len(elements) > b.maxSize {
		return false
	}

	b.memory = append(b.memory, elements...)
	return true
}

// Write implements io.Writer. Unlike Append, partial data is never written.
func (b *Buffer) Write(p []byte) (n int, err error) {
	if !b.Append(p) {
		return 0, ErrOverflow
	}

	return len(p), nil
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return len(b.memory)
}

// Bytes returns everything written so far. The returned slice is capped, so appending to
// it never overrides the buffer's spare capacity.
func (b *Buffer) Bytes() []byte {
	return b.memory[:len(b.memory):len(b.memory)]
}

// Clear just resets the pointers, so old values may be overridden by new ones.
func (b *Buffer) Clear() {
	b.memory = b.memory[:0]
}
