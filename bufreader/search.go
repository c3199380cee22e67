package bufreader

import (
	"bytes"
	"encoding/binary"
)

// Searcher is a substring search backend. Index must behave exactly like bytes.Index.
type Searcher interface {
	Index(s, sep []byte) int
}

type SearcherFunc func(s, sep []byte) int

func (f SearcherFunc) Index(s, sep []byte) int {
	return f(s, sep)
}

// IndexSearcher is the default backend. bytes.Index is already dispatched by the runtime
// to vectorized implementations where the platform provides them.
var IndexSearcher Searcher = SearcherFunc(bytes.Index)

// boundaryIndex looks for the delimiter starting within tail and ending within head, i.e.
// the one cut in halves by a chunk boundary. The returned position is relative to the
// beginning of tail, -1 if there's none.
func boundaryIndex(s Searcher, tail, head, delim []byte) int {
	var shift int
	if n := len(delim) - 1; len(tail) > n {
		shift = len(tail) - n
		tail = tail[shift:]
	}

	if n := len(delim) - 1; len(head) > n {
		head = head[:n]
	}

	if len(tail)+len(head) < len(delim) {
		return -1
	}

	fragment := make([]byte, 0, len(tail)+len(head))
	fragment = append(append(fragment, tail...), head...)

	if len(delim) < 4 {
		if found := s.Index(fragment, delim); found != -1 {
			return shift + found
		}

		return -1
	}

	candidate := rollingPrefix(fragment, delim)
	if candidate == -1 {
		return -1
	}

	if found := s.Index(fragment[candidate:], delim); found != -1 {
		return shift + candidate + found
	}

	return -1
}

// rollingPrefix returns the first position in the fragment the first four bytes of the
// delimiter are found at. The window is slid byte by byte as a packed integer.
func rollingPrefix(fragment, delim []byte) int {
	prefix := binary.BigEndian.Uint32(delim)
	window := binary.BigEndian.Uint32(fragment)

	for i := 0; ; i++ {
		if window == prefix {
			return i
		}

		if i+4 >= len(fragment) {
			return -1
		}

		window = window<<8 | uint32(fragment[i+4])
	}
}
