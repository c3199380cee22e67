package strutil

import (
	"iter"
	"strings"
)

// tchar as of RFC 9110 section 5.6.2
var tokenChars = [256]bool{
	'!': true, '#': true, '$': true, '%': true, '&': true, '\'': true, '*': true,
	'+': true, '-': true, '.': true, '^': true, '_': true, '`': true, '|': true, '~': true,
	'0': true, '1': true, '2': true, '3': true, '4': true, '5': true, '6': true, '7': true,
	'8': true, '9': true,
	'a': true, 'b': true, 'c': true, 'd': true, 'e': true, 'f': true, 'g': true, 'h': true,
	'i': true, 'j': true, 'k': true, 'l': true, 'm': true, 'n': true, 'o': true, 'p': true,
	'q': true, 'r': true, 's': true, 't': true, 'u': true, 'v': true, 'w': true, 'x': true,
	'y': true, 'z': true,
	'A': true, 'B': true, 'C': true, 'D': true, 'E': true, 'F': true, 'G': true, 'H': true,
	'I': true, 'J': true, 'K': true, 'L': true, 'M': true, 'N': true, 'O': true, 'P': true,
	'Q': true, 'R': true, 'S': true, 'T': true, 'U': true, 'V': true, 'W': true, 'X': true,
	'Y': true, 'Z': true,
}

// WalkKV iterates over semicolon-separated header parameters. Quoted values are unquoted
// and unescaped, other values are returned as is, with surrounding whitespace stripped.
// A parameter without a value is yielded with an empty one. On malformed input a pair
// of empty strings is yielded and the iteration stops.
func WalkKV(data string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		data := data

		for data = LStripWS(data); len(data) > 0; data = LStripWS(data) {
			i := 0
			for i < len(data) && tokenChars[data[i]] {
				i++
			}

			key := data[:i]
			if len(key) == 0 {
				yield("", "")
				return
			}

			data = LStripWS(data[i:])

			var value string
			switch {
			case len(data) == 0 || data[0] == ';':
			case data[0] == '=':
				data = LStripWS(data[1:])

				if len(data) > 0 && data[0] == '"' {
					var ok bool
					if value, data, ok = cutQuoted(data); !ok {
						yield("", "")
						return
					}
				} else {
					sep := strings.IndexByte(data, ';')
					if sep == -1 {
						sep = len(data)
					}

					value, data = RStripWS(data[:sep]), data[sep:]
				}
			default:
				yield("", "")
				return
			}

			data = LStripWS(data)
			switch {
			case len(data) == 0:
			case data[0] == ';':
				data = data[1:]
			default:
				yield("", "")
				return
			}

			if !yield(key, value) {
				return
			}
		}
	}
}

// cutQuoted cuts the leading quoted string off. Backslash-escaped characters are unescaped,
// which is the only case the value is copied.
func cutQuoted(str string) (value, rest string, ok bool) {
	escaped := false

	for i := 1; i < len(str); i++ {
		switch str[i] {
		case '\\':
			escaped = true
			i++
		case '"':
			value = str[1:i]
			if escaped {
				value = unescape(value)
			}

			return value, str[i+1:], true
		}
	}

	return "", str, false
}

func unescape(str string) string {
	var b strings.Builder
	b.Grow(len(str))

	for i := 0; i < len(str); i++ {
		if str[i] == '\\' && i+1 < len(str) {
			i++
		}

		b.WriteByte(str[i])
	}

	return b.String()
}
