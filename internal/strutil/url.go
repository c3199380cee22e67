package strutil

import (
	"strings"

	"github.com/indigo-web/bufreader/internal/hexconv"
)

// URLDecode decodes percent-encoded octets and tells whether the string was properly
// formed. Unlike form values, pluses are left as is.
func URLDecode(str string) (string, bool) {
	percent := strings.IndexByte(str, '%')
	if percent == -1 {
		return str, true
	}

	var b strings.Builder
	b.Grow(len(str))
	s := str

	for percent != -1 {
		b.WriteString(s[:percent])
		s = s[percent+1:]
		if len(s) < 2 {
			return "", false
		}

		x, y := hexconv.Halfbyte[s[0]], hexconv.Halfbyte[s[1]]
		if x|y > 0x0f {
			return "", false
		}

		b.WriteByte((x << 4) | y)
		s = s[2:]
		percent = strings.IndexByte(s, '%')
	}

	b.WriteString(s)

	return b.String(), true
}
