package strutil

import "strings"

func LStripWS(str string) string {
	for i, c := range str {
		switch c {
		case ' ', '\t':
		default:
			return str[i:]
		}
	}

	return ""
}

func RStripWS(str string) string {
	for i := len(str); i > 0; i-- {
		switch str[i-1] {
		case ' ', '\t':
		default:
			return str[:i]
		}
	}

	return ""
}

// CutHeader splits the header value from its parameters. Whitespaces around both are
// stripped.
func CutHeader(header string) (value, params string) {
	sep := strings.IndexByte(header, ';')
	if sep == -1 {
		return RStripWS(LStripWS(header)), ""
	}

	return RStripWS(LStripWS(header[:sep])), LStripWS(header[sep+1:])
}

// CutHeaderLine splits a raw header line into its key and whitespace-stripped value. ok is
// false if there's no colon.
func CutHeaderLine(line string) (key, value string, ok bool) {
	colon := strings.IndexByte(line, ':')
	if colon == -1 {
		return "", "", false
	}

	return RStripWS(line[:colon]), RStripWS(LStripWS(line[colon+1:])), true
}
