package multipart

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/indigo-web/bufreader/internal/strutil"
	"github.com/indigo-web/utils/uf"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/unicode/norm"
)

// decodeText decodes the data in the named charset into a UTF-8 string. Invalid UTF-8 is
// rejected rather than replaced.
func decodeText(data []byte, charset string) (string, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidCharset, charset)
	}

	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: %s", ErrInvalidCharset, charset)
		}

		return string(data), nil
	}

	text, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidCharset, charset, err)
	}

	return uf.B2S(text), nil
}

// decodeExtValue decodes an RFC 5987 ext-value, e.g. UTF-8''%E2%82%AC%20rates. ok is false
// if the value doesn't look like one.
func decodeExtValue(value string) (decoded string, ok bool, err error) {
	charset, rest, found := strings.Cut(value, "'")
	if !found || len(charset) == 0 {
		return "", false, nil
	}

	// the language tag is of no interest
	_, encoded, found := strings.Cut(rest, "'")
	if !found || len(encoded) == 0 {
		return "", false, nil
	}

	raw, valid := strutil.URLDecode(encoded)
	if !valid {
		return "", true, fmt.Errorf("%w: malformed percent-encoding", ErrMalformedForm)
	}

	decoded, err = decodeText(uf.S2B(raw), charset)
	return decoded, true, err
}

// SecureFilename sanitizes the filename to contain only ASCII alphanumerals, '.', '-' and
// '_'. Any other character is replaced by an underscore. The name is normalized to the
// NFKD form beforehand, so more alphanumerals survive, e.g. "Ångström" turns into
// "A_ngstro_m". A leading dot is replaced too, so the result is never a hidden file nor
// a relative path.
func SecureFilename(filename string) (string, error) {
	if len(filename) == 0 {
		return "", ErrEmptyFilename
	}

	filename = norm.NFKD.String(filename)

	var b strings.Builder
	b.Grow(len(filename))

	for i, c := range filename {
		switch {
		case c == '.' && i == 0:
			b.WriteByte('_')
		case c == '.', c == '-', c == '_',
			'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
			b.WriteRune(c)
		default:
			b.WriteByte('_')
		}
	}

	return b.String(), nil
}
