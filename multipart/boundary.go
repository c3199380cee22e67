package multipart

import (
	"fmt"

	"github.com/indigo-web/bufreader/internal/strutil"
	"github.com/indigo-web/utils/strcomp"
)

const maxBoundaryLen = 70

// Boundary extracts the boundary parameter out of a multipart Content-Type value. Trailing
// whitespaces are stripped, and what is left must be 1 to 70 characters long, as RFC 2046
// section 5.1.1 requires.
func Boundary(contentType string) (string, error) {
	mediaType, params := strutil.CutHeader(contentType)
	if len(mediaType) <= len("multipart/") || !strcomp.EqualFold(mediaType[:len("multipart/")], "multipart/") {
		return "", fmt.Errorf("%w: not a multipart media type: %q", ErrBadBoundary, mediaType)
	}

	for key, value := range strutil.WalkKV(params) {
		if len(key) == 0 {
			return "", fmt.Errorf("%w: malformed parameters", ErrBadBoundary)
		}

		if !strcomp.EqualFold(key, "boundary") {
			continue
		}

		boundary := strutil.RStripWS(value)
		if len(boundary) == 0 || len(boundary) > maxBoundaryLen {
			return "", fmt.Errorf("%w: must consist of 1 to %d characters", ErrBadBoundary, maxBoundaryLen)
		}

		return boundary, nil
	}

	return "", fmt.Errorf("%w: no boundary specifier found", ErrBadBoundary)
}
