package bufreader

import "errors"

var (
	// ErrInvalidDelimiter is returned when a delimiter is empty or longer than the chunk size.
	ErrInvalidDelimiter = errors.New("delimiter length must be within [1, chunk size]")
	// ErrDelimiterNotFound is returned when the stream ended before a required delimiter.
	ErrDelimiterNotFound = errors.New("unexpected EOF without delimiter")
	// ErrDelimiterMismatch is returned when the delimiter was requested to be consumed, but
	// it doesn't immediately follow the returned data.
	ErrDelimiterMismatch = errors.New("expected delimiter missing")
)
