package multipart

import "errors"

var (
	ErrBadBoundary                 = errors.New("bad multipart boundary")
	ErrMalformedForm               = errors.New("unexpected form structure")
	ErrIncompleteHeaders           = errors.New("incomplete body part headers")
	ErrTooManyParts                = errors.New("maximum number of form body parts exceeded")
	ErrPartTooLarge                = errors.New("body part is too large")
	ErrUnsupportedTransferEncoding = errors.New("the deprecated Content-Transfer-Encoding header field is unsupported")
	ErrInvalidCharset              = errors.New("invalid text or charset")
	ErrEmptyFilename               = errors.New("filename may not be empty")
	ErrUnsupportedMediaType        = errors.New("unsupported media type")
)
