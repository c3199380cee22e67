package multipart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/indigo-web/bufreader/bufreader"
	"github.com/indigo-web/bufreader/config"
	"github.com/indigo-web/bufreader/internal/strutil"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

var (
	crlf     = []byte("\r\n")
	crlfcrlf = []byte("\r\n\r\n")
)

// Form is a multipart/form-data body parsed lazily while iterating over it. Nothing is
// read in advance: every part is a reader delimited by the next boundary, and the part's
// unread data is skipped only when moving on to the next one.
type Form struct {
	r         *bufreader.Reader
	cfg       config.Multipart
	delimiter []byte
	prologue  bool
	parts     int
	charset   string
	err       error
}

// NewForm returns a form reading the body out of the reader. The boundary is the bare
// boundary parameter value, see Boundary.
func NewForm(r *bufreader.Reader, boundary string, cfg config.Multipart) *Form {
	return &Form{
		r:         r,
		cfg:       cfg,
		delimiter: []byte("--" + boundary),
		prologue:  true,
		charset:   cfg.DefaultCharset,
	}
}

// Parts iterates over the form parts. The iteration stops after the first error, which is
// then yielded with a nil part.
func (f *Form) Parts() iter.Seq2[*Part, error] {
	return func(yield func(*Part, error) bool) {
		for {
			part, err := f.Next()
			switch err {
			case nil:
			case io.EOF:
				return
			default:
				yield(nil, err)
				return
			}

			if !yield(part, nil) {
				return
			}
		}
	}
}

// Next returns the following part of the form, skipping whatever was left unread in the
// previous one. io.EOF is returned once the closing delimiter is reached. Errors are
// sticky, so the form mustn't be used once one is returned.
func (f *Form) Next() (*Part, error) {
	if f.err != nil {
		return nil, f.err
	}

	part, err := f.next()
	if err != nil {
		f.err = err
	}

	return part, err
}

func (f *Form) next() (*Part, error) {
	if err := f.r.PipeUntil(f.delimiter, nil, true); err != nil {
		return nil, structureError(err)
	}

	if f.prologue {
		// all the following delimiters are preceded by a line break, which belongs
		// to the delimiter and not to the part's data
		f.delimiter = append([]byte("\r\n"), f.delimiter...)
		f.prologue = false
	}

	separator, err := f.r.ReadUntil(crlf, 2, true)
	if err != nil {
		return nil, structureError(err)
	}

	switch {
	case len(separator) == 0:
	case string(separator) == "--":
		return nil, io.EOF
	default:
		return nil, ErrMalformedForm
	}

	f.parts++
	if f.cfg.MaxPartCount > 0 && f.parts > f.cfg.MaxPartCount {
		return nil, ErrTooManyParts
	}

	part := &Part{
		ContentType: f.cfg.DefaultContentType,
		Charset:     f.charset,
		maxBuffered: f.cfg.MaxPartBufferSize,
	}

	if err = f.readHeaders(part); err != nil {
		return nil, err
	}

	part.Reader, err = f.r.Delimit(f.delimiter)
	if err != nil {
		return nil, err
	}

	if part.Name == "_charset_" && len(part.Filename) == 0 {
		// RFC 7578 section 4.6: the value is the default charset for the rest of the parts
		charset, err := part.Data()
		if err != nil {
			return nil, err
		}

		if len(charset) == 0 {
			return nil, fmt.Errorf("%w: empty _charset_ value", ErrInvalidCharset)
		}

		f.charset = string(charset)
	}

	return part, nil
}

func (f *Form) readHeaders(part *Part) error {
	// a part without any header at all
	if peek, err := f.r.Peek(len(crlf)); err != nil {
		return err
	} else if bytes.Equal(peek, crlf) {
		_, err = f.r.Next(len(crlf))
		return err
	}

	block, err := f.r.ReadUntil(crlfcrlf, f.cfg.MaxHeadersSize, true)
	if err != nil {
		if isDelimiterError(err) {
			return ErrIncompleteHeaders
		}

		return err
	}

	for len(block) > 0 {
		var line []byte
		if eol := bytes.Index(block, crlf); eol != -1 {
			line, block = block[:eol], block[eol+len(crlf):]
		} else {
			line, block = block, nil
		}

		// the block is never overwritten by the reader, so no copies are needed
		key, value, ok := strutil.CutHeaderLine(uf.B2S(line))
		if !ok {
			continue
		}

		switch {
		case strcomp.EqualFold(key, "content-disposition"):
			err = part.parseContentDisposition(value)
		case strcomp.EqualFold(key, "content-type"):
			err = part.parseContentType(value)
		case strcomp.EqualFold(key, "content-transfer-encoding"):
			err = ErrUnsupportedTransferEncoding
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func isDelimiterError(err error) bool {
	return errors.Is(err, bufreader.ErrDelimiterNotFound) || errors.Is(err, bufreader.ErrDelimiterMismatch)
}

func structureError(err error) error {
	if isDelimiterError(err) {
		return fmt.Errorf("%w: %w", ErrMalformedForm, err)
	}

	return err
}
