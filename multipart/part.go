package multipart

import (
	"fmt"

	"github.com/indigo-web/bufreader/bufreader"
	"github.com/indigo-web/bufreader/internal/strutil"
	"github.com/indigo-web/utils/strcomp"
	json "github.com/json-iterator/go"
)

const (
	mimePlain = "text/plain"
	mimeJSON  = "application/json"
)

// Part is a single body part of the form. Its data is available via Reader, which ends
// right before the next boundary. The part is valid until the form is advanced.
type Part struct {
	// Name is the form field name.
	Name string
	// Filename is set for attached files only. The RFC 5987 encoded filename* parameter
	// takes precedence over the plain one.
	Filename string
	// ContentType is the media type of the part without parameters. Defaults to text/plain.
	ContentType string
	// Charset is the charset parameter of the Content-Type. Defaults to the charset set by
	// the _charset_ field of the form, if any, otherwise to the configured one.
	Charset string
	Reader  *bufreader.Reader

	maxBuffered int
	data        []byte
	read        bool
}

// Data reads the whole part. The result is cached, so it can be called many times. Parts
// exceeding the configured buffer size are rejected with ErrPartTooLarge, and such parts
// must be read via Reader instead.
func (p *Part) Data() ([]byte, error) {
	if p.read {
		return p.data, nil
	}

	data, err := p.Reader.Next(p.maxBuffered + 1)
	if err != nil {
		return nil, err
	}

	if len(data) > p.maxBuffered {
		return nil, ErrPartTooLarge
	}

	p.data, p.read = data, true
	return data, nil
}

// Text returns the part's data decoded as text, if it's of text/plain media type.
// Otherwise, ok is false.
func (p *Part) Text() (text string, ok bool, err error) {
	if !strcomp.EqualFold(p.ContentType, mimePlain) {
		return "", false, nil
	}

	data, err := p.Data()
	if err != nil {
		return "", true, err
	}

	text, err = decodeText(data, p.Charset)
	return text, true, err
}

// JSON unmarshalls the part's data into the model. Only parts of application/json media type
// are supported, otherwise ErrUnsupportedMediaType is returned.
func (p *Part) JSON(model any) error {
	if !strcomp.EqualFold(p.ContentType, mimeJSON) {
		return ErrUnsupportedMediaType
	}

	data, err := p.Data()
	if err != nil {
		return err
	}

	iterator := json.ConfigDefault.BorrowIterator(data)
	iterator.ReadVal(model)
	err = iterator.Error
	json.ConfigDefault.ReturnIterator(iterator)

	return err
}

// SecureFilename returns the sanitized filename, see SecureFilename.
func (p *Part) SecureFilename() (string, error) {
	return SecureFilename(p.Filename)
}

// Discard skips the rest of the part.
func (p *Part) Discard() error {
	return p.Reader.Exhaust()
}

func (p *Part) parseContentDisposition(value string) error {
	_, params := strutil.CutHeader(value)

	var extended string
	for key, value := range strutil.WalkKV(params) {
		switch {
		case len(key) == 0:
			return fmt.Errorf("%w: malformed Content-Disposition", ErrMalformedForm)
		case strcomp.EqualFold(key, "name"):
			p.Name = value
		case strcomp.EqualFold(key, "filename"):
			p.Filename = value
		case strcomp.EqualFold(key, "filename*"):
			extended = value
		}
	}

	if len(extended) == 0 {
		return nil
	}

	filename, ok, err := decodeExtValue(extended)
	switch {
	case err != nil:
		return err
	case ok:
		p.Filename = filename
	}

	return nil
}

func (p *Part) parseContentType(value string) error {
	mediaType, params := strutil.CutHeader(value)
	if len(mediaType) == 0 {
		return nil
	}

	p.ContentType = mediaType

	for key, value := range strutil.WalkKV(params) {
		switch {
		case len(key) == 0:
			return fmt.Errorf("%w: malformed Content-Type", ErrMalformedForm)
		case strcomp.EqualFold(key, "charset"):
			p.Charset = value
		}
	}

	return nil
}
