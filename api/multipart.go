package api

import (
	"bytes"
	"io"
	"mime/multipart"

	"github.com/pkg/errors"
)

// MultipartForm accumulates fields and file parts into a buffered body,
// so the 401 recovery path can replay the upload byte for byte.
type MultipartForm struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	closed bool
}

func NewMultipartForm() *MultipartForm {
	form := &MultipartForm{}
	form.writer = multipart.NewWriter(&form.buf)
	return form
}

// WriteField adds a plain form field.
func (f *MultipartForm) WriteField(name, value string) error {
	return errors.Wrapf(f.writer.WriteField(name, value), "multipart field %q", name)
}

// WriteFile adds a file part, consuming the reader.
func (f *MultipartForm) WriteFile(fieldName, fileName string, r io.Reader) error {
	part, err := f.writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		return errors.Wrapf(err, "multipart file %q", fieldName)
	}
	if _, err := io.Copy(part, r); err != nil {
		return errors.Wrapf(err, "multipart copy %q", fileName)
	}
	return nil
}

// encode finalizes the form and returns the body and content type.
func (f *MultipartForm) encode() ([]byte, string, error) {
	if !f.closed {
		if err := f.writer.Close(); err != nil {
			return nil, "", errors.Wrap(err, "multipart close")
		}
		f.closed = true
	}
	return f.buf.Bytes(), f.writer.FormDataContentType(), nil
}
