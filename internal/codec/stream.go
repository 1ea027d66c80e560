// internal/codec/stream.go
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// NewWriter returns a writer encoding into w. Closing it seals the payload
// with a trailer that NewReader verifies.
func NewWriter(c Codec, w io.Writer) (io.WriteCloser, error) {
	writer, err := c.Writer(w)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s writer: %w", c.Name(), err)
	}
	return newSealWriter(writer), nil
}

// NewReader returns a reader decoding from r. Any failure raised by the
// codec itself, including a panic inside the decoder, is reported as
// ErrFormat, and so is a payload whose trailer is missing or does not match
// the decoded data. Read errors coming from r are passed through untouched.
func NewReader(c Codec, r io.Reader) (io.ReadCloser, error) {
	src := &sourceReader{r: r}

	var (
		reader io.ReadCloser
		err    error
	)
	func() {
		defer src.recoverInto(&err)
		reader, err = c.Reader(src)
	}()
	if err != nil {
		return nil, src.classify(err)
	}
	return &decodeReader{
		reader:   reader,
		src:      src,
		verifier: newVerifier(),
		chunk:    make([]byte, 32*1024),
	}, nil
}

// Encode compresses data in one shot
func Encode(c Codec, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer, err := NewWriter(c, &buf)
	if err != nil {
		return nil, err
	}
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write %s data: %w", c.Name(), err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize %s data: %w", c.Name(), err)
	}
	return buf.Bytes(), nil
}

// Decode decompresses data in one shot
func Decode(c Codec, data []byte) ([]byte, error) {
	reader, err := NewReader(c, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	out, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// sourceReader remembers the last error returned by the underlying source
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil {
		s.err = err
	}
	return n, err
}

// classify tells source I/O failures apart from codec failures
func (s *sourceReader) classify(err error) error {
	if err == nil || errors.Is(err, ErrFormat) {
		return err
	}
	if s.err != nil && s.err != io.EOF {
		return err
	}
	return fmt.Errorf("%w: %v", ErrFormat, err)
}

func (s *sourceReader) recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: decoder panic: %v", ErrFormat, r)
	}
}

type decodeReader struct {
	reader   io.ReadCloser
	src      *sourceReader
	verifier *verifier
	chunk    []byte
	eof      bool
	err      error
}

func (d *decodeReader) Read(p []byte) (n int, err error) {
	if d.err != nil {
		return 0, d.err
	}
	if len(p) == 0 {
		return 0, nil
	}

	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("%w: decoder panic: %v", ErrFormat, r)
		}
		if err != nil {
			d.err = err
		}
	}()

	for !d.eof && d.verifier.releasable() == 0 {
		m, rerr := d.reader.Read(d.chunk)
		d.verifier.push(d.chunk[:m])
		if rerr == io.EOF {
			d.eof = true
			break
		}
		if rerr != nil {
			return 0, d.src.classify(rerr)
		}
	}

	n = d.verifier.release(p)
	if d.eof && d.verifier.releasable() == 0 {
		if err := d.verifier.check(); err != nil {
			return n, err
		}
		if n == 0 {
			return 0, io.EOF
		}
	}
	return n, nil
}

func (d *decodeReader) Close() error {
	return d.reader.Close()
}
