// internal/storage/container.go
package storage

import (
	"errors"
	"io"

	"github.com/sfi2k7/bczip/internal/codec"
)

const (
	// Magic is the first byte of every container
	Magic byte = 0xBC
	// FormatTag is stored in the low nibble of the second byte
	FormatTag byte = 0x09
	// HeaderSize is the length of the container header in bytes
	HeaderSize = 2
)

// ErrNotInFormat is returned when a stream does not start with a valid header
var ErrNotInFormat = errors.New("not in bczip format")

// Header is the decoded container header. The high nibble of the second
// byte carries the codec scheme; it does not take part in format detection.
type Header struct {
	Scheme codec.Scheme
}

// Bytes returns the on-disk representation of the header
func (h Header) Bytes() [HeaderSize]byte {
	return [HeaderSize]byte{Magic, byte(h.Scheme&0x0F)<<4 | FormatTag}
}

// ParseHeader validates the fixed fields of a raw header
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize || b[0] != Magic || b[1]&0x0F != FormatTag {
		return Header{}, ErrNotInFormat
	}
	return Header{Scheme: codec.Scheme(b[1] >> 4)}, nil
}

// WriteHeader writes the container header for the given scheme
func WriteHeader(w io.Writer, scheme codec.Scheme) error {
	header := Header{Scheme: scheme}.Bytes()
	_, err := w.Write(header[:])
	return err
}

// ReadHeader consumes and validates the container header. Short input,
// including an empty stream, is reported as ErrNotInFormat.
func ReadHeader(r io.Reader) (Header, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Header{}, ErrNotInFormat
		}
		return Header{}, err
	}
	return ParseHeader(buf)
}

// Frame prepends the container header to an encoded payload. It is the
// buffer form of WriteHeader followed by the payload.
func Frame(scheme codec.Scheme, payload []byte) []byte {
	header := Header{Scheme: scheme}.Bytes()
	framed := make([]byte, 0, HeaderSize+len(payload))
	framed = append(framed, header[:]...)
	return append(framed, payload...)
}

// Unframe validates the header and returns it with the remaining payload.
// It is the buffer form of ReadHeader.
func Unframe(data []byte) (Header, []byte, error) {
	header, err := ParseHeader(data)
	if err != nil {
		return Header{}, nil, err
	}
	return header, data[HeaderSize:], nil
}
