// internal/codec/codec.go
package codec

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

var (
	// ErrFormat is returned when a payload cannot be reconstructed by its codec
	ErrFormat = errors.New("invalid compressed data")
	// ErrUnknownScheme is returned for scheme ids or names with no codec
	ErrUnknownScheme = errors.New("unknown compression scheme")
)

// Codec is a reversible byte-stream transform
type Codec interface {
	// Writer wraps w so that data written to it is encoded.
	Writer(w io.Writer) (io.WriteCloser, error)
	// Reader wraps r so that data read from it is decoded.
	Reader(r io.Reader) (io.ReadCloser, error)
	// Name returns the name used to select the codec on the command line.
	Name() string
}

// Scheme identifies a codec inside the container header. Only the low
// four bits are meaningful.
type Scheme uint8

// Known schemes. The numbering is part of the on-disk format.
const (
	SchemeZstd   Scheme = 0x0
	SchemeGzip   Scheme = 0x1
	SchemeLZ4    Scheme = 0x2
	SchemeSnappy Scheme = 0x3
	SchemeXZ     Scheme = 0x4
	SchemeBrotli Scheme = 0x5
	SchemeStore  Scheme = 0xF
)

// DefaultScheme is used for compression when nothing else was requested
const DefaultScheme = SchemeZstd

var registry = map[Scheme]Codec{
	SchemeZstd:   zstdCodec{},
	SchemeGzip:   gzipCodec{},
	SchemeLZ4:    lz4Codec{},
	SchemeSnappy: snappyCodec{},
	SchemeXZ:     xzCodec{},
	SchemeBrotli: brotliCodec{},
	SchemeStore:  storeCodec{},
}

// Codec returns the codec registered for the scheme
func (s Scheme) Codec() (Codec, error) {
	c, ok := registry[s]
	if !ok {
		return nil, fmt.Errorf("%w: %#x", ErrUnknownScheme, uint8(s))
	}
	return c, nil
}

// String returns the codec name, or the numeric id for unknown schemes
func (s Scheme) String() string {
	if c, ok := registry[s]; ok {
		return c.Name()
	}
	return fmt.Sprintf("scheme(%#x)", uint8(s))
}

// ParseScheme resolves a codec name (case-insensitive) to its scheme
func ParseScheme(name string) (Scheme, error) {
	for s, c := range registry {
		if strings.EqualFold(c.Name(), name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScheme, name, strings.Join(Names(), ", "))
}

// Names lists the registered codec names in scheme order
func Names() []string {
	schemes := make([]Scheme, 0, len(registry))
	for s := range registry {
		schemes = append(schemes, s)
	}
	sort.Slice(schemes, func(i, j int) bool { return schemes[i] < schemes[j] })

	names := make([]string, 0, len(schemes))
	for _, s := range schemes {
		names = append(names, registry[s].Name())
	}
	return names
}
