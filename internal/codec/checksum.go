// internal/codec/checksum.go
package codec

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/OneOfOne/xxhash"
)

// TrailerSize is the length of the trailer sealed at the end of every
// decoded payload: the uncompressed length followed by its xxhash64, both
// big endian. The trailer goes through the codec with the data, so a
// stream cut at a block boundary cannot pass for a complete one.
const TrailerSize = 16

// sealWriter hashes what goes through it and appends the trailer on Close
type sealWriter struct {
	w      io.WriteCloser
	hash   *xxhash.XXHash64
	length uint64
	closed bool
}

func newSealWriter(w io.WriteCloser) *sealWriter {
	return &sealWriter{w: w, hash: xxhash.New64()}
}

func (s *sealWriter) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	s.hash.Write(p[:n])
	s.length += uint64(n)
	return n, err
}

func (s *sealWriter) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var trailer [TrailerSize]byte
	binary.BigEndian.PutUint64(trailer[:8], s.length)
	binary.BigEndian.PutUint64(trailer[8:], s.hash.Sum64())
	if _, err := s.w.Write(trailer[:]); err != nil {
		s.w.Close()
		return fmt.Errorf("failed to write trailer: %w", err)
	}
	return s.w.Close()
}

// verifier holds back the last TrailerSize decoded bytes until the codec
// reports the end of its stream, then checks them against what was released.
type verifier struct {
	pending []byte
	hash    *xxhash.XXHash64
	length  uint64
}

func newVerifier() *verifier {
	return &verifier{hash: xxhash.New64()}
}

// push appends freshly decoded bytes
func (v *verifier) push(p []byte) {
	v.pending = append(v.pending, p...)
}

// releasable returns how many pending bytes are known to be data
func (v *verifier) releasable() int {
	if len(v.pending) <= TrailerSize {
		return 0
	}
	return len(v.pending) - TrailerSize
}

// release moves up to len(p) data bytes into p
func (v *verifier) release(p []byte) int {
	n := copy(p, v.pending[:v.releasable()])
	v.hash.Write(p[:n])
	v.length += uint64(n)
	v.pending = append(v.pending[:0], v.pending[n:]...)
	return n
}

// check validates the trailer once everything else has been released
func (v *verifier) check() error {
	if len(v.pending) != TrailerSize {
		return fmt.Errorf("%w: payload truncated", ErrFormat)
	}
	length := binary.BigEndian.Uint64(v.pending[:8])
	sum := binary.BigEndian.Uint64(v.pending[8:])
	if length != v.length {
		return fmt.Errorf("%w: length mismatch (%d != %d)", ErrFormat, v.length, length)
	}
	if sum != v.hash.Sum64() {
		return fmt.Errorf("%w: checksum mismatch", ErrFormat)
	}
	return nil
}
