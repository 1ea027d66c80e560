// internal/storage/paths.go
package storage

import (
	"errors"
	"strings"
)

// Extension is appended to compressed files, without the leading dot
const Extension = "bc"

var (
	// ErrAlreadyHasSuffix is returned when compressing a file that carries the extension
	ErrAlreadyHasSuffix = errors.New("already has '." + Extension + "' suffix")
	// ErrUnknownSuffix is returned when decompressing a file without the extension
	ErrUnknownSuffix = errors.New("has unknown suffix")
)

const suffix = "." + Extension

// CompressPath returns the destination for compressing src
func CompressPath(src string) (string, error) {
	if HasSuffix(src) {
		return "", ErrAlreadyHasSuffix
	}
	return src + suffix, nil
}

// DecompressPath returns the destination for decompressing src
func DecompressPath(src string) (string, error) {
	if !HasSuffix(src) {
		return "", ErrUnknownSuffix
	}
	return strings.TrimSuffix(src, suffix), nil
}

// HasSuffix reports whether path ends with the extension and has a
// non-empty stem
func HasSuffix(path string) bool {
	return len(path) > len(suffix) && strings.HasSuffix(path, suffix)
}
