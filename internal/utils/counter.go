// internal/utils/counter.go
package utils

import (
	"fmt"
	"io"
)

// CountingReader counts the bytes read through it
type CountingReader struct {
	r     io.Reader
	count int64
}

// NewCountingReader wraps r
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{r: r}
}

// Read reads from the wrapped reader
func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.count += int64(n)
	return n, err
}

// Count returns the number of bytes read so far
func (c *CountingReader) Count() int64 {
	return c.count
}

// CountingWriter counts the bytes written through it
type CountingWriter struct {
	w     io.Writer
	count int64
}

// NewCountingWriter wraps w
func NewCountingWriter(w io.Writer) *CountingWriter {
	return &CountingWriter{w: w}
}

// Write writes to the wrapped writer
func (c *CountingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.count += int64(n)
	return n, err
}

// Count returns the number of bytes written so far
func (c *CountingWriter) Count() int64 {
	return c.count
}

// FormatByteSize renders a size in binary units
func FormatByteSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// Reduction returns how much smaller after is than before, in percent.
// An empty input reports no reduction.
func Reduction(before, after int64) float64 {
	if before == 0 {
		return 0
	}
	return (1 - float64(after)/float64(before)) * 100
}
