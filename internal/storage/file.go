// internal/storage/file.go
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// ErrIsDirectory is returned when a source path names a directory
var ErrIsDirectory = errors.New("is a directory")

// FileReader handles reading a source file
type FileReader struct {
	file *os.File
	info os.FileInfo
}

// FileWriter handles writing a destination file. Data goes to a pending
// file next to the destination, which only replaces the destination on
// Commit.
type FileWriter struct {
	pending *renameio.PendingFile
	path    string
	written int64
}

// NewFileReader opens a regular file for reading
func NewFileReader(path string) (*FileReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, ErrIsDirectory
	}

	return &FileReader{file: file, info: info}, nil
}

// Read reads from the underlying file
func (r *FileReader) Read(p []byte) (int, error) {
	return r.file.Read(p)
}

// Size returns the size of the file when it was opened
func (r *FileReader) Size() int64 {
	return r.info.Size()
}

// Mode returns the permission bits of the file
func (r *FileReader) Mode() os.FileMode {
	return r.info.Mode().Perm()
}

// Close closes the file reader
func (r *FileReader) Close() error {
	return r.file.Close()
}

// NewFileWriter creates a pending file for path with the given permissions
func NewFileWriter(path string, perm os.FileMode) (*FileWriter, error) {
	pending, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithPermissions(perm),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}

	return &FileWriter{pending: pending, path: path}, nil
}

// Write writes to the pending file
func (w *FileWriter) Write(p []byte) (int, error) {
	n, err := w.pending.Write(p)
	w.written += int64(n)
	return n, err
}

// Written returns the number of bytes written so far
func (w *FileWriter) Written() int64 {
	return w.written
}

// Commit syncs the pending file and atomically renames it over the destination
func (w *FileWriter) Commit() error {
	if err := w.pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to replace %s: %w", w.path, err)
	}
	return nil
}

// Discard removes the pending file. It is a no-op after a successful Commit.
func (w *FileWriter) Discard() error {
	return w.pending.Cleanup()
}

// Exists reports whether something is present at path. A symlink counts
// even when its target is missing, since the rename would replace it.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Spool is a scratch file holding output until it is known to be complete.
// It is removed on Close.
type Spool struct {
	file *os.File
}

// NewSpool creates an empty spool in the system temporary directory
func NewSpool() (*Spool, error) {
	file, err := os.CreateTemp("", "bczip-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	return &Spool{file: file}, nil
}

// Write appends to the spool
func (s *Spool) Write(p []byte) (int, error) {
	return s.file.Write(p)
}

// CopyTo rewinds the spool and writes its whole content to w
func (s *Spool) CopyTo(w io.Writer) (int64, error) {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("failed to rewind temporary file: %w", err)
	}
	return io.Copy(w, s.file)
}

// Close closes and removes the spool
func (s *Spool) Close() error {
	err := s.file.Close()
	if rmErr := os.Remove(s.file.Name()); err == nil {
		err = rmErr
	}
	return err
}
