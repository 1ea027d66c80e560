// internal/job/job.go
package job

import (
	"errors"
	"io"

	"github.com/sfi2k7/bczip/internal/codec"
	"github.com/sfi2k7/bczip/internal/storage"
)

// Name is the program name used as prefix for every message
const Name = "bczip"

var (
	// ErrNoSuchFile is returned when a source path does not exist
	ErrNoSuchFile = errors.New("no such file")
	// ErrUserDeclined is returned when the user refused to overwrite a destination
	ErrUserDeclined = errors.New("not overwritten")
)

// Options holds the settings shared by every job of an invocation. It is
// resolved once from the command line and never modified afterwards.
type Options struct {
	Decompress bool
	Keep       bool
	Force      bool
	Quiet      bool
	Verbose    bool
	ToStdout   bool
	Scheme     codec.Scheme
}

// Job is a single compression or decompression request
type Job struct {
	// Source is the input path; empty means standard input.
	Source string
}

// Stdin reports whether the job reads standard input
func (j Job) Stdin() bool {
	return j.Source == ""
}

// Status is the kind of outcome a job ended with
type Status int

// Outcome statuses
const (
	StatusSuccess Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Outcome describes how a job ended
type Outcome struct {
	Job         Job
	Destination string
	Status      Status
	BytesIn     int64
	BytesOut    int64
	Err         error
}

// Streams are the standard streams a job may use
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// IsSoft reports whether err is an expected per-file condition rather
// than an I/O failure
func IsSoft(err error) bool {
	for _, target := range []error{
		ErrNoSuchFile,
		ErrUserDeclined,
		storage.ErrIsDirectory,
		storage.ErrAlreadyHasSuffix,
		storage.ErrUnknownSuffix,
		storage.ErrNotInFormat,
		codec.ErrFormat,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func success(j Job, dest string, in, out int64) Outcome {
	return Outcome{Job: j, Destination: dest, Status: StatusSuccess, BytesIn: in, BytesOut: out}
}

func skipped(j Job, dest string) Outcome {
	return Outcome{Job: j, Destination: dest, Status: StatusSkipped, Err: ErrUserDeclined}
}

func failed(j Job, dest string, err error) Outcome {
	return Outcome{Job: j, Destination: dest, Status: StatusFailed, Err: err}
}
