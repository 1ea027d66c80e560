// internal/job/executor.go
package job

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/sfi2k7/bczip/internal/codec"
	"github.com/sfi2k7/bczip/internal/storage"
	"github.com/sfi2k7/bczip/internal/utils"
)

// Executor runs jobs one at a time
type Executor struct {
	options Options
	streams Streams
	confirm Confirmer
	logger  *utils.Logger
}

// NewExecutor creates an executor for the given options
func NewExecutor(options Options, streams Streams, confirm Confirmer, logger *utils.Logger) *Executor {
	return &Executor{
		options: options,
		streams: streams,
		confirm: confirm,
		logger:  logger,
	}
}

// Run performs the job, writes its messages and returns its outcome
func (e *Executor) Run(ctx context.Context, j Job) Outcome {
	log := e.logger.With("source", j.Source, "decompress", e.options.Decompress)
	log.Debug("Job started")

	var outcome Outcome
	switch {
	case ctx.Err() != nil:
		outcome = failed(j, "", ctx.Err())
	case j.Stdin():
		outcome = e.runStream(j)
	default:
		outcome = e.runFile(j)
	}

	e.report(outcome)

	log.Debug("Job finished",
		"status", outcome.Status,
		"destination", outcome.Destination,
		"input_size", utils.FormatByteSize(outcome.BytesIn),
		"output_size", utils.FormatByteSize(outcome.BytesOut),
		"error", outcome.Err)

	return outcome
}

// runStream transforms standard input into standard output
func (e *Executor) runStream(j Job) Outcome {
	in := utils.NewCountingReader(e.streams.In)
	out := utils.NewCountingWriter(e.streams.Out)

	var err error
	if e.options.Decompress {
		err = e.decompressStream(in, out)
	} else {
		err = e.compress(in, out)
	}
	if err != nil {
		return failed(j, "", err)
	}
	return success(j, "", in.Count(), out.Count())
}

// decompressStream decodes into a spool and copies it to out only once the
// whole payload has been verified, so corrupt input never reaches out.
func (e *Executor) decompressStream(in io.Reader, out io.Writer) error {
	header, err := storage.ReadHeader(in)
	if err != nil {
		return err
	}

	spool, err := storage.NewSpool()
	if err != nil {
		return err
	}
	defer spool.Close()

	if err := e.decompress(header, in, spool); err != nil {
		return err
	}
	if _, err := spool.CopyTo(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// runFile handles a named source file
func (e *Executor) runFile(j Job) Outcome {
	reader, err := storage.NewFileReader(j.Source)
	if errors.Is(err, fs.ErrNotExist) {
		return failed(j, "", ErrNoSuchFile)
	}
	if err != nil {
		return failed(j, "", err)
	}
	defer reader.Close()

	e.logger.Debug("Source opened",
		"source", j.Source,
		"size", utils.FormatByteSize(reader.Size()))

	if e.options.ToStdout {
		return e.toStdout(j, reader)
	}

	var dest string
	if e.options.Decompress {
		dest, err = storage.DecompressPath(j.Source)
	} else {
		dest, err = storage.CompressPath(j.Source)
	}
	if err != nil {
		return failed(j, "", err)
	}

	in := utils.NewCountingReader(reader)

	// The header is checked before asking anything, so that a file which
	// cannot be decompressed never triggers an overwrite prompt.
	var header storage.Header
	if e.options.Decompress {
		header, err = storage.ReadHeader(in)
		if err != nil {
			return failed(j, dest, err)
		}
	}

	if !e.options.Force && storage.Exists(dest) {
		prompt := fmt.Sprintf("%s: '%s' already exists; do you want to overwrite (y/N)? ", Name, dest)
		if !e.confirm.Confirm(prompt) {
			fmt.Fprint(e.streams.Out, "\tnot overwritten\n")
			return skipped(j, dest)
		}
	}

	writer, err := storage.NewFileWriter(dest, reader.Mode())
	if err != nil {
		return failed(j, dest, err)
	}
	defer writer.Discard()

	if e.options.Decompress {
		err = e.decompress(header, in, writer)
	} else {
		err = e.compress(in, writer)
	}
	if err != nil {
		return failed(j, dest, err)
	}

	if err := writer.Commit(); err != nil {
		return failed(j, dest, err)
	}

	outcome := success(j, dest, in.Count(), writer.Written())

	if !e.options.Keep {
		reader.Close()
		if err := os.Remove(j.Source); err != nil {
			return failed(j, dest, fmt.Errorf("failed to remove source file: %w", err))
		}
	}

	return outcome
}

// toStdout writes the transformed source to standard output. The source
// file is left in place and suffixes are not checked.
func (e *Executor) toStdout(j Job, reader io.Reader) Outcome {
	in := utils.NewCountingReader(reader)
	out := utils.NewCountingWriter(e.streams.Out)

	var err error
	if e.options.Decompress {
		err = e.decompressStream(in, out)
	} else {
		err = e.compress(in, out)
	}
	if err != nil {
		return failed(j, "", err)
	}
	return success(j, "", in.Count(), out.Count())
}

// compress writes the container header followed by the encoded source
func (e *Executor) compress(src io.Reader, dst io.Writer) error {
	c, err := e.options.Scheme.Codec()
	if err != nil {
		return err
	}

	if err := storage.WriteHeader(dst, e.options.Scheme); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	writer, err := codec.NewWriter(c, dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(writer, src); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write compressed data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize compressed data: %w", err)
	}

	return nil
}

// decompress decodes the payload following an already consumed header
func (e *Executor) decompress(header storage.Header, src io.Reader, dst io.Writer) error {
	c, err := header.Scheme.Codec()
	if err != nil {
		return fmt.Errorf("%w: %v", codec.ErrFormat, err)
	}

	reader, err := codec.NewReader(c, src)
	if err != nil {
		return err
	}
	defer reader.Close()

	if _, err := io.Copy(dst, reader); err != nil {
		return fmt.Errorf("failed to decompress data: %w", err)
	}

	return nil
}
