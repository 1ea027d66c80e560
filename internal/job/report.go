// internal/job/report.go
package job

import (
	"errors"
	"fmt"

	"github.com/sfi2k7/bczip/internal/codec"
	"github.com/sfi2k7/bczip/internal/storage"
	"github.com/sfi2k7/bczip/internal/utils"
)

// report writes the verbose line or the diagnostic for an outcome.
// Skipped jobs already printed their message with the prompt.
func (e *Executor) report(o Outcome) {
	if e.options.Quiet {
		return
	}

	switch o.Status {
	case StatusSuccess:
		if e.options.Verbose && o.Destination != "" {
			fmt.Fprintf(e.streams.Out, "%s: '%s'\t%.1f%% replaced with '%s'\n",
				Name, o.Job.Source, utils.Reduction(o.BytesIn, o.BytesOut), o.Destination)
		}
	case StatusFailed:
		fmt.Fprintf(e.streams.Err, "%s: %s\n", Name, Describe(o.Job, o.Err))
	}
}

// Describe renders the diagnostic text for a failed job, without the
// program name prefix
func Describe(j Job, err error) string {
	subject := "stdin"
	if !j.Stdin() {
		subject = fmt.Sprintf("'%s'", j.Source)
	}

	switch {
	case errors.Is(err, ErrNoSuchFile):
		return fmt.Sprintf("no such file '%s'", j.Source)
	case errors.Is(err, storage.ErrIsDirectory):
		return fmt.Sprintf("%s %s -- ignored", subject, storage.ErrIsDirectory)
	case errors.Is(err, storage.ErrAlreadyHasSuffix):
		return fmt.Sprintf("%s %s", subject, storage.ErrAlreadyHasSuffix)
	case errors.Is(err, storage.ErrUnknownSuffix):
		return fmt.Sprintf("%s %s", subject, storage.ErrUnknownSuffix)
	case errors.Is(err, storage.ErrNotInFormat):
		return fmt.Sprintf("%s %s", subject, storage.ErrNotInFormat)
	case errors.Is(err, codec.ErrFormat):
		return fmt.Sprintf("%s %s", subject, codec.ErrFormat)
	}
	return fmt.Sprintf("%s: %v", subject, err)
}
