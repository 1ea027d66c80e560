// internal/driver/driver.go
package driver

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/sfi2k7/bczip/internal/job"
	"github.com/sfi2k7/bczip/internal/utils"
)

// Runner executes a single job
type Runner interface {
	Run(ctx context.Context, j job.Job) job.Outcome
}

// Summary counts the outcomes of a run
type Summary struct {
	Succeeded int
	Skipped   int
	Failed    int
}

// Driver processes the file arguments of an invocation in order
type Driver struct {
	runner Runner
	logger *utils.Logger
}

// New creates a driver
func New(runner Runner, logger *utils.Logger) *Driver {
	return &Driver{runner: runner, logger: logger}
}

// Run executes one job per argument, or a single standard input job when
// there are none. Every argument is processed even when earlier ones fail.
// The returned error aggregates failures that are not ordinary per-file
// conditions, such as I/O errors; ordinary conditions are only counted.
func (d *Driver) Run(ctx context.Context, args []string) (Summary, error) {
	jobs := make([]job.Job, 0, len(args))
	for _, arg := range args {
		jobs = append(jobs, job.Job{Source: arg})
	}
	if len(jobs) == 0 {
		jobs = append(jobs, job.Job{})
	}

	var (
		summary Summary
		result  *multierror.Error
	)
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			result = multierror.Append(result, err)
			break
		}

		outcome := d.runner.Run(ctx, j)

		switch outcome.Status {
		case job.StatusSuccess:
			summary.Succeeded++
		case job.StatusSkipped:
			summary.Skipped++
		case job.StatusFailed:
			summary.Failed++
			if !job.IsSoft(outcome.Err) {
				result = multierror.Append(result, fmt.Errorf("%s: %w", label(j), outcome.Err))
			}
		}
	}

	d.logger.Debug("Run completed",
		"jobs", len(jobs),
		"succeeded", summary.Succeeded,
		"skipped", summary.Skipped,
		"failed", summary.Failed)

	return summary, result.ErrorOrNil()
}

func label(j job.Job) string {
	if j.Stdin() {
		return "stdin"
	}
	return j.Source
}
