// cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sfi2k7/bczip/internal/codec"
	"github.com/sfi2k7/bczip/internal/driver"
	"github.com/sfi2k7/bczip/internal/job"
	"github.com/sfi2k7/bczip/internal/utils"
)

// Version is the program version printed by --version
const Version = "1.0"

var usage = "Usage: " + job.Name + ` [OPTION]... [FILE]...
Compress or uncompress FILEs (by default, compress FILES in-place).

  -c, --stdout      write on standard output, keep original files unchanged
  -d, --decompress  decompress
  -f, --force       force overwrite of output file
  -h, --help        give this help
  -k, --keep        keep (don't delete) input files
  -q, --quiet       suppress all warnings
  -v, --verbose     verbose mode
  -V, --version     display version number
      --codec NAME  compression scheme (` + strings.Join(codec.Names(), ", ") + `; default ` + codec.DefaultScheme.String() + `)

With no FILE, read standard input.
`

func newRootCmd(streams job.Streams) *cobra.Command {
	var f flags

	rootCmd := &cobra.Command{
		Use:           job.Name + " [OPTION]... [FILE]...",
		Short:         "Compress or uncompress files",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// --help never gets here: cobra handles it before running.
			if f.version {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", job.Name, Version)
				return nil
			}
			return runJobs(cmd, &f, args)
		},
	}

	rootCmd.SetIn(streams.In)
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.Err)

	bindFlags(rootCmd.Flags(), &f)

	printUsage := func(cmd *cobra.Command) {
		fmt.Fprint(cmd.OutOrStdout(), usage)
	}
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) { printUsage(cmd) })
	rootCmd.SetUsageFunc(func(cmd *cobra.Command) error {
		printUsage(cmd)
		return nil
	})

	return rootCmd
}

func runJobs(cmd *cobra.Command, f *flags, args []string) error {
	options, err := f.options()
	if err != nil {
		return err
	}

	// Without files and with nobody piping data in, there is nothing to do.
	if len(args) == 0 && isTerminal(cmd.InOrStdin()) {
		fmt.Fprint(cmd.OutOrStdout(), usage)
		return nil
	}

	logger, err := utils.NewLogger(cmd.ErrOrStderr(), f.logLevel)
	if err != nil {
		return err
	}
	logger.Debug("Options resolved",
		"decompress", options.Decompress,
		"keep", options.Keep,
		"force", options.Force,
		"quiet", options.Quiet,
		"verbose", options.Verbose,
		"stdout", options.ToStdout,
		"codec", options.Scheme,
		"files", len(args))

	streams := job.Streams{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
		Err: cmd.ErrOrStderr(),
	}
	confirm := job.NewLineConfirmer(streams.In, streams.Out)
	executor := job.NewExecutor(options, streams, confirm, logger)

	_, err = driver.New(executor, logger).Run(cmd.Context(), args)
	if err != nil {
		logger.Error("Run finished with errors", "error", err)
		return &reportedError{err: err}
	}

	return nil
}

// reportedError marks failures whose diagnostics were already written
type reportedError struct {
	err error
}

func (r *reportedError) Error() string { return r.err.Error() }

func (r *reportedError) Unwrap() error { return r.err }

func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// Execute runs the command line with the given arguments and streams. A
// non-nil error means the process should exit with a failure status; its
// message has already been written to streams.Err.
func Execute(ctx context.Context, args []string, streams job.Streams) error {
	rootCmd := newRootCmd(streams)

	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	if _, ok := err.(*reportedError); !ok {
		fmt.Fprintf(streams.Err, "%s: %v\n", job.Name, err)
	}
	return err
}
