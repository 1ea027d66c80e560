// cmd/options.go
package cmd

import (
	"github.com/spf13/pflag"

	"github.com/sfi2k7/bczip/internal/codec"
	"github.com/sfi2k7/bczip/internal/job"
)

// flags holds the raw command line switches
type flags struct {
	help       bool
	version    bool
	decompress bool
	keep       bool
	force      bool
	quiet      bool
	verbose    bool
	stdout     bool
	codec      string
	logLevel   string
}

func bindFlags(fs *pflag.FlagSet, f *flags) {
	fs.BoolVarP(&f.help, "help", "h", false, "give this help")
	fs.BoolVarP(&f.version, "version", "V", false, "display version number")
	fs.BoolVarP(&f.decompress, "decompress", "d", false, "decompress")
	fs.BoolVarP(&f.keep, "keep", "k", false, "keep (don't delete) input files")
	fs.BoolVarP(&f.force, "force", "f", false, "force overwrite of output file")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress all warnings")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose mode")
	fs.BoolVarP(&f.stdout, "stdout", "c", false, "write on standard output, keep original files unchanged")
	fs.StringVar(&f.codec, "codec", codec.DefaultScheme.String(), "compression scheme used when compressing")
	fs.StringVar(&f.logLevel, "log-level", "disabled", "level of the internal trace log written to stderr")

	_ = fs.MarkHidden("log-level")
}

// options resolves the switches into the immutable job options
func (f *flags) options() (job.Options, error) {
	scheme, err := codec.ParseScheme(f.codec)
	if err != nil {
		return job.Options{}, err
	}

	return job.Options{
		Decompress: f.decompress,
		Keep:       f.keep,
		Force:      f.force,
		Quiet:      f.quiet,
		Verbose:    f.verbose,
		ToStdout:   f.stdout,
		Scheme:     scheme,
	}, nil
}
