package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/pcopy-dev/pcopy/internal/config"
	"github.com/pcopy-dev/pcopy/internal/engine"
)

type options struct {
	source      string
	destination string
	threads     int
	readThreads int
	bufferSize  string
	logFile     string
	dryRun      bool
	verbose     bool
	quiet       bool
	noProgress  bool
	tui         bool
	showVersion bool
}

func (o *options) register(fs *pflag.FlagSet) {
	fs.StringVarP(&o.source, "source", "s", "", "source file or directory (instead of the first argument)")
	fs.StringVarP(&o.destination, "destination", "d", "", "destination path (instead of the second argument)")
	fs.IntVarP(&o.threads, "threads", "t", engine.DefaultWorkers, "number of copy workers")
	fs.IntVar(&o.readThreads, "read-threads", 0, "number of scan workers (default: min(NumCPU, 8))")
	fs.StringVarP(&o.bufferSize, "buffer-size", "b", strconv.Itoa(engine.DefaultBufferSize),
		"per-worker copy buffer (e.g. 64K, 1M)")
	fs.BoolVar(&o.dryRun, "dry-run", false, "decide what would be copied without writing anything")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "verbose output")
	fs.BoolVarP(&o.quiet, "quiet", "q", false, "suppress all output except errors")
	fs.BoolVar(&o.noProgress, "no-progress", false, "plain line output instead of the progress display")
	fs.BoolVar(&o.tui, "tui", false, "full-screen TUI (Bubble Tea)")
	fs.StringVar(&o.logFile, "log", "", "write structured JSON log to FILE")
	fs.BoolVar(&o.showVersion, "version", false, "print version and exit")
}

// applyConfigDefaults copies config file defaults onto flags that were not
// set on the command line.
func applyConfigDefaults(fs *pflag.FlagSet, d config.DefaultsConfig) error {
	values := make(map[string]string)
	if d.Threads != nil {
		values["threads"] = strconv.Itoa(*d.Threads)
	}
	if d.ReadThreads != nil {
		values["read-threads"] = strconv.Itoa(*d.ReadThreads)
	}
	if d.BufferSize != nil {
		values["buffer-size"] = *d.BufferSize
	}
	if d.TUI != nil {
		values["tui"] = strconv.FormatBool(*d.TUI)
	}

	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		v, ok := values[f.Name]
		if !ok || f.Changed {
			return
		}
		if err := f.Value.Set(v); err != nil {
			errs = append(errs, fmt.Errorf("config default for --%s: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

// resolvePaths merges the -s/-d flags with positional arguments.
func (o *options) resolvePaths(args []string) (src, dst string, err error) {
	src, dst = o.source, o.destination
	for _, arg := range args {
		switch {
		case src == "":
			src = arg
		case dst == "":
			dst = arg
		default:
			return "", "", fmt.Errorf("unexpected argument %q", arg)
		}
	}
	if src == "" {
		return "", "", errors.New("missing source")
	}
	if dst == "" {
		return "", "", errors.New("missing destination")
	}
	return src, dst, nil
}

// validate checks numeric options and returns the parsed buffer size.
func (o *options) validate() (int, error) {
	if o.threads < 1 {
		return 0, fmt.Errorf("--threads must be at least 1, got %d", o.threads)
	}
	if o.readThreads < 0 {
		return 0, fmt.Errorf("--read-threads must not be negative, got %d", o.readThreads)
	}
	n, err := config.ParseSize(o.bufferSize)
	if err != nil {
		return 0, fmt.Errorf("invalid --buffer-size: %w", err)
	}
	if n < 1 || n > 1<<30 {
		return 0, fmt.Errorf("--buffer-size must be between 1 byte and 1 GiB, got %s", o.bufferSize)
	}
	return int(n), nil
}
