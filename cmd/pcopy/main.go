package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitTotalFailure
	}
	return exitSuccess
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "pcopy [flags] <source> <destination>",
		Short: "Parallel, resumable file and directory copy",
		Long: `pcopy copies a file or directory tree using a fixed pool of workers.

Files whose destination already has the same size and modification time
are skipped, so an interrupted copy can simply be run again.

A source ending in a path separator copies its contents into the
destination; otherwise the source itself is created inside it.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				return nil
			}
			return cobra.MaximumNArgs(2)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "pcopy %s\n", version)
				return nil
			}
			return runCopy(cmd, opts, args)
		},
	}

	opts.register(rootCmd.Flags())
	rootCmd.AddCommand(newDocsCmd())
	return rootCmd
}

const (
	exitSuccess        = 0
	exitPartialFailure = 1
	exitTotalFailure   = 2
)

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
