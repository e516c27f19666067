package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pcopy-dev/pcopy/internal/config"
	"github.com/pcopy-dev/pcopy/internal/engine"
	"github.com/pcopy-dev/pcopy/internal/event"
	"github.com/pcopy-dev/pcopy/internal/stats"
	"github.com/pcopy-dev/pcopy/internal/ui"
	"github.com/pcopy-dev/pcopy/internal/ui/tui"
)

//nolint:gocyclo // CLI entry point wires config, logging, presenter and engine
func runCopy(cmd *cobra.Command, opts *options, args []string) error {
	src, rawDst, err := opts.resolvePaths(args)
	if err != nil {
		return err
	}

	// Load optional config file.
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config", "path", config.Path(), "error", err)
	}
	if err := applyConfigDefaults(cmd.Flags(), cfg.Defaults); err != nil {
		slog.Warn("ignoring config defaults", "error", err)
	}

	bufferSize, err := opts.validate()
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	isTTY := false
	width := 0
	if f, ok := stderr.(*os.File); ok {
		isTTY = ui.IsTTY(f)
		if isTTY {
			width = ui.TermWidth(f)
		}
	}
	useTUI := opts.tui && isTTY && !opts.quiet

	// Configure logging.
	logLevel := slog.LevelInfo
	switch {
	case opts.verbose:
		logLevel = slog.LevelDebug
	case opts.quiet:
		logLevel = slog.LevelWarn
	}
	logOut := stderr
	if useTUI {
		// The alt screen owns the terminal; failures show in the TUI.
		logOut = io.Discard
	}
	var logHandler slog.Handler = slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: logLevel})
	var eventLog *slog.Logger
	if opts.logFile != "" {
		lf, lfErr := os.Create(opts.logFile)
		if lfErr != nil {
			return fmt.Errorf("open log file: %w", lfErr)
		}
		defer lf.Close()
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{Level: slog.LevelDebug})
		logHandler = ui.NewMultiHandler(logHandler, jsonHandler)
		eventLog = slog.New(jsonHandler)
	}
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	if opts.tui && !useTUI && !opts.quiet {
		slog.Warn("--tui requires a terminal, falling back to inline output")
	}

	dst := engine.ResolveDestination(src, rawDst)
	if opts.dryRun {
		slog.Info("dry run mode")
	}
	slog.Debug("starting copy",
		"src", src,
		"dst", dst,
		"threads", opts.threads,
		"read_threads", opts.readThreads,
		"buffer_size", bufferSize,
	)

	// Set up context with signal handling.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	collector := stats.NewCollector()
	events := make(chan event.Event, 256)
	presenterEvents := (<-chan event.Event)(events)
	if eventLog != nil {
		presenterEvents = ui.TeeEvents(eventLog, events)
	}

	var presenter ui.Presenter
	if useTUI {
		presenter = tui.NewPresenter(tui.Config{
			Stats:   collector,
			Theme:   cfg.Theme,
			Workers: opts.threads,
			OnQuit:  cancel,
		})
	} else {
		presenter = ui.NewPresenter(ui.Config{
			Writer:     cmd.OutOrStdout(),
			ErrWriter:  stderr,
			Stats:      collector,
			Workers:    opts.threads,
			Width:      width,
			IsTTY:      isTTY,
			Quiet:      opts.quiet,
			NoProgress: opts.noProgress,
		})
	}

	engineCfg := engine.Config{
		Src:         src,
		Dst:         dst,
		Workers:     opts.threads,
		ScanWorkers: opts.readThreads,
		BufferSize:  bufferSize,
		DryRun:      opts.dryRun,
		Events:      events,
		Stats:       collector,
		Logger:      logger,
	}

	var (
		result       engine.Result
		presenterErr error
		wg           sync.WaitGroup
	)
	if useTUI {
		// Bubble Tea needs the foreground to own stdin.
		wg.Add(1)
		go func() {
			defer wg.Done()
			result = engine.Run(ctx, engineCfg)
			close(events)
		}()
		presenterErr = presenter.Run(presenterEvents)
		cancel()
		wg.Wait()
	} else {
		wg.Add(1)
		go func() {
			defer wg.Done()
			presenterErr = presenter.Run(presenterEvents)
		}()
		result = engine.Run(ctx, engineCfg)
		close(events)
		wg.Wait()
	}
	stop()

	if presenterErr != nil {
		fmt.Fprintf(stderr, "presenter: %v\n", presenterErr)
	}
	if summary := presenter.Summary(); summary != "" {
		fmt.Fprintln(stderr, summary)
	}

	if result.Err != nil {
		slog.Error("copy failed", "run", result.RunID, "error", result.Err)
		return &exitError{code: exitCodeFor(result)}
	}
	return nil
}

// exitCodeFor maps a failed run to a process exit code: partial failure
// when at least one file reached the destination, total failure otherwise.
func exitCodeFor(r engine.Result) int {
	if r.Err == nil {
		return exitSuccess
	}
	if errors.Is(r.Err, engine.ErrDirectoryUnreadable) && r.Stats.FilesTotal == 0 {
		return exitTotalFailure
	}
	if r.Stats.FilesDone() > 0 {
		return exitPartialFailure
	}
	return exitTotalFailure
}
