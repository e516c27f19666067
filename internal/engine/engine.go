package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/pcopy-dev/pcopy/internal/event"
	"github.com/pcopy-dev/pcopy/internal/stats"
)

// DefaultWorkers is the number of copy workers used when none is configured.
const DefaultWorkers = 3

// maxReportedErrors bounds how many per-file errors Run keeps for its result.
const maxReportedErrors = 64

// Config describes a copy operation.
type Config struct {
	Stats       *stats.Collector // created by Run when nil
	Events      chan<- event.Event
	Logger      *slog.Logger
	Src         string
	Dst         string
	Workers     int
	ScanWorkers int
	BufferSize  int
	DryRun      bool
}

// Result is the outcome of a copy operation.
type Result struct {
	RunID string
	Stats stats.Snapshot
	Err   error
}

// Run executes a copy operation, blocking until complete. The whole source
// tree is scanned before any file is copied. Run never closes cfg.Events.
func Run(ctx context.Context, cfg Config) Result {
	runID := uuid.NewString()
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With("run", runID)

	collector := cfg.Stats
	if collector == nil {
		collector = stats.NewCollector()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}

	result := func(err error) Result {
		return Result{RunID: runID, Stats: collector.Snapshot(), Err: err}
	}

	log.Debug("scan started", "src", cfg.Src)
	scanner := NewScanner(ScannerConfig{
		Root:    cfg.Src,
		Workers: cfg.ScanWorkers,
		Stats:   collector,
		Events:  cfg.Events,
		Logger:  log,
	})
	files, err := scanner.Scan(ctx)
	if err != nil {
		log.Debug("scan failed", "src", cfg.Src, "error", err)
		return result(fmt.Errorf("scan: %w", err))
	}

	var totalBytes int64
	for _, f := range files {
		totalBytes += f.Size
	}
	collector.SetTotals(int64(len(files)), totalBytes)
	emit(ctx, cfg.Events, event.Event{
		Type:      event.ScanComplete,
		Total:     int64(len(files)),
		TotalSize: totalBytes,
	})
	log.Debug("scan complete", "files", len(files), "bytes", totalBytes)

	if !cfg.DryRun {
		if err := prepareDestination(cfg.Dst, files); err != nil {
			log.Debug("destination unavailable", "dst", cfg.Dst, "error", err)
			return result(err)
		}
	}

	errs := make(chan error, maxReportedErrors)
	pool, err := NewWorkerPool(WorkerConfig{
		NumWorkers: cfg.Workers,
		BufferSize: cfg.BufferSize,
		DstRoot:    cfg.Dst,
		DryRun:     cfg.DryRun,
		Stats:      collector,
		Events:     cfg.Events,
		Errs:       errs,
		Logger:     log,
	})
	if err != nil {
		return result(fmt.Errorf("create worker pool: %w", err))
	}

	runErr := pool.Run(ctx, NewWorkQueue(files))
	close(errs)

	copyErr := aggregate(errs, collector.Snapshot().FilesFailed)
	if runErr != nil {
		copyErr = errors.Join(runErr, copyErr)
	}

	res := result(copyErr)
	log.Debug("copy finished",
		"copied", res.Stats.FilesCopied,
		"skipped", res.Stats.FilesSkipped,
		"failed", res.Stats.FilesFailed,
		"bytes", res.Stats.BytesCopied,
		"elapsed", res.Stats.Elapsed)
	return res
}

// prepareDestination creates the destination root for a directory source,
// or the parent of the target path for a single-file source.
func prepareDestination(dst string, files []SourceFile) error {
	dir := dst
	if len(files) == 1 && files[0].RelPath == "" {
		dir = filepath.Dir(dst)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newCopyError(ErrDestinationCreate, dir, err)
	}
	return nil
}

// aggregate folds per-file errors into one, keeping the first and counting
// the rest. failed is the authoritative count, since errs is bounded.
func aggregate(errs <-chan error, failed int64) error {
	var first error
	for err := range errs {
		if first == nil {
			first = err
		}
	}
	if first == nil {
		return nil
	}
	if failed > 1 {
		return fmt.Errorf("%w (and %d more errors)", first, failed-1)
	}
	return first
}
