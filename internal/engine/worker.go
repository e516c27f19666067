package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/pcopy-dev/pcopy/internal/event"
	"github.com/pcopy-dev/pcopy/internal/platform"
	"github.com/pcopy-dev/pcopy/internal/stats"
)

// progressInterval is how many bytes a worker copies between FileProgress events.
const progressInterval = 1 << 20

// WorkerConfig controls worker behavior.
type WorkerConfig struct {
	Stats      stats.Writer
	Events     chan<- event.Event
	Errs       chan<- error // optional; failures are sent without blocking
	Logger     *slog.Logger
	DstRoot    string
	NumWorkers int
	BufferSize int
	DryRun     bool
}

// WorkerPool runs a fixed number of copy workers against a WorkQueue.
type WorkerPool struct {
	cfg WorkerConfig
	log *slog.Logger
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(cfg WorkerConfig) (*WorkerPool, error) {
	if cfg.NumWorkers < 1 {
		return nil, fmt.Errorf("worker count must be at least 1, got %d", cfg.NumWorkers)
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if cfg.Stats == nil {
		cfg.Stats = stats.NewCollector()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &WorkerPool{cfg: cfg, log: log}, nil
}

// Run starts the workers and blocks until every one of them has returned.
// A worker stops when the queue is empty or ctx is cancelled; a failed file
// never stops it. The only error returned is the context's.
func (wp *WorkerPool) Run(ctx context.Context, queue *WorkQueue) error {
	var g errgroup.Group
	for id := range wp.cfg.NumWorkers {
		g.Go(func() error {
			return wp.work(ctx, id, queue)
		})
	}
	return g.Wait()
}

func (wp *WorkerPool) work(ctx context.Context, id int, queue *WorkQueue) error {
	buf := make([]byte, wp.cfg.BufferSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, ok := queue.Next()
		if !ok {
			return nil
		}
		if err := wp.processFile(ctx, id, f, buf); err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				// Interrupted mid-file; the partial destination is recreated next run.
				return err
			}
			wp.reportFailure(ctx, id, f, err)
		}
	}
}

// processFile decides, copies and stamps one file. Panics are turned into
// errors so one bad file cannot take the pool down.
func (wp *WorkerPool) processFile(ctx context.Context, id int, f SourceFile, buf []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic copying %s: %v", f.Path, r)
		}
	}()

	emit(ctx, wp.cfg.Events, event.Event{
		Type:     event.FileStarted,
		Path:     f.displayPath(),
		Size:     f.Size,
		WorkerID: id,
	})

	decision := Decide(DestinationPath(wp.cfg.DstRoot, f), f)
	wp.log.Debug("resume decision", "path", f.displayPath(), "action", decision.Action.String(), "worker", id)

	if decision.Action == Skip {
		wp.cfg.Stats.AddBytesSkipped(f.Size)
		wp.cfg.Stats.AddFilesSkipped(1)
		emit(ctx, wp.cfg.Events, event.Event{
			Type:     event.FileSkipped,
			Path:     f.displayPath(),
			Size:     f.Size,
			WorkerID: id,
		})
		return nil
	}

	if wp.cfg.DryRun {
		// Nothing is written, so the file completes with zero bytes.
		wp.cfg.Stats.AddFilesCopied(1)
		emit(ctx, wp.cfg.Events, event.Event{
			Type:     event.FileCompleted,
			Path:     f.displayPath(),
			WorkerID: id,
		})
		return nil
	}

	written, err := wp.copyFile(ctx, id, f, decision, buf)
	if err != nil {
		return err
	}

	wp.cfg.Stats.AddFilesCopied(1)
	emit(ctx, wp.cfg.Events, event.Event{
		Type:     event.FileCompleted,
		Path:     f.displayPath(),
		Size:     written,
		WorkerID: id,
	})
	return nil
}

func (wp *WorkerPool) copyFile(
	ctx context.Context,
	id int,
	f SourceFile,
	decision Decision,
	buf []byte,
) (int64, error) {
	src, err := os.Open(f.Path)
	if err != nil {
		return 0, newCopyError(ErrSourceOpen, f.Path, err)
	}
	defer src.Close()

	dst, err := OpenDestination(decision, f)
	if err != nil {
		return 0, err
	}
	// Covers error returns and panics; success closes below with the error checked.
	defer dst.Close()
	platform.Preallocate(dst, f.Size)

	var done, sinceEvent int64
	written, err := copyStream(ctx, src, dst, buf, func(n int64) {
		wp.cfg.Stats.AddBytesCopied(n)
		done += n
		sinceEvent += n
		if sinceEvent >= progressInterval {
			sinceEvent = 0
			emitLossy(wp.cfg.Events, event.Event{
				Type:     event.FileProgress,
				Path:     f.displayPath(),
				Size:     done,
				Total:    f.Size,
				WorkerID: id,
			})
		}
	})
	if err != nil {
		var ce *CopyError
		if errors.As(err, &ce) && ce.Path == "" {
			ce.Path = f.Path
		}
		return written, err
	}

	if err := dst.Close(); err != nil {
		return written, newCopyError(ErrWrite, decision.Path, err)
	}

	// Stamp only after the last byte is on its way to disk; an unstamped
	// destination is always recreated by the next run.
	if f.HasModTime() {
		if err := platform.SetTimes(decision.Path, f.AccTime, f.ModTime); err != nil {
			return written, newCopyError(ErrWrite, decision.Path, err)
		}
	}
	return written, nil
}

func (wp *WorkerPool) reportFailure(ctx context.Context, id int, f SourceFile, err error) {
	wp.cfg.Stats.AddFilesFailed(1)
	wp.log.Warn("copy failed", "path", f.Path, "worker", id, "error", err)
	emit(ctx, wp.cfg.Events, event.Event{
		Type:     event.FileFailed,
		Path:     f.displayPath(),
		Size:     f.Size,
		Error:    err,
		WorkerID: id,
	})
	if wp.cfg.Errs != nil {
		select {
		case wp.cfg.Errs <- err:
		default:
		}
	}
}
