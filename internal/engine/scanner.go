package engine

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/pcopy-dev/pcopy/internal/event"
	"github.com/pcopy-dev/pcopy/internal/platform"
	"github.com/pcopy-dev/pcopy/internal/stats"
)

// ScannerConfig controls scanner behavior.
type ScannerConfig struct {
	Stats   stats.Writer
	Events  chan<- event.Event
	Logger  *slog.Logger
	Root    string
	Workers int
}

// Scanner enumerates every regular file under a root, in parallel, before
// any copying starts.
type Scanner struct {
	cfg     ScannerConfig
	log     *slog.Logger
	readDir func(string) ([]os.DirEntry, error)

	mu    sync.Mutex
	files []SourceFile
}

// NewScanner creates a scanner with the given config.
func NewScanner(cfg ScannerConfig) *Scanner {
	if cfg.Workers <= 0 {
		cfg.Workers = min(runtime.NumCPU(), 8)
	}
	if abs, err := filepath.Abs(cfg.Root); err == nil {
		cfg.Root = abs
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{cfg: cfg, log: log, readDir: os.ReadDir}
}

// Scan walks the root and returns the files found, in no particular order.
// Only a failure on the root itself is returned as an error; unreadable
// entries below it are logged and skipped.
func (s *Scanner) Scan(ctx context.Context) ([]SourceFile, error) {
	root := s.cfg.Root
	emit(ctx, s.cfg.Events, event.Event{Type: event.ScanStarted, Path: root})

	info, err := os.Stat(root)
	if err != nil {
		return nil, newCopyError(ErrDirectoryUnreadable, root, err)
	}

	if !info.IsDir() {
		if !info.Mode().IsRegular() {
			return nil, newCopyError(ErrDirectoryUnreadable, root,
				fmt.Errorf("not a regular file or directory (%s)", info.Mode().Type()))
		}
		s.add(newSourceFile(root, "", info))
		return s.files, nil
	}

	entries, err := s.readDir(root)
	if err != nil {
		return nil, newCopyError(ErrDirectoryUnreadable, root, err)
	}

	s.scanTree(ctx, entries)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.files, nil
}

func (s *Scanner) scanTree(ctx context.Context, rootEntries []os.DirEntry) {
	dirs := make(chan string, s.cfg.Workers*4)
	var outstanding sync.WaitGroup // directories queued but not yet scanned

	var workerWg sync.WaitGroup
	for range s.cfg.Workers {
		workerWg.Add(1)
		go func() {
			defer workerWg.Done()
			for dir := range dirs {
				s.scanSubdir(ctx, dir, dirs, &outstanding)
			}
		}()
	}

	outstanding.Add(1)
	s.scanDir(ctx, s.cfg.Root, rootEntries, dirs, &outstanding)
	outstanding.Done()

	// Wait for all directory work to finish, then release the workers.
	outstanding.Wait()
	close(dirs)
	workerWg.Wait()
}

// scanSubdir lists and scans a directory below the root. A directory that
// cannot be listed is skipped; entries read before a listing error are
// still scanned.
func (s *Scanner) scanSubdir(ctx context.Context, dir string, dirs chan<- string, outstanding *sync.WaitGroup) {
	defer outstanding.Done()

	entries, err := s.readDir(dir)
	if err != nil {
		if len(entries) == 0 {
			s.log.Warn("skipping unreadable directory", "path", dir, "error", err)
			return
		}
		s.log.Warn("directory partially read", "path", dir, "entries", len(entries), "error", err)
	}
	s.scanDir(ctx, dir, entries, dirs, outstanding)
}

func (s *Scanner) scanDir(
	ctx context.Context,
	dir string,
	entries []os.DirEntry,
	dirs chan<- string,
	outstanding *sync.WaitGroup,
) {
	emitLossy(s.cfg.Events, event.Event{Type: event.ScanDir, Path: dir})
	if s.cfg.Stats != nil {
		s.cfg.Stats.AddDirsScanned(1)
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}

		path := filepath.Join(dir, entry.Name())
		info, err := os.Lstat(path)
		if err != nil {
			s.log.Warn("skipping entry", "path", path,
				"error", newCopyError(ErrMetadataUnreadable, path, err))
			continue
		}

		switch mode := info.Mode(); {
		case mode.IsDir():
			outstanding.Add(1)
			select {
			case dirs <- path:
			default:
				// Every worker may be busy sending; scan inline rather than block.
				s.scanSubdir(ctx, path, dirs, outstanding)
			}

		case mode.IsRegular():
			rel, err := filepath.Rel(s.cfg.Root, path)
			if err != nil {
				s.log.Warn("skipping entry", "path", path, "error", err)
				continue
			}
			s.add(newSourceFile(path, rel, info))

		default:
			s.log.Debug("skipping non-regular file", "path", path, "mode", mode.Type().String())
		}
	}
}

func (s *Scanner) add(f SourceFile) {
	s.mu.Lock()
	s.files = append(s.files, f)
	s.mu.Unlock()

	if s.cfg.Stats != nil {
		s.cfg.Stats.AddFilesTotal(1)
		s.cfg.Stats.AddBytesTotal(f.Size)
	}
}

func newSourceFile(path, rel string, info fs.FileInfo) SourceFile {
	return SourceFile{
		Path:    path,
		RelPath: rel,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		AccTime: platform.AccessTime(info),
		Mode:    info.Mode().Perm(),
	}
}
