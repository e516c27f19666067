package engine

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Action is the resume decision for one destination file.
type Action int

const (
	// CreateNew: the destination does not exist.
	CreateNew Action = iota
	// Recreate: the destination exists but is stale; delete it and copy again.
	Recreate
	// Skip: the destination already matches the source in size and mtime.
	Skip
)

func (a Action) String() string {
	switch a {
	case CreateNew:
		return "create"
	case Recreate:
		return "recreate"
	case Skip:
		return "skip"
	default:
		return "unknown"
	}
}

// Decision is the outcome of Decide for one file.
type Decision struct {
	Path   string
	Action Action
}

// DestinationPath maps a source file onto the destination tree. A
// single-file source (empty RelPath) maps onto dstRoot itself.
func DestinationPath(dstRoot string, f SourceFile) string {
	if f.RelPath == "" {
		return dstRoot
	}
	return filepath.Join(dstRoot, f.RelPath)
}

// Decide classifies dstPath against the source metadata. A destination is
// only skipped when the source mtime is known and both mtime and size match;
// anything else that exists is recreated.
func Decide(dstPath string, f SourceFile) Decision {
	info, err := os.Stat(dstPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Decision{Path: dstPath, Action: CreateNew}
	}
	if err != nil || !f.HasModTime() || !info.Mode().IsRegular() {
		return Decision{Path: dstPath, Action: Recreate}
	}
	if info.ModTime().Equal(f.ModTime) && info.Size() == f.Size {
		return Decision{Path: dstPath, Action: Skip}
	}
	return Decision{Path: dstPath, Action: Recreate}
}

// OpenDestination prepares the destination for a copy: missing parent
// directories are created, a stale file is removed, and a fresh empty file
// is opened for writing. It must not be called for Skip decisions.
func OpenDestination(d Decision, f SourceFile) (*os.File, error) {
	if d.Action == Skip {
		return nil, newCopyError(ErrDestinationCreate, d.Path, errors.New("destination is up to date"))
	}

	if err := os.MkdirAll(filepath.Dir(d.Path), 0o755); err != nil {
		return nil, newCopyError(ErrDestinationCreate, d.Path, err)
	}

	if d.Action == Recreate {
		if err := os.Remove(d.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, newCopyError(ErrDestinationCreate, d.Path, err)
		}
	}

	perm := f.Mode.Perm()
	if perm == 0 {
		perm = 0o644
	}
	fd, err := os.OpenFile(d.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return nil, newCopyError(ErrDestinationCreate, d.Path, err)
	}
	return fd, nil
}
