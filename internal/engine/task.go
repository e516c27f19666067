package engine

import (
	"io/fs"
	"time"
)

// SourceFile describes one regular file found by the scanner. It is
// immutable once created.
type SourceFile struct {
	ModTime time.Time   // zero when the source mtime could not be read
	AccTime time.Time   // stamped onto the destination alongside ModTime
	Path    string      // absolute source path
	RelPath string      // relative to the source root; "" for a single-file source
	Size    int64       // bytes
	Mode    fs.FileMode // permission bits for the destination
}

// HasModTime reports whether the source modification time is known.
func (f SourceFile) HasModTime() bool {
	return !f.ModTime.IsZero()
}

// displayPath is the path used in events and log records.
func (f SourceFile) displayPath() string {
	if f.RelPath == "" {
		return f.Path
	}
	return f.RelPath
}
