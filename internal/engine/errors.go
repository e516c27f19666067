package engine

import (
	"errors"
	"fmt"
)

// Failure kinds. Scan-phase kinds are ErrMetadataUnreadable (entry skipped)
// and ErrDirectoryUnreadable (run aborted); the rest abort a single file.
var (
	ErrMetadataUnreadable  = errors.New("metadata unreadable")
	ErrDirectoryUnreadable = errors.New("directory unreadable")
	ErrSourceOpen          = errors.New("cannot open source")
	ErrDestinationCreate   = errors.New("cannot create destination")
	ErrRead                = errors.New("read failed")
	ErrWrite               = errors.New("write failed")
)

// CopyError ties a failure kind to the path it happened on and the
// underlying cause. errors.Is matches both Kind and Err.
type CopyError struct {
	Kind error
	Err  error
	Path string
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *CopyError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func newCopyError(kind error, path string, err error) *CopyError {
	return &CopyError{Kind: kind, Path: path, Err: err}
}
