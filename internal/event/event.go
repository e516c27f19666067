package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	ScanStarted Type = iota + 1
	ScanDir
	ScanComplete
	FileStarted
	FileProgress
	FileCompleted
	FileFailed
	FileSkipped
)

var typeNames = [...]string{
	ScanStarted:   "ScanStarted",
	ScanDir:       "ScanDir",
	ScanComplete:  "ScanComplete",
	FileStarted:   "FileStarted",
	FileProgress:  "FileProgress",
	FileCompleted: "FileCompleted",
	FileFailed:    "FileFailed",
	FileSkipped:   "FileSkipped",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from the engine.
type Event struct {
	Type      Type
	Timestamp time.Time
	Path      string // source-relative path; directory path for ScanDir
	Size      int64  // file size, or bytes so far for FileProgress
	Total     int64  // total files (ScanComplete), file size (FileProgress)
	TotalSize int64  // total bytes (ScanComplete)
	Error     error
	WorkerID  int
}
