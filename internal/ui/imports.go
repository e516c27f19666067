package ui

import "github.com/pcopy-dev/pcopy/internal/event"

// Event is the engine event consumed by presenters.
type Event = event.Event

// Re-export event types for convenience.
const (
	ScanStarted   = event.ScanStarted
	ScanDir       = event.ScanDir
	ScanComplete  = event.ScanComplete
	FileStarted   = event.FileStarted
	FileProgress  = event.FileProgress
	FileCompleted = event.FileCompleted
	FileFailed    = event.FileFailed
	FileSkipped   = event.FileSkipped
)
