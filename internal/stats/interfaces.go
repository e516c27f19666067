package stats

import "time"

// Writer is the side of the collector used by the engine.
type Writer interface {
	AddBytesCopied(n int64)
	AddBytesSkipped(n int64)
	AddFilesCopied(n int64)
	AddFilesSkipped(n int64)
	AddFilesFailed(n int64)
	AddFilesTotal(n int64)
	AddBytesTotal(n int64)
	AddDirsScanned(n int64)
	SetTotals(files, bytes int64)
}

// Reader is the polling side used by presenters.
type Reader interface {
	Snapshot() Snapshot
	RollingSpeed(seconds int) float64
	RollingFilesPerSec(seconds int) float64
	SparklineData(n int) []float64
	ETA() time.Duration
}

// ReadTicker is a Reader that also owns the once-a-second sampling tick.
type ReadTicker interface {
	Reader
	Tick()
}

var (
	_ Writer     = (*Collector)(nil)
	_ ReadTicker = (*Collector)(nil)
)
