package stats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
)

const ringSize = 60

// Collector tracks copy statistics using lock-free atomic counters.
// Workers only ever add; presenters only read and Tick.
type Collector struct {
	bytesCopied  atomic.Int64
	bytesSkipped atomic.Int64
	bytesTotal   atomic.Int64
	filesCopied  atomic.Int64
	filesSkipped atomic.Int64
	filesFailed  atomic.Int64
	filesTotal   atomic.Int64
	dirsScanned  atomic.Int64
	startTime    time.Time

	// Ring buffer, written only by Tick().
	mu          sync.Mutex
	throughput  [ringSize]int64 // bytes delta per second
	filesPerSec [ringSize]int64 // files delta per second
	ringIdx     int
	ringCount   int // samples written, capped at ringSize
	lastBytes   int64
	lastFiles   int64
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// SetTotals records scan totals (called once when the scan completes).
func (c *Collector) SetTotals(files, bytes int64) {
	c.filesTotal.Store(files)
	c.bytesTotal.Store(bytes)
}

// AddFilesTotal atomically increments the total file count (used during scanning).
func (c *Collector) AddFilesTotal(n int64) { c.filesTotal.Add(n) }

// AddBytesTotal atomically increments the total byte count (used during scanning).
func (c *Collector) AddBytesTotal(n int64) { c.bytesTotal.Add(n) }

func (c *Collector) AddBytesCopied(n int64)  { c.bytesCopied.Add(n) }
func (c *Collector) AddBytesSkipped(n int64) { c.bytesSkipped.Add(n) }
func (c *Collector) AddFilesCopied(n int64)  { c.filesCopied.Add(n) }
func (c *Collector) AddFilesSkipped(n int64) { c.filesSkipped.Add(n) }
func (c *Collector) AddFilesFailed(n int64)  { c.filesFailed.Add(n) }
func (c *Collector) AddDirsScanned(n int64)  { c.dirsScanned.Add(n) }

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	BytesCopied  int64
	BytesSkipped int64
	BytesTotal   int64
	FilesCopied  int64
	FilesSkipped int64
	FilesFailed  int64
	FilesTotal   int64
	DirsScanned  int64
	Elapsed      time.Duration
}

// BytesDone is the progress numerator: bytes written plus the size of
// files skipped as already up to date.
func (s Snapshot) BytesDone() int64 { return s.BytesCopied + s.BytesSkipped }

// FilesDone counts files that are complete at the destination, whether
// copied in this run or skipped.
func (s Snapshot) FilesDone() int64 { return s.FilesCopied + s.FilesSkipped }

// Percent returns progress in [0, 1]. An empty transfer is complete.
func (s Snapshot) Percent() float64 {
	if s.BytesTotal <= 0 {
		if s.FilesTotal > 0 && s.FilesDone() < s.FilesTotal {
			return 0
		}
		return 1
	}
	pct := float64(s.BytesDone()) / float64(s.BytesTotal)
	if pct > 1 {
		pct = 1
	}
	return pct
}

// Snapshot returns a point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		BytesCopied:  c.bytesCopied.Load(),
		BytesSkipped: c.bytesSkipped.Load(),
		BytesTotal:   c.bytesTotal.Load(),
		FilesCopied:  c.filesCopied.Load(),
		FilesSkipped: c.filesSkipped.Load(),
		FilesFailed:  c.filesFailed.Load(),
		FilesTotal:   c.filesTotal.Load(),
		DirsScanned:  c.dirsScanned.Load(),
		Elapsed:      c.Elapsed(),
	}
}

// Tick snapshots byte/file deltas into the ring buffer. Called 1/sec by the presenter.
func (c *Collector) Tick() {
	currentBytes := c.bytesCopied.Load()
	currentFiles := c.filesCopied.Load()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.throughput[c.ringIdx] = currentBytes - c.lastBytes
	c.filesPerSec[c.ringIdx] = currentFiles - c.lastFiles
	c.lastBytes = currentBytes
	c.lastFiles = currentFiles

	c.ringIdx = (c.ringIdx + 1) % ringSize
	if c.ringCount < ringSize {
		c.ringCount++
	}
}

// RollingSpeed returns average bytes/sec over the last n seconds of samples.
func (c *Collector) RollingSpeed(seconds int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rollingAvg(c.throughput[:], seconds)
}

// RollingFilesPerSec returns average files/sec over the last n seconds.
func (c *Collector) RollingFilesPerSec(seconds int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rollingAvg(c.filesPerSec[:], seconds)
}

func (c *Collector) rollingAvg(buf []int64, n int) float64 {
	count := min(n, c.ringCount)
	if count <= 0 {
		return 0
	}
	var sum int64
	for i := range count {
		idx := (c.ringIdx - 1 - i + ringSize) % ringSize
		sum += buf[idx]
	}
	return float64(sum) / float64(count)
}

// SparklineData returns the last n bytes/sec samples, oldest first.
func (c *Collector) SparklineData(n int) []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := min(n, c.ringCount)
	if count <= 0 {
		return nil
	}

	data := make([]float64, count)
	for i := range count {
		idx := (c.ringIdx - count + i + ringSize) % ringSize
		data[i] = float64(c.throughput[idx])
	}
	return data
}

// ETA estimates remaining time from rolling speed and the bytes not yet
// copied or skipped.
func (c *Collector) ETA() time.Duration {
	speed := c.RollingSpeed(10)
	if speed <= 0 {
		return 0
	}
	remaining := c.bytesTotal.Load() - c.bytesCopied.Load() - c.bytesSkipped.Load()
	if remaining <= 0 {
		return 0
	}
	return time.Duration(float64(remaining)/speed) * time.Second
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"copied=%d skipped=%d failed=%d total=%d bytes=%d/%d",
		s.FilesCopied, s.FilesSkipped, s.FilesFailed, s.FilesTotal,
		s.BytesDone(), s.BytesTotal,
	)
}

// FormatBytes returns a human-readable, 1024-based byte count.
func FormatBytes(b int64) string {
	if b < 0 {
		return "-" + humanize.IBytes(uint64(-b))
	}
	return humanize.IBytes(uint64(b))
}
