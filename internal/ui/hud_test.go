package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcopy-dev/pcopy/internal/stats"
)

func runHUD(t *testing.T, collector *stats.Collector, workers int, evs ...Event) (*hudPresenter, string) {
	t.Helper()
	var out bytes.Buffer
	p := newHUDPresenter(&out, collector, workers, 120)

	events := make(chan Event, len(evs))
	for _, ev := range evs {
		events <- ev
	}
	close(events)

	require.NoError(t, p.Run(events))
	return p, out.String()
}

func TestHUDFeedLines(t *testing.T) {
	collector := stats.NewCollector()
	collector.SetTotals(3, 3000)

	_, out := runHUD(t, collector, 2,
		Event{Type: ScanComplete, Total: 3, TotalSize: 3000},
		Event{Type: FileCompleted, Path: "some/dir/file.txt", Size: 1024},
		Event{Type: FileSkipped, Path: "same.txt", Size: 10},
		Event{Type: FileFailed, Path: "bad.txt", Error: assert.AnError},
	)

	assert.Contains(t, out, "✓  "+ansiDim+"some/dir/"+ansiReset+"file.txt  1.0 KiB")
	assert.Contains(t, out, "–  same.txt")
	assert.Contains(t, out, "up to date")
	assert.Contains(t, out, "✗  bad.txt  "+assert.AnError.Error())
}

func TestHUDTracksBusyWorkers(t *testing.T) {
	collector := stats.NewCollector()

	p, _ := runHUD(t, collector, 2,
		Event{Type: FileStarted, Path: "a", WorkerID: 0},
		Event{Type: FileStarted, Path: "b", WorkerID: 1},
		Event{Type: FileStarted, Path: "c", WorkerID: 4}, // grows the slice
		Event{Type: FileCompleted, Path: "a", WorkerID: 0},
	)

	assert.Equal(t, []bool{false, true, false, false, true}, p.busy)
}

func TestHUDDrawUsesBytesDone(t *testing.T) {
	var out bytes.Buffer
	collector := stats.NewCollector()
	collector.SetTotals(2, 1000)
	collector.AddBytesSkipped(600)
	collector.AddFilesSkipped(1)
	collector.AddBytesCopied(400)
	collector.AddFilesCopied(1)

	p := newHUDPresenter(&out, collector, 3, 100)
	p.drawHUD()

	s := out.String()
	assert.Contains(t, s, "100%")
	assert.Contains(t, s, "1000 B / 1000 B")
	assert.Contains(t, s, "2 / 2 files")
	assert.Contains(t, s, "□□□")
	assert.Equal(t, 2, p.hudLines)
}

func TestHUDScanningLine(t *testing.T) {
	var out bytes.Buffer
	collector := stats.NewCollector()
	collector.AddDirsScanned(7)
	collector.AddFilesTotal(42)

	p := newHUDPresenter(&out, collector, 1, 100)
	p.handleEvent(Event{Type: ScanStarted})
	p.handleEvent(Event{Type: ScanDir, Path: "/data/photos"})
	p.drawHUD()

	s := out.String()
	assert.Contains(t, s, "scanning")
	assert.Contains(t, s, "7 dirs")
	assert.Contains(t, s, "42 files")
	assert.Contains(t, s, "/data/photos")
	assert.Equal(t, 1, p.hudLines)
}

func TestHUDClearsBeforeFeedLine(t *testing.T) {
	var out bytes.Buffer
	collector := stats.NewCollector()
	p := newHUDPresenter(&out, collector, 1, 100)

	p.drawHUD()
	p.handleEvent(Event{Type: FileCompleted, Path: "x.txt", Size: 1})

	s := out.String()
	clear := "\033[2A\033[J"
	require.Contains(t, s, clear)
	assert.Less(t, strings.Index(s, clear), strings.Index(s, "x.txt"))
	assert.Equal(t, 0, p.hudLines)
}

func TestHUDSummary(t *testing.T) {
	collector := stats.NewCollector()
	collector.AddFilesCopied(3)
	p := newHUDPresenter(&bytes.Buffer{}, collector, 1, 0)
	assert.Contains(t, p.Summary(), "copied 3")
	assert.Equal(t, 80, p.width)
}
