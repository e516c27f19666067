package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcopy-dev/pcopy/internal/stats"
)

func TestPlainPresenterFileLines(t *testing.T) {
	var out, errOut bytes.Buffer
	p := &plainPresenter{w: &out, errW: &errOut, stats: stats.NewCollector()}

	events := make(chan Event, 10)
	events <- Event{Type: FileCompleted, Path: "dir/file.txt", Size: 1024}
	events <- Event{Type: FileSkipped, Path: "dir/old.bin", Size: 2048}
	events <- Event{Type: FileFailed, Path: "fail.txt", Size: 512, Error: assert.AnError}
	events <- Event{Type: FileStarted, Path: "dir/file.txt"}
	close(events)

	require.NoError(t, p.Run(events))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "copied   dir/file.txt  1.0 KiB", lines[0])
	assert.Equal(t, "skipped  dir/old.bin  2.0 KiB", lines[1])
	assert.Equal(t, "failed   fail.txt  "+assert.AnError.Error(), lines[2])
}

func TestPlainPresenterScanCompleteGoesToStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	p := &plainPresenter{w: &out, errW: &errOut, stats: stats.NewCollector()}

	p.handleEvent(Event{Type: ScanComplete, Total: 1200, TotalSize: 1 << 20})

	assert.Empty(t, out.String())
	assert.Equal(t, "scanned 1,200 files, 1.0 MiB\n", errOut.String())
}

func TestPlainPresenterProgress(t *testing.T) {
	var out, errOut bytes.Buffer
	collector := stats.NewCollector()
	collector.SetTotals(4, 4000)
	collector.AddBytesCopied(1000)
	collector.AddFilesCopied(1)
	collector.AddBytesSkipped(1000)
	collector.AddFilesSkipped(1)
	p := &plainPresenter{w: &out, errW: &errOut, stats: collector}

	p.printProgress()

	line := errOut.String()
	assert.True(t, strings.HasPrefix(line, "progress: 50% "), line)
	assert.Contains(t, line, "2/4 files")
}

func TestPlainPresenterProgressWhileScanning(t *testing.T) {
	var errOut bytes.Buffer
	collector := stats.NewCollector()
	collector.AddDirsScanned(12)
	p := &plainPresenter{w: &bytes.Buffer{}, errW: &errOut, stats: collector}

	p.printProgress()
	assert.Equal(t, "progress: scanning, 12 dirs\n", errOut.String())
}
