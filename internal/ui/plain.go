package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/pcopy-dev/pcopy/internal/stats"
)

const plainProgressInterval = 5 * time.Second

// plainPresenter writes one line per finished file to w and a periodic
// progress line to errW. Used when stderr is not a terminal.
type plainPresenter struct {
	w     io.Writer
	errW  io.Writer
	stats stats.ReadTicker
}

func (p *plainPresenter) Run(events <-chan Event) error {
	progress := time.NewTicker(plainProgressInterval)
	defer progress.Stop()
	sample := time.NewTicker(time.Second)
	defer sample.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.handleEvent(ev)
		case <-sample.C:
			p.stats.Tick()
		case <-progress.C:
			p.printProgress()
		}
	}
}

func (p *plainPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case FileCompleted:
		fmt.Fprintf(p.w, "copied   %s  %s\n", ev.Path, FormatBytes(ev.Size))
	case FileSkipped:
		fmt.Fprintf(p.w, "skipped  %s  %s\n", ev.Path, FormatBytes(ev.Size))
	case FileFailed:
		msg := "error"
		if ev.Error != nil {
			msg = ev.Error.Error()
		}
		fmt.Fprintf(p.w, "failed   %s  %s\n", ev.Path, msg)
	case ScanComplete:
		fmt.Fprintf(p.errW, "scanned %s files, %s\n", FormatCount(ev.Total), FormatBytes(ev.TotalSize))
	}
}

func (p *plainPresenter) printProgress() {
	snap := p.stats.Snapshot()
	if snap.FilesTotal == 0 {
		fmt.Fprintf(p.errW, "progress: scanning, %s dirs\n", FormatCount(snap.DirsScanned))
		return
	}
	fmt.Fprintf(p.errW, "progress: %.0f%% %s/%s %s/%s files %s eta %s\n",
		snap.Percent()*100,
		FormatBytes(snap.BytesDone()), FormatBytes(snap.BytesTotal),
		FormatCount(snap.FilesDone()), FormatCount(snap.FilesTotal),
		FormatRate(p.stats.RollingSpeed(10)),
		FormatDuration(p.stats.ETA()),
	)
}

func (p *plainPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}
