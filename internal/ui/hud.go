package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/pcopy-dev/pcopy/internal/stats"
)

// ANSI escape sequences.
const (
	ansiDim   = "\033[2m"
	ansiReset = "\033[0m"
)

const (
	sparklineWidth   = 20
	progressBarWidth = 20
	hudMinInterval   = 50 * time.Millisecond
)

// hudPresenter prints a scrolling feed of finished files above a small
// status block that is redrawn in place on the terminal.
type hudPresenter struct {
	w     io.Writer
	stats stats.ReadTicker
	width int

	busy     []bool // indexed by worker id
	scanning bool
	lastDir  string

	hudLines int // lines of the status block currently on screen
	lastDraw time.Time
}

func newHUDPresenter(w io.Writer, st stats.ReadTicker, workers, width int) *hudPresenter {
	if width <= 0 {
		width = 80
	}
	return &hudPresenter{
		w:     w,
		stats: st,
		width: width,
		busy:  make([]bool, max(workers, 0)),
	}
}

func (p *hudPresenter) Run(events <-chan Event) error {
	// Seed the ring quickly, then sample once a second.
	sample := time.NewTicker(250 * time.Millisecond)
	defer sample.Stop()
	seeded := false

	redraw := time.NewTicker(100 * time.Millisecond)
	defer redraw.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				p.clearHUD()
				return nil
			}
			p.handleEvent(ev)
			if time.Since(p.lastDraw) >= hudMinInterval {
				p.drawHUD()
			}

		case <-redraw.C:
			p.drawHUD()

		case <-sample.C:
			p.stats.Tick()
			if !seeded {
				seeded = true
				sample.Reset(time.Second)
			}
		}
	}
}

func (p *hudPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case ScanStarted:
		p.scanning = true
	case ScanDir:
		p.lastDir = ev.Path
	case ScanComplete:
		p.scanning = false
	case FileStarted:
		p.setBusy(ev.WorkerID, true)
	case FileCompleted:
		p.setBusy(ev.WorkerID, false)
		p.printFeed("✓", ev.Path, FormatBytes(ev.Size))
	case FileSkipped:
		p.setBusy(ev.WorkerID, false)
		p.printFeed("–", ev.Path, ansiDim+"up to date"+ansiReset)
	case FileFailed:
		p.setBusy(ev.WorkerID, false)
		msg := "error"
		if ev.Error != nil {
			msg = ev.Error.Error()
		}
		p.printFeed("✗", ev.Path, msg)
	}
}

func (p *hudPresenter) setBusy(id int, busy bool) {
	if id < 0 {
		return
	}
	for id >= len(p.busy) {
		p.busy = append(p.busy, false)
	}
	p.busy[id] = busy
}

func (p *hudPresenter) printFeed(icon, path, detail string) {
	p.clearHUD()
	fmt.Fprintf(p.w, "%s  %s  %s\n", icon, p.styledPath(path), detail)
}

func (p *hudPresenter) drawHUD() {
	p.clearHUD()
	snap := p.stats.Snapshot()

	if p.scanning {
		dir := truncLeft(p.lastDir, max(p.width-40, 10))
		fmt.Fprintf(p.w, "%sscanning%s  %s dirs  %s files  %s\n",
			ansiDim, ansiReset,
			FormatCount(snap.DirsScanned), FormatCount(snap.FilesTotal), dir)
		p.hudLines = 1
		p.lastDraw = time.Now()
		return
	}

	spark := Sparkline(p.stats.SparklineData(sparklineWidth), sparklineWidth)
	fmt.Fprintf(p.w, "       %s   %s   %s / %s\n",
		spark, FormatRate(p.stats.RollingSpeed(10)),
		FormatBytes(snap.BytesDone()), FormatBytes(snap.BytesTotal))

	pct := snap.Percent()
	fmt.Fprintf(p.w, " %3.0f%%  %s   %s / %s files   eta %s   %s\n",
		pct*100, ProgressBar(pct, progressBarWidth),
		FormatCount(snap.FilesDone()), FormatCount(snap.FilesTotal),
		FormatETA(p.stats.ETA()), WorkerIndicator(p.busy))

	p.hudLines = 2
	p.lastDraw = time.Now()
}

func (p *hudPresenter) clearHUD() {
	if p.hudLines == 0 {
		return
	}
	// Cursor up N lines, clear to end of screen.
	fmt.Fprintf(p.w, "\033[%dA\033[J", p.hudLines)
	p.hudLines = 0
}

func (p *hudPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}

// styledPath dims the directory part so the file name stands out, and
// trims long paths from the left to fit the terminal.
func (p *hudPresenter) styledPath(path string) string {
	path = truncLeft(path, max(p.width-30, 20))
	dir, base := filepath.Split(path)
	if dir == "" {
		return base
	}
	return ansiDim + dir + ansiReset + base
}
