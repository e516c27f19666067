package tui

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pcopy-dev/pcopy/internal/event"
	"github.com/pcopy-dev/pcopy/internal/ui"
)

// feedLimit bounds how many finished files the feed remembers.
const feedLimit = 500

type outcome int

const (
	outcomeCopied outcome = iota
	outcomeSkipped
	outcomeFailed
)

type feedEntry struct {
	path    string
	detail  string
	size    int64
	outcome outcome
}

// workerRow is what one copy worker is doing right now.
type workerRow struct {
	path string
	size int64
	done int64
	busy bool
}

// feedView tracks per-worker activity and the most recent finished files.
type feedView struct {
	workers []workerRow
	recent  []feedEntry // oldest first, at most feedLimit
	failed  []feedEntry
}

func newFeedView(workers int) feedView {
	return feedView{workers: make([]workerRow, max(workers, 0))}
}

func (f *feedView) worker(id int) *workerRow {
	if id < 0 {
		return nil
	}
	for id >= len(f.workers) {
		f.workers = append(f.workers, workerRow{})
	}
	return &f.workers[id]
}

func (f *feedView) handleEvent(ev event.Event) {
	switch ev.Type {
	case event.FileStarted:
		if w := f.worker(ev.WorkerID); w != nil {
			*w = workerRow{path: ev.Path, size: ev.Size, busy: true}
		}
	case event.FileProgress:
		if w := f.worker(ev.WorkerID); w != nil && w.path == ev.Path {
			w.done = ev.Size
		}
	case event.FileCompleted:
		f.finish(ev, feedEntry{path: ev.Path, size: ev.Size, outcome: outcomeCopied})
	case event.FileSkipped:
		f.finish(ev, feedEntry{path: ev.Path, size: ev.Size, outcome: outcomeSkipped})
	case event.FileFailed:
		msg := "error"
		if ev.Error != nil {
			msg = ev.Error.Error()
		}
		e := feedEntry{path: ev.Path, size: ev.Size, outcome: outcomeFailed, detail: msg}
		f.failed = append(f.failed, e)
		f.finish(ev, e)
	}
}

func (f *feedView) finish(ev event.Event, e feedEntry) {
	if w := f.worker(ev.WorkerID); w != nil {
		*w = workerRow{}
	}
	f.recent = append(f.recent, e)
	if over := len(f.recent) - feedLimit; over > 0 {
		f.recent = append(f.recent[:0], f.recent[over:]...)
	}
}

func (f *feedView) busyMask() []bool {
	mask := make([]bool, len(f.workers))
	for i, w := range f.workers {
		mask[i] = w.busy
	}
	return mask
}

// renderWorkers draws one line per worker: its id, the file in flight and
// a mini progress bar.
func (f *feedView) renderWorkers(width int) string {
	var b strings.Builder
	pathWidth := max(width-24, 10)
	for i, w := range f.workers {
		if !w.busy {
			b.WriteString(styleWorkerIdle.Render("  □ " + strconv.Itoa(i) + "  idle"))
			b.WriteByte('\n')
			continue
		}
		pct := 0.0
		if w.size > 0 {
			pct = float64(w.done) / float64(w.size)
		}
		b.WriteString(styleWorkerBusy.Render("  ▪ " + strconv.Itoa(i)))
		b.WriteString("  " + renderBar(pct, 8) + "  ")
		b.WriteString(styledPath(w.path, pathWidth))
		b.WriteByte('\n')
	}
	return b.String()
}

// renderRecent draws the last n finished files, newest at the bottom.
func (f *feedView) renderRecent(width, n int) string {
	if n <= 0 {
		return ""
	}
	start := max(len(f.recent)-n, 0)
	var b strings.Builder
	pathWidth := max(width-20, 10)
	for _, e := range f.recent[start:] {
		switch e.outcome {
		case outcomeCopied:
			b.WriteString("  " + styleIconDone.Render("✓") + "  " + styledPath(e.path, pathWidth))
			b.WriteString("  " + styleDetail.Render(ui.FormatBytes(e.size)))
		case outcomeSkipped:
			b.WriteString("  " + styleIconSkipped.Render("–") + "  " + styledPath(e.path, pathWidth))
			b.WriteString("  " + styleDetail.Render("up to date"))
		case outcomeFailed:
			b.WriteString("  " + styleIconFailed.Render("✗") + "  " + styledPath(e.path, pathWidth))
			b.WriteString("  " + styleError.Render(e.detail))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func styledPath(path string, width int) string {
	if r := []rune(path); len(r) > width {
		path = "…" + string(r[len(r)-width+1:])
	}
	dir, base := filepath.Split(path)
	if dir == "" {
		return styleBase.Render(base)
	}
	return styleDir.Render(dir) + styleBase.Render(base)
}

func renderBar(pct float64, width int) string {
	bar := []rune(ui.ProgressBar(pct, width))
	filled := 0
	for filled < len(bar) && bar[filled] == '▪' {
		filled++
	}
	return styleBarFilled.Render(string(bar[:filled])) + styleBarEmpty.Render(string(bar[filled:]))
}
