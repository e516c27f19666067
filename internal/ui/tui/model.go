package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pcopy-dev/pcopy/internal/event"
	"github.com/pcopy-dev/pcopy/internal/stats"
	"github.com/pcopy-dev/pcopy/internal/ui"
)

type viewMode int

const (
	viewFeed viewMode = iota
	viewErrors
)

// Bubble Tea messages.
type engineEventMsg event.Event
type channelDoneMsg struct{}
type tickMsg time.Time

// readNextEvent returns a tea.Cmd that blocks on the event channel.
func readNextEvent(ch <-chan event.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return channelDoneMsg{}
		}
		return engineEventMsg(ev)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the root Bubble Tea model.
type Model struct {
	events <-chan event.Event
	stats  stats.ReadTicker
	feed   feedView

	mode     viewMode
	width    int
	height   int
	scanning bool
	done     bool
	quitting bool

	lastSnap  stats.Snapshot
	lastSpeed float64
	lastETA   time.Duration
}

// NewModel creates a new TUI model.
func NewModel(events <-chan event.Event, collector stats.ReadTicker, workers int) Model {
	return Model{
		events: events,
		stats:  collector,
		feed:   newFeedView(workers),
		width:  80,
		height: 24,
	}
}

// Quitting reports whether the user asked to leave before the copy finished.
func (m Model) Quitting() bool {
	return m.quitting && !m.done
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(readNextEvent(m.events), tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case engineEventMsg:
		ev := event.Event(msg)
		switch ev.Type {
		case event.ScanStarted:
			m.scanning = true
		case event.ScanComplete:
			m.scanning = false
			m.lastSnap = m.stats.Snapshot()
		}
		m.feed.handleEvent(ev)
		return m, readNextEvent(m.events)

	case channelDoneMsg:
		m.done = true
		m.lastSnap = m.stats.Snapshot()
		m.lastETA = 0
		return m, nil

	case tickMsg:
		if m.done {
			return m, nil
		}
		m.stats.Tick()
		m.lastSnap = m.stats.Snapshot()
		m.lastSpeed = m.stats.RollingSpeed(10)
		m.lastETA = m.stats.ETA()
		return m, tickCmd()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "e":
		m.mode = viewErrors
	case "f":
		m.mode = viewFeed
	case "tab":
		if m.mode == viewFeed {
			m.mode = viewErrors
		} else {
			m.mode = viewFeed
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	workerLines := len(m.feed.workers)
	b.WriteString(styleSection.Render("  workers") + "\n")
	b.WriteString(m.feed.renderWorkers(m.width))
	b.WriteByte('\n')

	// header(2) + workers title(1) + workers + gap(1) + list title(1) + footer(1)
	listHeight := max(m.height-6-workerLines, 1)
	switch m.mode {
	case viewFeed:
		b.WriteString(styleSection.Render("  recent") + "\n")
		b.WriteString(m.feed.renderRecent(m.width, listHeight))
	case viewErrors:
		b.WriteString(styleSection.Render(fmt.Sprintf("  errors (%d)", len(m.feed.failed))) + "\n")
		b.WriteString(m.renderErrors(listHeight))
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderErrors(n int) string {
	start := max(len(m.feed.failed)-n, 0)
	var b strings.Builder
	for _, e := range m.feed.failed[start:] {
		b.WriteString("  " + styleIconFailed.Render("✗") + "  " + styledPath(e.path, max(m.width-20, 10)))
		b.WriteString("  " + styleError.Render(e.detail) + "\n")
	}
	return b.String()
}

func (m Model) renderHeader() string {
	snap := m.lastSnap
	title := styleTitle.Render("pcopy")

	if m.scanning {
		live := m.stats.Snapshot()
		return styleHeader.Render(fmt.Sprintf("  %s  %s  %s dirs  %s files  %s",
			title, styleStatus.Render("scanning"),
			ui.FormatCount(live.DirsScanned),
			ui.FormatCount(live.FilesTotal),
			ui.FormatBytes(live.BytesTotal)))
	}

	if m.done {
		return styleHeader.Render(fmt.Sprintf("  %s  %s  copied %s  skipped %s  failed %s  %s  %s",
			title, styleIconDone.Render("done"),
			ui.FormatCount(snap.FilesCopied),
			ui.FormatCount(snap.FilesSkipped),
			ui.FormatCount(snap.FilesFailed),
			ui.FormatBytes(snap.BytesCopied),
			ui.FormatDuration(snap.Elapsed)))
	}

	pct := snap.Percent()
	return styleHeader.Render(fmt.Sprintf("  %s  %3.0f%%  %s  %s / %s  %s / %s files  %s  eta %s  %s",
		title,
		pct*100,
		renderBar(pct, 16),
		ui.FormatBytes(snap.BytesDone()),
		ui.FormatBytes(snap.BytesTotal),
		ui.FormatCount(snap.FilesDone()),
		ui.FormatCount(snap.FilesTotal),
		styleRate.Render(ui.FormatRate(m.lastSpeed)),
		ui.FormatETA(m.lastETA),
		ui.WorkerIndicator(m.feed.busyMask())))
}

func (m Model) renderFooter() string {
	binds := [][2]string{{"q", "quit"}, {"f", "feed"}, {"e", "errors"}}
	parts := make([]string, 0, len(binds))
	for _, kb := range binds {
		parts = append(parts, styleKey.Render(kb[0])+" "+styleKeyLabel.Render(kb[1]))
	}
	return "  " + strings.Join(parts, "   ")
}
