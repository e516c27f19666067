package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pcopy-dev/pcopy/internal/config"
	"github.com/pcopy-dev/pcopy/internal/event"
	"github.com/pcopy-dev/pcopy/internal/stats"
	"github.com/pcopy-dev/pcopy/internal/ui"
)

// Config configures the TUI presenter.
type Config struct {
	Stats   stats.ReadTicker
	Theme   config.ThemeConfig
	Workers int
	// OnQuit is called when the user leaves the TUI while the copy is
	// still running, typically to cancel it.
	OnQuit func()
}

// Presenter wraps a Bubble Tea program and implements ui.Presenter.
type Presenter struct {
	cfg Config
}

var _ ui.Presenter = (*Presenter)(nil)

// NewPresenter creates a new TUI presenter.
func NewPresenter(cfg Config) *Presenter {
	ApplyTheme(cfg.Theme)
	return &Presenter{cfg: cfg}
}

// Run starts the Bubble Tea program and blocks until the event stream
// ends and the user quits, or the user quits early. After an early quit
// the remaining events are drained so the engine never blocks.
func (p *Presenter) Run(events <-chan event.Event) error {
	prog := tea.NewProgram(
		NewModel(events, p.cfg.Stats, p.cfg.Workers),
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)
	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if m, ok := final.(Model); ok && m.Quitting() {
		if p.cfg.OnQuit != nil {
			p.cfg.OnQuit()
		}
		for range events {
		}
	}
	return nil
}

// Summary returns the final completion summary line.
func (p *Presenter) Summary() string {
	return ui.CompletionSummary(p.cfg.Stats.Snapshot())
}
