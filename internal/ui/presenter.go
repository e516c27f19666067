package ui

import (
	"io"

	"github.com/pcopy-dev/pcopy/internal/stats"
)

// Presenter consumes events and displays progress.
type Presenter interface {
	// Run consumes events until the channel closes. Blocks until done.
	Run(events <-chan Event) error
	// Summary returns the final summary line.
	Summary() string
}

// Config configures a Presenter.
type Config struct {
	Writer     io.Writer
	ErrWriter  io.Writer
	Stats      stats.ReadTicker
	Workers    int
	Width      int // terminal columns; 0 means unknown
	IsTTY      bool
	Quiet      bool
	NoProgress bool
}

// NewPresenter picks the quiet, plain or HUD presenter for cfg.
//
//nolint:ireturn // factory function returns interface by design
func NewPresenter(cfg Config) Presenter {
	if cfg.Quiet {
		return &quietPresenter{stats: cfg.Stats}
	}
	if !cfg.IsTTY || cfg.NoProgress {
		return &plainPresenter{
			w:     cfg.Writer,
			errW:  cfg.ErrWriter,
			stats: cfg.Stats,
		}
	}
	return newHUDPresenter(cfg.ErrWriter, cfg.Stats, cfg.Workers, cfg.Width)
}
