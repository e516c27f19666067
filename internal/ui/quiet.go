package ui

import "github.com/pcopy-dev/pcopy/internal/stats"

// quietPresenter drains events and only reports failures in its summary.
type quietPresenter struct {
	stats stats.Reader
}

func (p *quietPresenter) Run(events <-chan Event) error {
	for range events {
	}
	return nil
}

func (p *quietPresenter) Summary() string {
	if p.stats == nil {
		return ""
	}
	if snap := p.stats.Snapshot(); snap.FilesFailed > 0 {
		return CompletionSummary(snap)
	}
	return ""
}
