package engine

import (
	"context"
	"time"

	"github.com/pcopy-dev/pcopy/internal/event"
)

// emit delivers a lifecycle event, waiting for the consumer unless ctx ends.
func emit(ctx context.Context, ch chan<- event.Event, ev event.Event) {
	if ch == nil {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	select {
	case ch <- ev:
	case <-ctx.Done():
	}
}

// emitLossy delivers a high-frequency event only if the consumer has room.
func emitLossy(ch chan<- event.Event, ev event.Event) {
	if ch == nil {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	select {
	case ch <- ev:
	default:
	}
}
