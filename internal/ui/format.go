package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pcopy-dev/pcopy/internal/stats"
)

const (
	barFilled = '▪'
	barEmpty  = '□'
)

// FormatBytes wraps stats.FormatBytes for UI use.
func FormatBytes(b int64) string {
	return stats.FormatBytes(b)
}

// FormatRate formats a bytes-per-second rate, e.g. "12 MiB/s".
func FormatRate(bytesPerSec float64) string {
	if bytesPerSec < 1 {
		return "0 B/s"
	}
	return humanize.IBytes(uint64(bytesPerSec)) + "/s"
}

// FormatCount formats an integer with comma separators.
func FormatCount(n int64) string {
	return humanize.Comma(n)
}

// FormatDuration formats elapsed time concisely: 42s, 3m 07s, 1h 02m 03s.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// FormatETA is FormatDuration with "--" for an unknown estimate.
func FormatETA(d time.Duration) string {
	if d <= 0 {
		return "--"
	}
	return FormatDuration(d)
}

// ProgressBar renders pct (clamped to [0, 1]) as width cells.
func ProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	pct = min(max(pct, 0), 1)
	filled := min(int(pct*float64(width)), width)
	return strings.Repeat(string(barFilled), filled) +
		strings.Repeat(string(barEmpty), width-filled)
}

// WorkerIndicator renders one cell per worker, filled while that worker
// has a file in flight.
func WorkerIndicator(busy []bool) string {
	var b strings.Builder
	for _, isBusy := range busy {
		if isBusy {
			b.WriteRune(barFilled)
		} else {
			b.WriteRune(barEmpty)
		}
	}
	return b.String()
}

// truncLeft shortens s to at most n runes, keeping the tail.
func truncLeft(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[len(r)-n:])
	}
	return "…" + string(r[len(r)-n+1:])
}
