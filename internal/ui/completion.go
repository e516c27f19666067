package ui

import (
	"fmt"
	"strings"

	"github.com/pcopy-dev/pcopy/internal/stats"
)

// CompletionSummary builds the final summary line from a snapshot, e.g.
//
//	done ✓  copied 1,204  skipped 37  size 2.1 GiB  avg 641 MiB/s  time 3m 17s  errors 0
func CompletionSummary(snap stats.Snapshot) string {
	avg := 0.0
	if secs := snap.Elapsed.Seconds(); secs > 0 {
		avg = float64(snap.BytesCopied) / secs
	}

	icon := "✓"
	if snap.FilesFailed > 0 {
		icon = "✗"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "done %s  copied %s", icon, FormatCount(snap.FilesCopied))
	if snap.FilesSkipped > 0 {
		fmt.Fprintf(&b, "  skipped %s", FormatCount(snap.FilesSkipped))
	}
	fmt.Fprintf(&b, "  size %s  avg %s  time %s  errors %d",
		FormatBytes(snap.BytesCopied),
		FormatRate(avg),
		FormatDuration(snap.Elapsed),
		snap.FilesFailed,
	)
	return b.String()
}
