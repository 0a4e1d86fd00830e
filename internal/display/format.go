// Package display renders human-facing output: size and duration labels,
// tables, and the startup banner.
package display

import (
	"fmt"
	"time"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatBitrateLabel returns a short label for bitrate in kbps (e.g. "1200 kbps").
func FormatBitrateLabel(kbps int64) string {
	if kbps < 1000 {
		return fmt.Sprintf("%d kbps", kbps)
	}
	return fmt.Sprintf("%.1f Mbps", float64(kbps)/1000)
}

// FormatDuration renders seconds as "SS.s", "M:SS" or "H:MM:SS" depending
// on magnitude.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	total := int(seconds + 0.5)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatElapsed renders a wall-clock duration compactly ("4.2s", "1m03s").
func FormatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%02ds", m, s)
}

// FormatTimestamp renders a start offset as "MM:SS.s" for clip tables.
func FormatTimestamp(seconds float64) string {
	m := int(seconds) / 60
	s := seconds - float64(m*60)
	return fmt.Sprintf("%02d:%04.1f", m, s)
}
