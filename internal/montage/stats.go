package montage

import "time"

// Summary reports what one montage run did.
type Summary struct {
	Sources     int
	Planned     int
	Extracted   int
	Failed      int
	Output      string
	OutputBytes int64
	// Partial is true when some clips or chunks were dropped but the
	// montage was still produced from the remainder.
	Partial bool
	Elapsed time.Duration
}
