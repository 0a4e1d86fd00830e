package montage

import (
	"context"
	"math"
	"math/rand"

	"github.com/clipsmith/clipsmith/internal/logging"
	"github.com/clipsmith/clipsmith/internal/probe"
)

// Clip is one planned extraction: a source, a start offset, and a duration,
// none of it materialized yet. Index is the clip's position in the batch
// plan and fixes its order in the final montage.
type Clip struct {
	Source   string
	Start    float64
	Duration float64
	Index    int
}

// SamplePolicy controls how many clips each source yields and where they
// land.
type SamplePolicy struct {
	// ClipDuration is the length of every clip in seconds.
	ClipDuration float64
	// ClipRatio is seconds of source footage per clip. A 300s video with
	// ratio 30 plans 10 clips.
	ClipRatio float64
	// MaxClips caps clips per source. 0 means no cap.
	MaxClips int
	// Seed feeds the single random generator used for the whole batch, so
	// equal inputs reproduce identical plans.
	Seed int64
}

// Sampler plans clip positions across a batch of sources.
type Sampler struct {
	prober  *probe.Prober
	log     *logging.Logger
	verbose bool
}

// NewSampler returns a Sampler probing durations through prober.
func NewSampler(prober *probe.Prober, log *logging.Logger, verbose bool) *Sampler {
	return &Sampler{prober: prober, log: log, verbose: verbose}
}

// Sample probes every source and returns the planned clips in source order.
// Sources that cannot be probed, have no duration, or carry no video stream
// are logged and skipped; a corrupt file in a large batch must not sink the
// run. The same (sources, policy) pair always yields an identical plan.
func (s *Sampler) Sample(ctx context.Context, sources []string, pol SamplePolicy) ([]Clip, error) {
	rng := rand.New(rand.NewSource(pol.Seed))
	var clips []Clip

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pr, err := s.prober.Probe(ctx, src)
		if err != nil {
			s.log.Warn("Skipping %s: %v", src, err)
			continue
		}
		if !pr.HasVideo() {
			s.log.Warn("Skipping %s: no video stream", src)
			continue
		}
		dur, err := pr.Duration()
		if err != nil {
			s.log.Warn("Skipping %s: %v", src, err)
			continue
		}

		planned := sampleSource(rng, src, dur, pol, len(clips))
		s.log.Debug(s.verbose, "Planned %d clip(s) from %s (%.1fs)", len(planned), src, dur)
		clips = append(clips, planned...)
	}
	return clips, nil
}

// sampleSource plans the clips for one source of duration total seconds,
// numbering them from firstIndex.
func sampleSource(rng *rand.Rand, source string, total float64, pol SamplePolicy, firstIndex int) []Clip {
	numClips := 1
	if total >= pol.ClipDuration {
		numClips = int(math.Floor(total / pol.ClipRatio))
		if pol.MaxClips > 0 && numClips > pol.MaxClips {
			numClips = pol.MaxClips
		}
		if numClips < 1 {
			numClips = 1
		}
	}

	clipDur := pol.ClipDuration
	if clipDur > total {
		clipDur = total
	}
	span := total - pol.ClipDuration
	if span < 0 {
		span = 0
	}

	clips := make([]Clip, 0, numClips)
	if numClips == 1 {
		start := 0.0
		if span > 0 {
			start = rng.Float64() * span
		}
		return append(clips, Clip{Source: source, Start: start, Duration: clipDur, Index: firstIndex})
	}

	// Even spacing across the span plus bounded jitter. Pure periodic
	// sampling looks repetitive; unbounded jitter lets clips pile up.
	for n := 0; n < numClips; n++ {
		base := span * float64(n) / float64(numClips)
		jitter := (rng.Float64()*2 - 1) * span / (4 * float64(numClips))
		start := base + jitter
		if start < 0 {
			start = 0
		}
		if start > span {
			start = span
		}
		clips = append(clips, Clip{
			Source:   source,
			Start:    start,
			Duration: clipDur,
			Index:    firstIndex + n,
		})
	}
	return clips
}
