package montage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/clipsmith/clipsmith/internal/execute"
	"github.com/clipsmith/clipsmith/internal/ffcmd"
	"github.com/clipsmith/clipsmith/internal/logging"
	"github.com/clipsmith/clipsmith/internal/probe"
)

// EncodeOptions fixes the uniform format every clip is rendered to. Clips
// must match in resolution, frame rate, and codecs or the lossless
// concatenation step produces broken output.
type EncodeOptions struct {
	Width        int
	Height       int
	FPS          int
	VideoCodec   string
	Preset       string
	AudioCodec   string
	AudioBitrate string
	Timeout      time.Duration
}

// ClipResult is the outcome of one extraction. Exactly one of Path and Err
// is set.
type ClipResult struct {
	Clip Clip
	Path string
	Err  error
}

// Extractor renders planned clips to files.
type Extractor struct {
	ffmpegBin string
	prober    *probe.Prober
	log       *logging.Logger
	verbose   bool
}

// NewExtractor returns an Extractor encoding with ffmpegBin and verifying
// outputs through prober.
func NewExtractor(ffmpegBin string, prober *probe.Prober, log *logging.Logger, verbose bool) *Extractor {
	return &Extractor{ffmpegBin: ffmpegBin, prober: prober, log: log, verbose: verbose}
}

// Extract encodes every clip into scratchDir across a pool of workers
// concurrent ffmpeg processes. It returns one ClipResult per input clip, in
// clip index order, and only after the whole batch has drained. A failed
// clip never aborts its siblings; the failure travels in its result.
func (e *Extractor) Extract(ctx context.Context, clips []Clip, scratchDir string, opts EncodeOptions, workers int) []ClipResult {
	if workers < 1 {
		workers = 1
	}
	if workers > len(clips) {
		workers = len(clips)
	}

	results := make([]ClipResult, len(clips))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = e.extractOne(ctx, clips[i], scratchDir, opts)
			}
		}()
	}
	for i := range clips {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (e *Extractor) extractOne(ctx context.Context, clip Clip, scratchDir string, opts EncodeOptions) ClipResult {
	out := filepath.Join(scratchDir, fmt.Sprintf("clip_%05d.mp4", clip.Index))

	cmd := ffcmd.New()
	cmd.Binary = e.ffmpegBin
	cmd.LogLevel = "error"
	cmd.Inputs = []ffcmd.Input{{
		Path:     clip.Source,
		Start:    formatSeconds(clip.Start),
		Duration: formatSeconds(clip.Duration),
	}}
	cmd.Outputs = []ffcmd.Output{{
		Path:         out,
		Overwrite:    true,
		VideoCodec:   opts.VideoCodec,
		Preset:       opts.Preset,
		FrameRate:    opts.FPS,
		VideoFilter:  scalePadFilter(opts.Width, opts.Height),
		PixFmt:       "yuv420p",
		AudioCodec:   opts.AudioCodec,
		AudioBitrate: opts.AudioBitrate,
	}}

	if _, err := cmd.Run(ctx, execute.Options{Timeout: opts.Timeout}); err != nil {
		e.log.Warn("Clip %d from %s failed: %v", clip.Index, filepath.Base(clip.Source), err)
		return ClipResult{Clip: clip, Err: err}
	}

	// An exit code of zero is not proof of a playable file. Probe the
	// output before letting it anywhere near the concatenation step.
	pr, err := e.prober.Probe(ctx, out)
	if err == nil && !pr.HasVideo() {
		err = fmt.Errorf("encoded clip %q has no video stream", out)
	}
	if err == nil {
		_, err = pr.Duration()
	}
	if err != nil {
		e.log.Warn("Clip %d from %s failed verification: %v", clip.Index, filepath.Base(clip.Source), err)
		return ClipResult{Clip: clip, Err: err}
	}

	e.log.Debug(e.verbose, "Extracted clip %d: %.1fs at %.1fs from %s",
		clip.Index, clip.Duration, clip.Start, filepath.Base(clip.Source))
	return ClipResult{Clip: clip, Path: out}
}

// scalePadFilter fits any source into a w x h frame: scale down preserving
// aspect, letterbox the remainder, and reset the sample aspect ratio so
// the concat demuxer sees identical stream parameters on every clip.
func scalePadFilter(w, h int) string {
	return fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1",
		w, h, w, h)
}

// formatSeconds renders a seconds value for ffmpeg's -ss/-t options with
// millisecond precision.
func formatSeconds(s float64) string {
	return fmt.Sprintf("%.3f", s)
}
