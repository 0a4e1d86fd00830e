package montage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/clipsmith/clipsmith/internal/config"
	"github.com/clipsmith/clipsmith/internal/logging"
	"github.com/clipsmith/clipsmith/internal/probe"
)

var validate = validator.New()

// Request describes one montage run end to end.
type Request struct {
	Sources []string `validate:"required,min=1,dive,required"`
	Output  string   `validate:"required"`

	ClipDuration float64 `validate:"gt=0"`
	ClipRatio    float64 `validate:"gt=0"`
	MaxClips     int     `validate:"gte=0"`
	Seed         int64

	Workers   int `validate:"gte=1"`
	ChunkSize int `validate:"gte=1"`

	Encode EncodeOptions
}

// Montage composes sampling, extraction, and concatenation.
type Montage struct {
	cfg    *config.Config
	log    *logging.Logger
	prober *probe.Prober
}

// New returns a Montage bound to cfg's binaries and logging. The configured
// per-process timeout bounds probe calls too, so a hung ffprobe on a corrupt
// source cannot stall sampling or clip verification.
func New(cfg *config.Config, log *logging.Logger) *Montage {
	prober := probe.New(cfg.FfprobeBin)
	prober.Timeout = cfg.Timeout()
	return &Montage{
		cfg:    cfg,
		log:    log,
		prober: prober,
	}
}

// NewRequest builds a Request for sources and output from cfg's settings.
func NewRequest(cfg *config.Config, sources []string, output string) Request {
	return Request{
		Sources:      sources,
		Output:       output,
		ClipDuration: cfg.ClipDuration,
		ClipRatio:    cfg.ClipRatio,
		MaxClips:     cfg.MaxClips,
		Seed:         cfg.Seed,
		Workers:      cfg.Workers,
		ChunkSize:    cfg.ChunkSize,
		Encode: EncodeOptions{
			Width:        cfg.Width,
			Height:       cfg.Height,
			FPS:          cfg.FPS,
			VideoCodec:   cfg.VideoEncoder,
			Preset:       cfg.Preset,
			AudioCodec:   cfg.AudioEncoder,
			AudioBitrate: cfg.AudioBitrate,
			Timeout:      cfg.Timeout(),
		},
	}
}

// Plan validates the request and returns the clip plan without touching
// ffmpeg's encoder: only probes run. Output may be empty here; it is only
// required by Create.
func (m *Montage) Plan(ctx context.Context, req Request) ([]Clip, error) {
	if err := validate.StructExcept(req, "Output"); err != nil {
		return nil, fmt.Errorf("invalid montage request: %w", err)
	}
	return m.plan(ctx, req)
}

func (m *Montage) plan(ctx context.Context, req Request) ([]Clip, error) {
	sampler := NewSampler(m.prober, m.log, m.cfg.Verbose)
	return sampler.Sample(ctx, req.Sources, SamplePolicy{
		ClipDuration: req.ClipDuration,
		ClipRatio:    req.ClipRatio,
		MaxClips:     req.MaxClips,
		Seed:         req.Seed,
	})
}

// Create runs the whole pipeline and writes the montage to req.Output. The
// scratch directory is unique to this run and removed on every exit path.
func (m *Montage) Create(ctx context.Context, req Request) (*Summary, error) {
	started := time.Now()

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid montage request: %w", err)
	}
	clips, err := m.plan(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(clips) == 0 {
		return nil, ErrNoClips
	}

	scratch := filepath.Join(os.TempDir(), "clipsmith-"+uuid.NewString())
	if err := os.RemoveAll(scratch); err != nil {
		return nil, fmt.Errorf("clear stale scratch dir: %w", err)
	}
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	m.log.Info("Extracting %d clip(s) with %d worker(s)", len(clips), req.Workers)
	extractor := NewExtractor(m.cfg.FfmpegBin, m.prober, m.log, m.cfg.Verbose)
	results := extractor.Extract(ctx, clips, scratch, req.Encode, req.Workers)

	var clipPaths []string
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		clipPaths = append(clipPaths, r.Path)
	}
	if len(clipPaths) == 0 {
		return nil, ErrNoValidClips
	}

	if dir := filepath.Dir(req.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	m.log.Info("Concatenating %d clip(s)", len(clipPaths))
	concat := NewConcatenator(m.cfg.FfmpegBin, m.log, m.cfg.Verbose, req.ChunkSize, req.Encode.Timeout)
	partial, err := concat.Concat(ctx, clipPaths, req.Output, scratch)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Sources:   len(req.Sources),
		Planned:   len(clips),
		Extracted: len(clipPaths),
		Failed:    failed,
		Output:    req.Output,
		Partial:   partial || failed > 0,
		Elapsed:   time.Since(started),
	}
	if fi, err := os.Stat(req.Output); err == nil {
		summary.OutputBytes = fi.Size()
	}
	if summary.Partial {
		m.log.Warn("Montage produced with %d failed clip(s)", failed)
	} else {
		m.log.Success("Montage complete: %s", req.Output)
	}
	return summary, nil
}
