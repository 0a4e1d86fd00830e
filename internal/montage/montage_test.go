package montage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/clipsmith/clipsmith/internal/config"
)

func newTestMontage(t *testing.T) *Montage {
	bin := t.TempDir()
	ffmpeg := writeScript(t, bin, "ffmpeg", fakeFfmpegScript)
	ffprobe := writeScript(t, bin, "ffprobe", fakeProbeScript)

	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.FfmpegBin = ffmpeg
	cfg.FfprobeBin = ffprobe
	cfg.ClipRatio = 15
	cfg.Workers = 2
	cfg.ChunkSize = 2

	log := testLogger(t)
	return New(&cfg, log)
}

func testRequest(m *Montage, sources []string, output string) Request {
	req := NewRequest(m.cfg, sources, output)
	return req
}

func TestNew_ProberInheritsTimeout(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.TimeoutSec = 7

	m := New(&cfg, testLogger(t))
	if m.prober.Timeout != cfg.Timeout() {
		t.Fatalf("prober timeout = %v, want %v", m.prober.Timeout, cfg.Timeout())
	}
}

func TestCreate_EndToEnd(t *testing.T) {
	m := newTestMontage(t)
	media := t.TempDir()
	sources := []string{
		touchClip(t, media, "long.mp4"),  // 40s -> 2 clips
		touchClip(t, media, "short.mp4"), // 10s -> 1 clip
		touchClip(t, media, "other.mp4"), // 20s -> 1 clip
	}
	out := filepath.Join(t.TempDir(), "montage.mp4")

	sum, err := m.Create(context.Background(), testRequest(m, sources, out))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if sum.Planned != 4 {
		t.Errorf("Planned = %d, want 4", sum.Planned)
	}
	if sum.Extracted != 4 || sum.Failed != 0 {
		t.Errorf("Extracted/Failed = %d/%d, want 4/0", sum.Extracted, sum.Failed)
	}
	if sum.Partial {
		t.Error("Partial = true for a clean run")
	}
	if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
		t.Fatalf("final output missing or empty: %v", err)
	}
	if sum.OutputBytes == 0 {
		t.Error("OutputBytes = 0")
	}
}

func TestCreate_SurvivesFailedClips(t *testing.T) {
	m := newTestMontage(t)
	media := t.TempDir()
	sources := []string{
		touchClip(t, media, "long.mp4"),
		touchClip(t, media, "bad_other.mp4"), // probes fine, encode fails
	}
	out := filepath.Join(t.TempDir(), "montage.mp4")

	sum, err := m.Create(context.Background(), testRequest(m, sources, out))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sum.Failed == 0 {
		t.Error("Failed = 0, want at least one failed clip")
	}
	if !sum.Partial {
		t.Error("Partial = false after clip failures")
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("final output missing: %v", err)
	}
}

func TestCreate_NoUsableSources(t *testing.T) {
	m := newTestMontage(t)
	media := t.TempDir()
	sources := []string{touchClip(t, media, "nodur.mp4")}

	_, err := m.Create(context.Background(), testRequest(m, sources, filepath.Join(t.TempDir(), "out.mp4")))
	if !errors.Is(err, ErrNoClips) {
		t.Fatalf("err = %v, want ErrNoClips", err)
	}
}

func TestCreate_AllClipsFail(t *testing.T) {
	m := newTestMontage(t)
	media := t.TempDir()
	sources := []string{touchClip(t, media, "bad_long.mp4")}

	_, err := m.Create(context.Background(), testRequest(m, sources, filepath.Join(t.TempDir(), "out.mp4")))
	if !errors.Is(err, ErrNoValidClips) {
		t.Fatalf("err = %v, want ErrNoValidClips", err)
	}
}

func TestCreate_InvalidRequest(t *testing.T) {
	m := newTestMontage(t)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"no sources", func(r *Request) { r.Sources = nil }},
		{"no output", func(r *Request) { r.Output = "" }},
		{"zero clip duration", func(r *Request) { r.ClipDuration = 0 }},
		{"zero workers", func(r *Request) { r.Workers = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest(m, []string{"a.mp4"}, "out.mp4")
			tt.mutate(&req)
			if _, err := m.Create(context.Background(), req); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestPlan_DoesNotWriteOutput(t *testing.T) {
	m := newTestMontage(t)
	media := t.TempDir()
	sources := []string{touchClip(t, media, "long.mp4")}
	out := filepath.Join(t.TempDir(), "montage.mp4")

	clips, err := m.Plan(context.Background(), testRequest(m, sources, out))
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(clips) != 2 {
		t.Fatalf("got %d clips, want 2", len(clips))
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("Plan produced an output file")
	}
}
