package montage

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/clipsmith/clipsmith/internal/probe"
)

func TestSampleSource_ClipCounts(t *testing.T) {
	pol := SamplePolicy{ClipDuration: 2, ClipRatio: 15}

	tests := []struct {
		name     string
		duration float64
		maxClips int
		want     int
	}{
		{"one ratio worth", 10, 0, 1},
		{"two ratios worth", 40, 0, 2},
		{"below one ratio", 5, 0, 1},
		{"shorter than a clip", 1, 0, 1},
		{"capped", 600, 3, 3},
		{"uncapped", 600, 0, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pol
			p.MaxClips = tt.maxClips
			rng := rand.New(rand.NewSource(1))
			clips := sampleSource(rng, "src.mp4", tt.duration, p, 0)
			if len(clips) != tt.want {
				t.Fatalf("got %d clips, want %d", len(clips), tt.want)
			}
		})
	}
}

func TestSampleSource_Bounds(t *testing.T) {
	pol := SamplePolicy{ClipDuration: 2, ClipRatio: 10}
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		clips := sampleSource(rng, "src.mp4", 95, pol, 0)
		span := 95.0 - pol.ClipDuration
		for _, c := range clips {
			if c.Start < 0 || c.Start > span {
				t.Fatalf("start %v outside [0, %v]", c.Start, span)
			}
			if c.Duration != pol.ClipDuration {
				t.Fatalf("duration %v, want %v", c.Duration, pol.ClipDuration)
			}
		}
	}
}

func TestSampleSource_ShortSourceClamps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	clips := sampleSource(rng, "tiny.mp4", 1.5, SamplePolicy{ClipDuration: 2, ClipRatio: 30}, 0)
	if len(clips) != 1 {
		t.Fatalf("got %d clips, want 1", len(clips))
	}
	if clips[0].Start != 0 {
		t.Errorf("start = %v, want 0 for a source shorter than a clip", clips[0].Start)
	}
	if clips[0].Duration != 1.5 {
		t.Errorf("duration = %v, want source duration 1.5", clips[0].Duration)
	}
}

func TestSampleSource_Deterministic(t *testing.T) {
	pol := SamplePolicy{ClipDuration: 2, ClipRatio: 10}

	run := func(seed int64) []Clip {
		rng := rand.New(rand.NewSource(seed))
		var all []Clip
		for _, d := range []float64{33, 120, 7} {
			all = append(all, sampleSource(rng, "s.mp4", d, pol, len(all))...)
		}
		return all
	}

	a, b := run(99), run(99)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("clip %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}

	c := run(100)
	same := len(a) == len(c)
	if same {
		for i := range a {
			if a[i].Start != c[i].Start {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("different seeds produced identical plans")
	}
}

func TestSampler_SkipsUnusableSources(t *testing.T) {
	bin := t.TempDir()
	probeBin := writeScript(t, bin, "ffprobe", fakeProbeScript)

	media := t.TempDir()
	long := touchClip(t, media, "long.mp4")
	short := touchClip(t, media, "short.mp4")
	nodur := touchClip(t, media, "nodur.mp4")
	missing := filepath.Join(media, "gone.mp4")

	s := NewSampler(probe.New(probeBin), testLogger(t), false)
	clips, err := s.Sample(context.Background(), []string{long, short, nodur, missing}, SamplePolicy{
		ClipDuration: 2,
		ClipRatio:    15,
		Seed:         5,
	})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}

	// long (40s) plans 2, short (10s) plans 1, nodur and the missing file
	// are skipped.
	if len(clips) != 3 {
		t.Fatalf("got %d clips, want 3", len(clips))
	}
	for i, c := range clips {
		if c.Index != i {
			t.Errorf("clip %d has index %d, want sequential indices", i, c.Index)
		}
	}
	if clips[0].Source != long || clips[1].Source != long {
		t.Errorf("first two clips should come from %s, got %s and %s", long, clips[0].Source, clips[1].Source)
	}
}
