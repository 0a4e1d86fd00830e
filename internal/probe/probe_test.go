package probe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/clipsmith/clipsmith/internal/execute"
)

const movieJSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video",
      "profile": "High",
      "pix_fmt": "yuv420p",
      "width": 1920,
      "height": 1080,
      "bit_rate": "4500000",
      "avg_frame_rate": "30000/1001",
      "color_space": "bt709",
      "disposition": {"default": 1, "attached_pic": 0}
    },
    {
      "index": 1,
      "codec_name": "aac",
      "codec_type": "audio",
      "channels": 2,
      "channel_layout": "stereo",
      "sample_rate": "48000",
      "bit_rate": "192000",
      "tags": {"language": "eng"}
    },
    {
      "index": 2,
      "codec_name": "mov_text",
      "codec_type": "subtitle"
    }
  ],
  "format": {
    "filename": "movie.mp4",
    "nb_streams": 3,
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "duration": "120.510000",
    "size": "67108864",
    "bit_rate": "4692000",
    "tags": {"major_brand": "isom"}
  }
}`

const coverArtJSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "mjpeg",
      "codec_type": "video",
      "width": 600,
      "height": 600,
      "disposition": {"attached_pic": 1}
    },
    {
      "index": 1,
      "codec_name": "mp3",
      "codec_type": "audio",
      "channels": 2,
      "sample_rate": "44100"
    }
  ],
  "format": {
    "filename": "song.mp3",
    "nb_streams": 2,
    "format_name": "mp3",
    "duration": "214.3",
    "size": "5242880"
  }
}`

func TestParseJSON_Movie(t *testing.T) {
	r, err := ParseJSON([]byte(movieJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	if got := r.Format.Filename; got != "movie.mp4" {
		t.Errorf("Filename = %q, want movie.mp4", got)
	}
	if got := r.Format.Size; got != 67108864 {
		t.Errorf("Size = %d, want 67108864", got)
	}
	if got := r.Format.BitRate; got != 4692000 {
		t.Errorf("BitRate = %d, want 4692000", got)
	}
	if got := r.Format.Tags["major_brand"]; got != "isom" {
		t.Errorf("Tags[major_brand] = %q, want isom", got)
	}

	dur, err := r.Duration()
	if err != nil {
		t.Fatalf("Duration: %v", err)
	}
	if dur != 120.51 {
		t.Errorf("Duration = %v, want 120.51", dur)
	}

	if len(r.Video) != 1 || len(r.Audio) != 1 || len(r.Other) != 1 {
		t.Fatalf("stream buckets = %d/%d/%d video/audio/other, want 1/1/1",
			len(r.Video), len(r.Audio), len(r.Other))
	}

	v := r.Video[0]
	if v.Codec != "h264" || v.Width != 1920 || v.Height != 1080 {
		t.Errorf("video = %s %dx%d, want h264 1920x1080", v.Codec, v.Width, v.Height)
	}
	if v.BitRate != 4500000 {
		t.Errorf("video BitRate = %d, want 4500000", v.BitRate)
	}
	if v.IsAttachedPic {
		t.Error("IsAttachedPic = true for a real video stream")
	}

	a := r.Audio[0]
	if a.Codec != "aac" || a.Channels != 2 || a.SampleRate != 48000 {
		t.Errorf("audio = %s ch=%d sr=%d, want aac ch=2 sr=48000", a.Codec, a.Channels, a.SampleRate)
	}
	if a.Language != "eng" {
		t.Errorf("Language = %q, want eng", a.Language)
	}

	if r.Other[0].CodecType != "subtitle" || r.Other[0].Codec != "mov_text" {
		t.Errorf("other stream = %s/%s, want subtitle/mov_text",
			r.Other[0].CodecType, r.Other[0].Codec)
	}
}

func TestParseJSON_UnmodeledFieldsPreserved(t *testing.T) {
	r, err := ParseJSON([]byte(movieJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if got := r.Video[0].Extra["color_space"]; got != "bt709" {
		t.Errorf("Extra[color_space] = %v, want bt709", got)
	}
	// Modeled fields must not appear twice.
	if _, dup := r.Video[0].Extra["width"]; dup {
		t.Error("Extra still carries width after extraction")
	}
}

func TestParseJSON_AttachedPicIsNotVideo(t *testing.T) {
	r, err := ParseJSON([]byte(coverArtJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if r.HasVideo() {
		t.Error("HasVideo = true for an audio file with cover art")
	}
	if r.PrimaryVideo() != nil {
		t.Error("PrimaryVideo != nil for an audio file with cover art")
	}
	if r.Resolution() != "unknown" {
		t.Errorf("Resolution = %q, want unknown", r.Resolution())
	}
}

func TestDuration_Missing(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"absent", `{"format": {"filename": "x.bin", "format_name": "data"}}`},
		{"non-numeric", `{"format": {"filename": "x.bin", "duration": "N/A"}}`},
		{"zero", `{"format": {"filename": "x.bin", "duration": "0.0"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseJSON([]byte(tt.json))
			if err != nil {
				t.Fatalf("ParseJSON must not fail on a missing duration: %v", err)
			}
			if _, err := r.Duration(); !errors.Is(err, ErrNoDuration) {
				t.Errorf("Duration error = %v, want ErrNoDuration", err)
			}
		})
	}
}

func TestProbe_TimeoutBoundsHungBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script required")
	}
	bin := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\nsleep 5\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	p := New(bin)
	p.Timeout = 100 * time.Millisecond

	start := time.Now()
	_, err := p.Probe(context.Background(), "stalled.mp4")
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Fatalf("probe ran %v, timeout was not applied", elapsed)
	}
	var probeErr *ProbeError
	if !errors.As(err, &probeErr) {
		t.Fatalf("err = %v, want *ProbeError", err)
	}
	if !errors.Is(err, execute.ErrTimeout) {
		t.Fatalf("err = %v, want wrapped ErrTimeout", err)
	}
}

func TestParseJSON_Malformed(t *testing.T) {
	if _, err := ParseJSON([]byte("not json at all")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestVideoStream_Derived(t *testing.T) {
	v := VideoStream{Width: 1920, Height: 1080, AvgFrameRate: "30000/1001"}
	if ar := v.AspectRatio(); ar < 1.77 || ar > 1.78 {
		t.Errorf("AspectRatio = %v, want ~1.777", ar)
	}
	if fr := v.FrameRate(); fr < 29.96 || fr > 29.98 {
		t.Errorf("FrameRate = %v, want ~29.97", fr)
	}

	empty := VideoStream{}
	if empty.AspectRatio() != 0 {
		t.Error("AspectRatio of unsized stream should be 0")
	}
	if empty.FrameRate() != 0 {
		t.Error("FrameRate of empty rate should be 0")
	}
	if (&VideoStream{AvgFrameRate: "0/0"}).FrameRate() != 0 {
		t.Error("FrameRate of 0/0 should be 0")
	}
}

func TestVideoBitRate_Fallback(t *testing.T) {
	r := &Result{
		Format: Format{BitRate: 1000},
		Video:  []VideoStream{{Width: 10, Height: 10}},
	}
	if got := r.VideoBitRate(); got != 1000 {
		t.Errorf("VideoBitRate = %d, want format fallback 1000", got)
	}
	r.Video[0].BitRate = 555
	if got := r.VideoBitRate(); got != 555 {
		t.Errorf("VideoBitRate = %d, want stream value 555", got)
	}
}
