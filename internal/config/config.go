// Package config holds runtime configuration: defaults, optional TOML file,
// environment overrides, and validation. CLI flags bind on top of the loaded
// values in cmd/clipsmith.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [LoadFile] and [ApplyEnv], and then passed (by
// pointer) to packages that need it. Fields are grouped by concern with
// inline documentation of defaults.
type Config struct {
	// Sampling defaults.
	ClipDuration float64 `toml:"clip_duration" env:"CLIPSMITH_CLIP_DURATION"` // Default: 2.0 seconds per clip.
	ClipRatio    float64 `toml:"clip_ratio" env:"CLIPSMITH_CLIP_RATIO"`       // Default: 30.0 source-seconds per clip.
	MaxClips     int     `toml:"max_clips" env:"CLIPSMITH_MAX_CLIPS"`         // Per-source cap. 0 = unlimited.
	Seed         int64   `toml:"seed" env:"CLIPSMITH_SEED"`                   // Default: 0.

	// Output format.
	Width  int `toml:"width" env:"CLIPSMITH_WIDTH"`   // Default: 1920.
	Height int `toml:"height" env:"CLIPSMITH_HEIGHT"` // Default: 1080.
	FPS    int `toml:"fps" env:"CLIPSMITH_FPS"`       // Default: 30.

	// Encoding.
	VideoEncoder string `toml:"video_encoder" env:"CLIPSMITH_VIDEO_ENCODER"` // Default: "libx264".
	AudioEncoder string `toml:"audio_encoder" env:"CLIPSMITH_AUDIO_ENCODER"` // Default: "aac".
	AudioBitrate string `toml:"audio_bitrate" env:"CLIPSMITH_AUDIO_BITRATE"` // Default: "192k".
	Preset       string `toml:"preset" env:"CLIPSMITH_PRESET"`               // Default: "fast".

	// Execution.
	Workers    int `toml:"workers" env:"CLIPSMITH_WORKERS"`         // Default: 4. Bounds concurrent ffmpeg processes.
	ChunkSize  int `toml:"chunk_size" env:"CLIPSMITH_CHUNK_SIZE"`   // Default: 16. Clips per concat invocation.
	TimeoutSec int `toml:"timeout_sec" env:"CLIPSMITH_TIMEOUT_SEC"` // Per-process timeout. 0 = none.

	// External binaries.
	FfmpegBin  string `toml:"ffmpeg_bin" env:"CLIPSMITH_FFMPEG"`   // Default: "ffmpeg" (found on PATH).
	FfprobeBin string `toml:"ffprobe_bin" env:"CLIPSMITH_FFPROBE"` // Default: "ffprobe".

	// Display and logging.
	Verbose   bool      `toml:"verbose" env:"CLIPSMITH_VERBOSE"`
	ColorMode ColorMode `toml:"color" env:"CLIPSMITH_COLOR"`       // Default: "auto".
	LogFile   string    `toml:"log_file" env:"CLIPSMITH_LOG_FILE"` // Optional log file path.
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// file, environment, and flag overrides apply.
func DefaultConfig() Config {
	return Config{
		ClipDuration: 2.0,
		ClipRatio:    30.0,
		MaxClips:     0,
		Seed:         0,
		Width:        1920,
		Height:       1080,
		FPS:          30,
		VideoEncoder: "libx264",
		AudioEncoder: "aac",
		AudioBitrate: "192k",
		Preset:       "fast",
		Workers:      4,
		ChunkSize:    16,
		TimeoutSec:   0,
		FfmpegBin:    "ffmpeg",
		FfprobeBin:   "ffprobe",
		Verbose:      false,
		ColorMode:    ColorAuto,
	}
}

// Timeout returns the per-process timeout as a duration. Zero means no
// timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// Validate checks value ranges and canonicalizes the audio bitrate.
func (c *Config) Validate() error {
	if c.ClipDuration <= 0 {
		return errors.New("clip duration must be positive")
	}
	if c.ClipRatio <= 0 {
		return errors.New("clip ratio must be positive")
	}
	if c.MaxClips < 0 {
		return errors.New("max clips must not be negative")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New("output dimensions must be positive")
	}
	if c.FPS <= 0 {
		return errors.New("fps must be positive")
	}
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	if c.ChunkSize < 1 {
		return errors.New("chunk size must be at least 1")
	}
	if c.TimeoutSec < 0 {
		return errors.New("timeout must not be negative")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	normalized, err := normalizeAudioBitrate(c.AudioBitrate)
	if err != nil {
		return err
	}
	c.AudioBitrate = normalized
	return nil
}

// normalizeAudioBitrate validates and canonicalizes user bitrate input.
// Accepted forms: "192", "192k", "192K", "192kbps". Output is "<n>k".
func normalizeAudioBitrate(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.New("audio bitrate must not be empty")
	}
	if strings.HasSuffix(s, "kbps") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "kbps"))
	} else if strings.HasSuffix(s, "k") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "k"))
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("invalid audio bitrate %q (use positive Kbps value, e.g. 192k)", raw)
	}
	return fmt.Sprintf("%dk", n), nil
}
