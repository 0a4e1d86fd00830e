package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero clip duration", func(c *Config) { c.ClipDuration = 0 }, true},
		{"negative clip duration", func(c *Config) { c.ClipDuration = -1 }, true},
		{"zero clip ratio", func(c *Config) { c.ClipRatio = 0 }, true},
		{"negative max clips", func(c *Config) { c.MaxClips = -1 }, true},
		{"zero max clips is unlimited", func(c *Config) { c.MaxClips = 0 }, false},
		{"zero width", func(c *Config) { c.Width = 0 }, true},
		{"zero height", func(c *Config) { c.Height = 0 }, true},
		{"zero fps", func(c *Config) { c.FPS = 0 }, true},
		{"zero workers", func(c *Config) { c.Workers = 0 }, true},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }, true},
		{"chunk size one allowed", func(c *Config) { c.ChunkSize = 1 }, false},
		{"negative timeout", func(c *Config) { c.TimeoutSec = -5 }, true},
		{"invalid color mode", func(c *Config) { c.ColorMode = "rainbow" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_AudioBitrate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare number", "192", "192k", false},
		{"k suffix", "192k", "192k", false},
		{"uppercase K", "256K", "256k", false},
		{"kbps suffix", "128kbps", "128k", false},
		{"empty", "", "", true},
		{"zero", "0", "", true},
		{"garbage", "lots", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.AudioBitrate = tt.in
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg.AudioBitrate != tt.want {
				t.Errorf("AudioBitrate = %q, want %q", cfg.AudioBitrate, tt.want)
			}
		})
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clipsmith.toml")
	content := "clip_duration = 3.5\nworkers = 8\nffmpeg_bin = \"/opt/ffmpeg/bin/ffmpeg\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CLIPSMITH_WORKERS", "2")

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ClipDuration != 3.5 {
		t.Errorf("ClipDuration = %v, want 3.5 (from file)", cfg.ClipDuration)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2 (env overrides file)", cfg.Workers)
	}
	if cfg.FfmpegBin != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("FfmpegBin = %q, want file value", cfg.FfmpegBin)
	}
	if cfg.ChunkSize != 16 {
		t.Errorf("ChunkSize = %d, want default 16", cfg.ChunkSize)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("Load() with missing explicit config file should fail")
	}
}
