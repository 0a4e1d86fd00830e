// Package check provides system diagnostics (the check command) and
// pre-pipeline dependency validation for ffmpeg, ffprobe, libx264, and AAC.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/clipsmith/clipsmith/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
	ErrVideoEncode     = errors.New("video test encode failed")
	ErrAudioEncode     = errors.New("AAC test encode failed")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive check flow: prints availability of ffmpeg,
// ffprobe, the configured video encoder, and the AAC encoder. This is
// informational only, it does not stop on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	checkFfmpeg(cfg, log)
	checkFfprobe(cfg, log)
	checkVideoEncoder(cfg, log)
	checkAAC(cfg, log)
}

// CheckDeps validates everything a montage run needs, returning the first
// missing dependency. Called before the pipeline starts so a three-hour
// batch cannot die on the concat step for want of an encoder.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FfmpegBin); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath(cfg.FfprobeBin); err != nil {
		return ErrFfprobeNotFound
	}
	if !runSilent(cfg.FfmpegBin, videoTestArgs(cfg.VideoEncoder)...) {
		return ErrVideoEncode
	}
	if !runSilent(cfg.FfmpegBin, audioTestArgs(cfg.AudioEncoder)...) {
		return ErrAudioEncode
	}
	return nil
}

// checkFfmpeg verifies ffmpeg is reachable and logs its version string.
func checkFfmpeg(cfg *config.Config, log Logger) {
	if _, err := exec.LookPath(cfg.FfmpegBin); err != nil {
		log.Error("ffmpeg not found (%s)", cfg.FfmpegBin)
		return
	}
	log.Success("ffmpeg: %s", versionLine(cfg.FfmpegBin))
}

func checkFfprobe(cfg *config.Config, log Logger) {
	if _, err := exec.LookPath(cfg.FfprobeBin); err != nil {
		log.Error("ffprobe not found (%s)", cfg.FfprobeBin)
		return
	}
	log.Success("ffprobe: %s", versionLine(cfg.FfprobeBin))
}

// checkVideoEncoder runs a minimal encode with the configured video encoder.
func checkVideoEncoder(cfg *config.Config, log Logger) {
	log.Info("Testing %s...", cfg.VideoEncoder)
	if runSilent(cfg.FfmpegBin, videoTestArgs(cfg.VideoEncoder)...) {
		log.Success("%s works", cfg.VideoEncoder)
	} else {
		log.Error("%s test encode failed", cfg.VideoEncoder)
	}
}

// checkAAC runs a minimal encode to verify the audio encoder works.
func checkAAC(cfg *config.Config, log Logger) {
	log.Info("Testing %s encoder...", cfg.AudioEncoder)
	if runSilent(cfg.FfmpegBin, audioTestArgs(cfg.AudioEncoder)...) {
		log.Success("%s works", cfg.AudioEncoder)
	} else {
		log.Error("%s test encode failed", cfg.AudioEncoder)
	}
}

// versionLine returns the first line of "<bin> -version" output.
func versionLine(bin string) string {
	out, err := exec.Command(bin, "-version").Output()
	if err != nil {
		return "(version unavailable)"
	}
	line := strings.TrimSpace(string(out))
	if idx := strings.Index(line, "\n"); idx > 0 {
		line = line[:idx]
	}
	return line
}

// videoTestArgs returns the arguments for a minimal test encode with the
// given video encoder.
func videoTestArgs(encoder string) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", encoder,
		"-f", "null", "-",
	}
}

// audioTestArgs returns the arguments for a minimal test encode with the
// given audio encoder.
func audioTestArgs(encoder string) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=440:duration=0.1",
		"-c:a", encoder,
		"-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
