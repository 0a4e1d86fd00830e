package montage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/clipsmith/clipsmith/internal/execute"
	"github.com/clipsmith/clipsmith/internal/ffcmd"
	"github.com/clipsmith/clipsmith/internal/logging"
)

// Concatenator joins already-encoded clips by stream copy. Joining is
// lossless at every level; nothing is ever re-encoded here.
type Concatenator struct {
	ffmpegBin string
	log       *logging.Logger
	verbose   bool

	// ChunkSize bounds how many files a single ffmpeg invocation sees.
	// Larger lists are partitioned and joined recursively.
	ChunkSize int
	Timeout   time.Duration
}

// NewConcatenator returns a Concatenator using ffmpegBin and the given
// chunk size.
func NewConcatenator(ffmpegBin string, log *logging.Logger, verbose bool, chunkSize int, timeout time.Duration) *Concatenator {
	return &Concatenator{ffmpegBin: ffmpegBin, log: log, verbose: verbose, ChunkSize: chunkSize, Timeout: timeout}
}

// Concat joins paths, in order, into outputPath. Intermediates and
// manifests are written into scratchDir. When intermediate chunks fail they
// are dropped from the next level; partial reports whether any were. The
// returned error is non-nil only when no output could be produced at all.
func (c *Concatenator) Concat(ctx context.Context, paths []string, outputPath, scratchDir string) (partial bool, err error) {
	if len(paths) == 0 {
		return false, ErrEmptyInput
	}
	chunkSize := c.ChunkSize
	// A chunk of one file cannot shrink the list, so the recursion would
	// never terminate.
	if chunkSize < 2 {
		chunkSize = 2
	}
	return c.concat(ctx, paths, outputPath, scratchDir, chunkSize, 0)
}

func (c *Concatenator) concat(ctx context.Context, paths []string, outputPath, scratchDir string, chunkSize, level int) (bool, error) {
	if len(paths) <= chunkSize {
		return false, c.concatBase(ctx, paths, outputPath, scratchDir, level, 0)
	}

	var (
		partial   bool
		next      []string
		lastErr   error
		numChunks = (len(paths) + chunkSize - 1) / chunkSize
	)
	c.log.Debug(c.verbose, "Concat level %d: %d files in %d chunks", level, len(paths), numChunks)

	for i := 0; i < numChunks; i++ {
		lo := i * chunkSize
		hi := lo + chunkSize
		if hi > len(paths) {
			hi = len(paths)
		}
		inter := filepath.Join(scratchDir, fmt.Sprintf("chunk_%d_%04d.mp4", level, i))
		if err := c.concatBase(ctx, paths[lo:hi], inter, scratchDir, level, i); err != nil {
			c.log.Warn("Chunk %d at level %d failed, dropping %d clip(s): %v", i, level, hi-lo, err)
			partial = true
			lastErr = err
			continue
		}
		next = append(next, inter)
	}

	if len(next) == 0 {
		return true, fmt.Errorf("every chunk at level %d failed: %w", level, lastErr)
	}
	if len(next) == 1 {
		// One surviving chunk is already the finished join. Move it
		// instead of running a pointless single-file concat.
		return partial, moveFile(next[0], outputPath)
	}

	deeper, err := c.concat(ctx, next, outputPath, scratchDir, chunkSize, level+1)
	return partial || deeper, err
}

// concatBase writes a demuxer manifest for paths and stream-copies them
// into outputPath with a single ffmpeg invocation.
func (c *Concatenator) concatBase(ctx context.Context, paths []string, outputPath, scratchDir string, level, seq int) error {
	manifest := filepath.Join(scratchDir, fmt.Sprintf("concat_%d_%04d.txt", level, seq))
	if err := writeManifest(manifest, paths); err != nil {
		return err
	}

	cmd := ffcmd.New()
	cmd.Binary = c.ffmpegBin
	cmd.LogLevel = "error"
	cmd.Inputs = []ffcmd.Input{{Path: manifest, Format: "concat", Safe: intPtr(0)}}
	cmd.Outputs = []ffcmd.Output{{
		Path:      outputPath,
		Overwrite: true,
		Args:      []ffcmd.Arg{{Name: "c", Value: "copy"}},
	}}

	_, err := cmd.Run(ctx, execute.Options{Timeout: c.Timeout})
	return err
}

// writeManifest writes one "file '<path>'" line per clip. Paths are made
// relative to the manifest's directory; absolute paths trip the demuxer's
// unsafe-filename check.
func writeManifest(manifestPath string, paths []string) error {
	dir := filepath.Dir(manifestPath)
	var b strings.Builder
	for _, p := range paths {
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			rel = p
		}
		fmt.Fprintf(&b, "file '%s'\n", rel)
	}
	return os.WriteFile(manifestPath, []byte(b.String()), 0o644)
}

// moveFile renames src to dst, copying across filesystems when rename is
// not possible.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}

func intPtr(n int) *int { return &n }
