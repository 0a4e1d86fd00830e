package montage

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/clipsmith/clipsmith/internal/config"
	"github.com/clipsmith/clipsmith/internal/logging"
)

// Fake ffprobe: reports a duration keyed off the file name so tests can mix
// long and short sources without real media.
const fakeProbeScript = `#!/bin/sh
for last; do :; done
[ -f "$last" ] || exit 1
case "$last" in
  *short*) dur=10 ;;
  *long*) dur=40 ;;
  *nodur*) dur="" ;;
  *) dur=20 ;;
esac
printf '{"format":{"filename":"%s","duration":"%s"},"streams":[{"codec_type":"video","codec_name":"h264","width":640,"height":480}]}' "$last" "$dur"
`

// Fake ffmpeg: writes a byte to its output path. It exits non-zero when any
// input path (or a concat manifest line) mentions "bad".
const fakeFfmpegScript = `#!/bin/sh
manifest=""
prev=""
for a; do
  if [ "$prev" = "-i" ]; then manifest="$a"; fi
  prev="$a"
  last="$a"
done
case "$manifest" in
  *bad*) exit 1 ;;
esac
if [ -f "$manifest" ] && grep -q bad "$manifest" 2>/dev/null; then
  exit 1
fi
printf 'x' > "$last"
`

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts required")
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	log, err := logging.NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	return log
}

func touchClip(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("clip"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
