package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/clipsmith/clipsmith/internal/execute"
)

// Prober runs ffprobe. The zero value uses "ffprobe" from PATH.
type Prober struct {
	Binary  string
	Timeout time.Duration
}

// New returns a Prober using the named binary, or "ffprobe" when empty.
func New(binary string) *Prober {
	return &Prober{Binary: binary}
}

// Probe runs a single ffprobe JSON call against path and returns the parsed
// result. All failures come back as *ProbeError wrapping the cause, so a
// missing binary is still distinguishable via errors.Is(err,
// execute.ErrNotFound).
func (p *Prober) Probe(ctx context.Context, path string) (*Result, error) {
	binary := p.Binary
	if binary == "" {
		binary = "ffprobe"
	}
	argv := []string{
		binary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	}

	res, err := execute.Run(ctx, argv, execute.Options{Timeout: p.Timeout})
	if err != nil {
		return nil, &ProbeError{Path: path, Err: err}
	}

	parsed, err := ParseJSON([]byte(res.Stdout))
	if err != nil {
		return nil, &ProbeError{Path: path, Err: err}
	}
	if parsed.Format.Filename == "" {
		parsed.Format.Filename = path
	}
	return parsed, nil
}

// ParseJSON converts raw ffprobe JSON output into a Result. Exported for
// testing without a real ffprobe binary.
func ParseJSON(data []byte) (*Result, error) {
	var raw struct {
		Format  map[string]any   `json:"format"`
		Streams []map[string]any `json:"streams"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	r := &Result{Format: convertFormat(raw.Format)}
	for _, s := range raw.Streams {
		switch stringField(s, "codec_type") {
		case "video":
			r.Video = append(r.Video, convertVideo(s))
		case "audio":
			r.Audio = append(r.Audio, convertAudio(s))
		default:
			r.Other = append(r.Other, convertOther(s))
		}
	}
	return r, nil
}

func convertFormat(m map[string]any) Format {
	f := Format{
		Filename:       takeString(m, "filename"),
		NbStreams:      takeInt(m, "nb_streams"),
		FormatName:     takeString(m, "format_name"),
		FormatLongName: takeString(m, "format_long_name"),
		Size:           takeInt64(m, "size"),
		BitRate:        takeInt64(m, "bit_rate"),
		Tags:           takeTags(m),
	}
	f.duration, f.hasDuration = takeFloat(m, "duration")
	f.Extra = m
	return f
}

func convertVideo(m map[string]any) VideoStream {
	return VideoStream{
		Index:         takeInt(m, "index"),
		Codec:         takeString(m, "codec_name"),
		Profile:       takeString(m, "profile"),
		PixFmt:        takeString(m, "pix_fmt"),
		Width:         takeInt(m, "width"),
		Height:        takeInt(m, "height"),
		BitRate:       takeInt64(m, "bit_rate"),
		AvgFrameRate:  takeString(m, "avg_frame_rate"),
		IsAttachedPic: takeDisposition(m, "attached_pic"),
		Extra:         m,
	}
}

func convertAudio(m map[string]any) AudioStream {
	a := AudioStream{
		Index:         takeInt(m, "index"),
		Codec:         takeString(m, "codec_name"),
		Channels:      takeInt(m, "channels"),
		ChannelLayout: takeString(m, "channel_layout"),
		SampleRate:    takeInt(m, "sample_rate"),
		BitRate:       takeInt64(m, "bit_rate"),
	}
	if tags := takeTags(m); tags != nil {
		a.Language = tags["language"]
	}
	a.Extra = m
	return a
}

func convertOther(m map[string]any) OtherStream {
	return OtherStream{
		Index:     takeInt(m, "index"),
		Codec:     takeString(m, "codec_name"),
		CodecType: takeString(m, "codec_type"),
		Extra:     m,
	}
}

// --- defensive field extraction ---
//
// ffprobe encodes most numerics as JSON strings, but not all builds agree.
// The take* helpers accept both forms, remove the key from the map so the
// remainder can serve as the Extra set, and report zero values on anything
// malformed rather than failing the whole parse.

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func takeString(m map[string]any, key string) string {
	v, ok := m[key].(string)
	if ok {
		delete(m, key)
	}
	return v
}

func takeFloat(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case string:
		delete(m, key)
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	case float64:
		delete(m, key)
		return v, true
	}
	return 0, false
}

func takeInt(m map[string]any, key string) int {
	f, ok := takeFloat(m, key)
	if !ok {
		return 0
	}
	return int(f)
}

func takeInt64(m map[string]any, key string) int64 {
	f, ok := takeFloat(m, key)
	if !ok {
		return 0
	}
	return int64(f)
}

func takeTags(m map[string]any) map[string]string {
	raw, ok := m["tags"].(map[string]any)
	if !ok {
		return nil
	}
	delete(m, "tags")
	tags := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			tags[k] = s
		}
	}
	return tags
}

func takeDisposition(m map[string]any, name string) bool {
	disp, ok := m["disposition"].(map[string]any)
	if !ok {
		return false
	}
	v, _ := disp[name].(float64)
	return v != 0
}
