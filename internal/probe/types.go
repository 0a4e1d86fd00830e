package probe

import (
	"fmt"
	"strconv"
)

// Format holds container-level metadata from ffprobe's format section.
// Duration is kept unexported; use Result.Duration, which distinguishes a
// missing duration from a failed probe.
type Format struct {
	Filename       string
	NbStreams      int
	FormatName     string
	FormatLongName string
	Size           int64
	BitRate        int64
	Tags           map[string]string
	Extra          map[string]any

	duration    float64
	hasDuration bool
}

// VideoStream holds the parsed properties of a single video stream. Extra
// carries the stream fields the struct does not model.
type VideoStream struct {
	Index         int
	Codec         string
	Profile       string
	PixFmt        string
	Width         int
	Height        int
	BitRate       int64
	AvgFrameRate  string
	IsAttachedPic bool
	Extra         map[string]any
}

// AspectRatio returns width/height, or 0 when either dimension is unknown.
func (v *VideoStream) AspectRatio() float64 {
	if v.Width <= 0 || v.Height <= 0 {
		return 0
	}
	return float64(v.Width) / float64(v.Height)
}

// FrameRate evaluates the stream's average frame rate ("30000/1001") as a
// float, or 0 when it is absent or malformed.
func (v *VideoStream) FrameRate() float64 {
	num, den, ok := splitRatio(v.AvgFrameRate)
	if !ok || den == 0 {
		return 0
	}
	return num / den
}

// AudioStream holds the parsed properties of a single audio stream.
type AudioStream struct {
	Index         int
	Codec         string
	Channels      int
	ChannelLayout string
	SampleRate    int
	BitRate       int64
	Language      string
	Extra         map[string]any
}

// OtherStream is any stream that is neither video nor audio (subtitles,
// data, attachments). Only the discriminator is modeled; everything else
// stays in Extra.
type OtherStream struct {
	Index     int
	Codec     string
	CodecType string
	Extra     map[string]any
}

// Result is the fully parsed output of a single ffprobe JSON call. Stream
// slices preserve ffprobe's declaration order.
type Result struct {
	Format Format
	Video  []VideoStream
	Audio  []AudioStream
	Other  []OtherStream
}

// Duration returns the container duration in seconds. A missing or
// non-positive duration yields ErrNoDuration; parsing never fails on it.
func (r *Result) Duration() (float64, error) {
	if !r.Format.hasDuration || r.Format.duration <= 0 {
		return 0, fmt.Errorf("%q: %w", r.Format.Filename, ErrNoDuration)
	}
	return r.Format.duration, nil
}

// HasVideo reports whether the file carries at least one real video stream.
// Attached pictures (cover art) do not count.
func (r *Result) HasVideo() bool {
	for i := range r.Video {
		if !r.Video[i].IsAttachedPic {
			return true
		}
	}
	return false
}

// PrimaryVideo returns the first non-attached-pic video stream, or nil.
func (r *Result) PrimaryVideo() *VideoStream {
	for i := range r.Video {
		if !r.Video[i].IsAttachedPic {
			return &r.Video[i]
		}
	}
	return nil
}

// VideoBitRate returns the primary video stream bitrate in bits/sec,
// falling back to the container bitrate when the stream value is missing.
func (r *Result) VideoBitRate() int64 {
	if v := r.PrimaryVideo(); v != nil && v.BitRate > 0 {
		return v.BitRate
	}
	return r.Format.BitRate
}

// Resolution returns "WxH" for the primary video stream, or "unknown".
func (r *Result) Resolution() string {
	v := r.PrimaryVideo()
	if v == nil || v.Width <= 0 || v.Height <= 0 {
		return "unknown"
	}
	return strconv.Itoa(v.Width) + "x" + strconv.Itoa(v.Height)
}

func splitRatio(s string) (num, den float64, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			n, err1 := strconv.ParseFloat(s[:i], 64)
			d, err2 := strconv.ParseFloat(s[i+1:], 64)
			if err1 != nil || err2 != nil {
				return 0, 0, false
			}
			return n, d, true
		}
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, 0, false
	}
	return n, 1, true
}
