package ffcmd

import "strconv"

// Output describes one ffmpeg output: encoding options followed by the
// destination path. A single Command may carry several Outputs to fan out
// multiple encodes from one decode pass.
type Output struct {
	Path      string
	Overwrite bool // -y; when false an existing Path fails the pre-flight check.

	Start    string // -ss output seek.
	Duration string // -t output duration.

	VideoCodec   string // -c:v.
	VideoBitrate string // -b:v.
	CRF          *int   // -crf; 0 (lossless for some encoders) is meaningful.
	Preset       string // -preset.
	FrameRate    int    // -r.
	VideoFilter  string // -vf.
	PixFmt       string // -pix_fmt.
	VFrames      int    // -vframes (e.g. 1 for a thumbnail).

	AudioCodec   string // -c:a.
	AudioBitrate string // -b:a.
	AudioFilter  string // -af.
	SampleRate   int    // -ar.
	Channels     int    // -ac.

	Format   string // -f container override.
	MovFlags string // -movflags.

	DisableAudio    bool // -an.
	DisableVideo    bool // -vn.
	DisableSubtitle bool // -sn.

	Maps     []string // -map, repeated in order.
	Metadata []Arg    // -metadata key=value pairs.

	// Escape hatches for options not modeled above.
	Args  []Arg
	Flags []string
}

// outputField maps one Output field to its CLI flag, walked in declaration
// order by toArgs.
type outputField struct {
	flag    string
	boolean bool
	value   func(*Output) (string, bool)
}

var outputFields = []outputField{
	{flag: "y", boolean: true, value: func(o *Output) (string, bool) { return "", o.Overwrite }},
	{flag: "ss", value: func(o *Output) (string, bool) { return o.Start, o.Start != "" }},
	{flag: "t", value: func(o *Output) (string, bool) { return o.Duration, o.Duration != "" }},
	{flag: "c:v", value: func(o *Output) (string, bool) { return o.VideoCodec, o.VideoCodec != "" }},
	{flag: "b:v", value: func(o *Output) (string, bool) { return o.VideoBitrate, o.VideoBitrate != "" }},
	{flag: "crf", value: func(o *Output) (string, bool) {
		if o.CRF == nil {
			return "", false
		}
		return strconv.Itoa(*o.CRF), true
	}},
	{flag: "preset", value: func(o *Output) (string, bool) { return o.Preset, o.Preset != "" }},
	{flag: "r", value: func(o *Output) (string, bool) { return strconv.Itoa(o.FrameRate), o.FrameRate > 0 }},
	{flag: "vf", value: func(o *Output) (string, bool) { return o.VideoFilter, o.VideoFilter != "" }},
	{flag: "pix_fmt", value: func(o *Output) (string, bool) { return o.PixFmt, o.PixFmt != "" }},
	{flag: "vframes", value: func(o *Output) (string, bool) { return strconv.Itoa(o.VFrames), o.VFrames > 0 }},
	{flag: "c:a", value: func(o *Output) (string, bool) { return o.AudioCodec, o.AudioCodec != "" }},
	{flag: "b:a", value: func(o *Output) (string, bool) { return o.AudioBitrate, o.AudioBitrate != "" }},
	{flag: "af", value: func(o *Output) (string, bool) { return o.AudioFilter, o.AudioFilter != "" }},
	{flag: "ar", value: func(o *Output) (string, bool) { return strconv.Itoa(o.SampleRate), o.SampleRate > 0 }},
	{flag: "ac", value: func(o *Output) (string, bool) { return strconv.Itoa(o.Channels), o.Channels > 0 }},
	{flag: "f", value: func(o *Output) (string, bool) { return o.Format, o.Format != "" }},
	{flag: "movflags", value: func(o *Output) (string, bool) { return o.MovFlags, o.MovFlags != "" }},
	{flag: "an", boolean: true, value: func(o *Output) (string, bool) { return "", o.DisableAudio }},
	{flag: "vn", boolean: true, value: func(o *Output) (string, bool) { return "", o.DisableVideo }},
	{flag: "sn", boolean: true, value: func(o *Output) (string, bool) { return "", o.DisableSubtitle }},
}

// toArgs renders the output's options followed by the destination path.
func (o *Output) toArgs(args []string) []string {
	for _, f := range outputFields {
		v, set := f.value(o)
		if !set {
			continue
		}
		if f.boolean {
			args = appendFlag(args, f.flag)
		} else {
			args = appendArg(args, f.flag, v)
		}
	}
	for _, m := range o.Maps {
		args = appendArg(args, "map", m)
	}
	for _, md := range o.Metadata {
		args = appendArg(args, "metadata", md.Name+"="+md.Value)
	}
	args = appendExtra(args, o.Args, o.Flags)
	return append(args, o.Path)
}
