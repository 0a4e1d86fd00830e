package ffcmd

import "strconv"

// Input describes one ffmpeg input: the source path plus the options that
// must precede its -i on the command line. Unset fields are omitted.
type Input struct {
	Path string

	Format          string // -f (e.g. "concat").
	Start           string // -ss input seek.
	Duration        string // -t input read limit.
	End             string // -to input end time.
	FrameRate       int    // -r input frame rate override.
	HWAccel         string // -hwaccel (cuda, vaapi, ...).
	Safe            *int   // -safe for the concat demuxer; 0 is meaningful.
	StreamLoop      *int   // -stream_loop; -1 (infinite) and 0 are meaningful.
	ProbeSize       string // -probesize.
	AnalyzeDuration string // -analyzeduration.

	// Escape hatches for options not modeled above.
	Args  []Arg
	Flags []string
}

// inputField maps one Input field to its CLI flag. The table is walked in
// declaration order by toArgs; boolean entries emit a bare switch, the rest
// emit flag and value.
type inputField struct {
	flag    string
	boolean bool
	value   func(*Input) (string, bool)
}

var inputFields = []inputField{
	{flag: "f", value: func(in *Input) (string, bool) { return in.Format, in.Format != "" }},
	{flag: "ss", value: func(in *Input) (string, bool) { return in.Start, in.Start != "" }},
	{flag: "t", value: func(in *Input) (string, bool) { return in.Duration, in.Duration != "" }},
	{flag: "to", value: func(in *Input) (string, bool) { return in.End, in.End != "" }},
	{flag: "r", value: func(in *Input) (string, bool) { return strconv.Itoa(in.FrameRate), in.FrameRate > 0 }},
	{flag: "hwaccel", value: func(in *Input) (string, bool) { return in.HWAccel, in.HWAccel != "" }},
	{flag: "safe", value: func(in *Input) (string, bool) {
		if in.Safe == nil {
			return "", false
		}
		return strconv.Itoa(*in.Safe), true
	}},
	{flag: "stream_loop", value: func(in *Input) (string, bool) {
		if in.StreamLoop == nil {
			return "", false
		}
		return strconv.Itoa(*in.StreamLoop), true
	}},
	{flag: "probesize", value: func(in *Input) (string, bool) { return in.ProbeSize, in.ProbeSize != "" }},
	{flag: "analyzeduration", value: func(in *Input) (string, bool) { return in.AnalyzeDuration, in.AnalyzeDuration != "" }},
}

// toArgs renders the input's options followed by -i and the path.
func (in *Input) toArgs(args []string) []string {
	for _, f := range inputFields {
		v, set := f.value(in)
		if !set {
			continue
		}
		if f.boolean {
			args = appendFlag(args, f.flag)
		} else {
			args = appendArg(args, f.flag, v)
		}
	}
	args = appendExtra(args, in.Args, in.Flags)
	return appendArg(args, "i", in.Path)
}
