// Package ffcmd models ffmpeg invocations declaratively. A Command is an
// ordered list of input specs, an ordered list of output specs, and a small
// set of global options; BuildArgs turns it into a complete argument vector
// without any I/O. Field-to-flag mapping is table driven: each field of
// Input and Output has one entry in a static table naming its CLI flag and
// whether it is a value argument or a bare switch.
//
// The generated vector always places every input spec (options, then -i and
// the path) before the complex filter graph, and the filter graph before
// every output spec, in declaration order. Output paths appear exactly once,
// as the last token of their output's argument run.
package ffcmd
