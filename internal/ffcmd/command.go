package ffcmd

import (
	"context"
	"os"
	"strings"

	"github.com/clipsmith/clipsmith/internal/execute"
)

// Command is a declarative ffmpeg invocation: ordered inputs, ordered
// outputs, and global options. Construct one per invocation with New, set
// fields, then call BuildArgs or Run; a Command is not mutated by either.
type Command struct {
	// Binary is the ffmpeg executable. Defaults to "ffmpeg".
	Binary string

	Inputs  []Input
	Outputs []Output

	// FilterComplex entries are joined with ";" into a single
	// -filter_complex value placed after all inputs.
	FilterComplex []string

	LogLevel   string // -loglevel (error, warning, info, quiet, panic).
	HideBanner bool   // -hide_banner.
	NoStdin    bool   // -nostdin, keeps ffmpeg from reading the terminal.
	NoStats    bool   // -nostats.

	// Escape hatches for global options not modeled above, placed after
	// the filter graph and before the first output.
	Args  []Arg
	Flags []string
}

// New returns a Command with the defaults every invocation in this codebase
// wants: banner hidden, stats off, and stdin disabled so a forgotten -y can
// never hang a worker on an overwrite prompt.
func New() *Command {
	return &Command{
		Binary:     "ffmpeg",
		HideBanner: true,
		NoStats:    true,
		NoStdin:    true,
	}
}

// BuildArgs assembles the complete argument vector. It is pure and
// deterministic: no I/O, and the same Command always yields the same slice.
func (c *Command) BuildArgs() []string {
	binary := c.Binary
	if binary == "" {
		binary = "ffmpeg"
	}
	args := make([]string, 0, 32)
	args = append(args, binary)

	if c.HideBanner {
		args = appendFlag(args, "hide_banner")
	}
	if c.NoStdin {
		args = appendFlag(args, "nostdin")
	}
	if c.NoStats {
		args = appendFlag(args, "nostats")
	}
	if c.LogLevel != "" {
		args = appendArg(args, "loglevel", c.LogLevel)
	}

	for i := range c.Inputs {
		args = c.Inputs[i].toArgs(args)
	}

	if len(c.FilterComplex) > 0 {
		args = appendArg(args, "filter_complex", strings.Join(c.FilterComplex, ";"))
	}

	args = appendExtra(args, c.Args, c.Flags)

	for i := range c.Outputs {
		args = c.Outputs[i].toArgs(args)
	}
	return args
}

// Preflight checks every output whose spec does not request overwrite and
// fails with *FileExistsError when its target already exists. Run calls it
// before spawning anything; exposed for callers that build argument vectors
// for later execution.
func (c *Command) Preflight() error {
	for i := range c.Outputs {
		out := &c.Outputs[i]
		if out.Overwrite {
			continue
		}
		if _, err := os.Stat(out.Path); err == nil {
			return &FileExistsError{Path: out.Path}
		}
	}
	return nil
}

// Run executes the command through the process runner. The declared output
// paths are verified non-empty on success; opts.Outputs is overridden.
func (c *Command) Run(ctx context.Context, opts execute.Options) (execute.Result, error) {
	if err := c.Preflight(); err != nil {
		return execute.Result{}, err
	}
	opts.Outputs = c.outputPaths()
	return execute.Run(ctx, c.BuildArgs(), opts)
}

func (c *Command) outputPaths() []string {
	paths := make([]string, 0, len(c.Outputs))
	for i := range c.Outputs {
		// "-" and null-sink style outputs are not files to verify.
		if p := c.Outputs[i].Path; p != "" && p != "-" {
			paths = append(paths, p)
		}
	}
	return paths
}
