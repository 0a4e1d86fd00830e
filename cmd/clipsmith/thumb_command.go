package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipsmith/clipsmith/internal/execute"
	"github.com/clipsmith/clipsmith/internal/ffcmd"
	"github.com/clipsmith/clipsmith/internal/probe"
)

func newThumbCommand(cc *commandContext) *cobra.Command {
	var (
		at        float64
		width     int
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "thumb <source> <output.jpg>",
		Short: "Extract a single thumbnail frame from a video",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := cc.ensure(cmd.Context())
			if err != nil {
				return err
			}
			source, output := args[0], args[1]

			seek := at
			if !cmd.Flags().Changed("at") {
				// Default to the middle of the video; the first frame
				// is usually black or a logo.
				prober := probe.New(cfg.FfprobeBin)
				prober.Timeout = cfg.Timeout()
				pr, err := prober.Probe(cmd.Context(), source)
				if err != nil {
					return err
				}
				if dur, err := pr.Duration(); err == nil {
					seek = dur / 2
				}
			}

			c := ffcmd.New()
			c.Binary = cfg.FfmpegBin
			c.LogLevel = "error"
			c.Inputs = []ffcmd.Input{{Path: source, Start: fmt.Sprintf("%.3f", seek)}}
			out := ffcmd.Output{
				Path:         output,
				Overwrite:    overwrite,
				VFrames:      1,
				DisableAudio: true,
			}
			if width > 0 {
				out.VideoFilter = fmt.Sprintf("scale=%d:-1", width)
			}
			c.Outputs = []ffcmd.Output{out}

			if _, err := c.Run(cmd.Context(), execute.Options{Timeout: cfg.Timeout()}); err != nil {
				return err
			}
			log.Success("Wrote %s (frame at %.1fs)", output, seek)
			return nil
		},
	}

	cmd.Flags().Float64Var(&at, "at", 0, "Timestamp to grab, in seconds (default: middle of the video)")
	cmd.Flags().IntVar(&width, "width", 0, "Scale the thumbnail to this width (0 = source size)")
	cmd.Flags().BoolVarP(&overwrite, "force", "f", false, "Overwrite an existing output file")

	return cmd
}
