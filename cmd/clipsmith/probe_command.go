package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/clipsmith/clipsmith/internal/display"
	"github.com/clipsmith/clipsmith/internal/probe"
)

func newProbeCommand(cc *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe <file>...",
		Short: "Show container and stream metadata for media files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := cc.ensure(cmd.Context())
			if err != nil {
				return err
			}

			prober := probe.New(cfg.FfprobeBin)
			prober.Timeout = cfg.Timeout()
			failed := 0
			for _, path := range args {
				pr, err := prober.Probe(cmd.Context(), path)
				if err != nil {
					log.Error("%v", err)
					failed++
					continue
				}
				printProbeResult(pr)
			}
			if failed == len(args) {
				return fmt.Errorf("all %d file(s) failed to probe", failed)
			}
			return nil
		},
	}
	return cmd
}

func printProbeResult(pr *probe.Result) {
	rows := [][]string{
		{"File", pr.Format.Filename},
		{"Format", pr.Format.FormatName},
		{"Size", display.FormatBytes(pr.Format.Size)},
		{"Bitrate", display.FormatBitrateLabel(pr.Format.BitRate / 1000)},
	}
	if dur, err := pr.Duration(); err == nil {
		rows = append(rows, []string{"Duration", display.FormatDuration(dur)})
	} else {
		rows = append(rows, []string{"Duration", "unknown"})
	}
	if v := pr.PrimaryVideo(); v != nil {
		rows = append(rows, []string{"Video", fmt.Sprintf("%s %s @ %.3g fps", v.Codec, pr.Resolution(), v.FrameRate())})
	}
	for _, a := range pr.Audio {
		label := a.Codec + " " + strconv.Itoa(a.Channels) + "ch " + strconv.Itoa(a.SampleRate) + " Hz"
		if a.Language != "" {
			label += " (" + a.Language + ")"
		}
		rows = append(rows, []string{"Audio", label})
	}
	for _, o := range pr.Other {
		rows = append(rows, []string{"Stream", o.CodecType + "/" + o.Codec})
	}
	fmt.Println(display.RenderTable([]string{"Field", "Value"}, rows, nil))
}
