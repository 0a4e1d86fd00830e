package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/clipsmith/clipsmith/internal/display"
	"github.com/clipsmith/clipsmith/internal/montage"
	"github.com/clipsmith/clipsmith/internal/scan"
)

func newPlanCommand(cc *commandContext) *cobra.Command {
	var (
		clipDuration float64
		clipRatio    float64
		maxClips     int
		seed         int64
	)

	cmd := &cobra.Command{
		Use:   "plan <source>...",
		Short: "Show which clips a montage run would extract, without encoding",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := cc.ensure(cmd.Context())
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("clip-duration") {
				cfg.ClipDuration = clipDuration
			}
			if flags.Changed("clip-ratio") {
				cfg.ClipRatio = clipRatio
			}
			if flags.Changed("max-clips") {
				cfg.MaxClips = maxClips
			}
			if flags.Changed("seed") {
				cfg.Seed = seed
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			sources, warnings, err := scan.Discover(args...)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				log.Warn("%s", w)
			}
			if len(sources) == 0 {
				return fmt.Errorf("no media files found in the given sources")
			}

			m := montage.New(cfg, log)
			clips, err := m.Plan(cmd.Context(), montage.NewRequest(cfg, sources, ""))
			if err != nil {
				return err
			}
			if len(clips) == 0 {
				return montage.ErrNoClips
			}

			rows := make([][]string, 0, len(clips))
			var total float64
			for _, c := range clips {
				rows = append(rows, []string{
					strconv.Itoa(c.Index),
					filepath.Base(c.Source),
					display.FormatTimestamp(c.Start),
					display.FormatDuration(c.Duration),
				})
				total += c.Duration
			}
			fmt.Println(display.RenderTable(
				[]string{"#", "Source", "Start", "Length"},
				rows,
				[]display.ColumnAlignment{display.AlignRight},
			))
			log.Info("%d clip(s) from %d source(s), montage length ~%s",
				len(clips), len(sources), display.FormatDuration(total))
			return nil
		},
	}

	cmd.Flags().Float64Var(&clipDuration, "clip-duration", 2.0, "Seconds per clip")
	cmd.Flags().Float64Var(&clipRatio, "clip-ratio", 30.0, "Source seconds per planned clip")
	cmd.Flags().IntVar(&maxClips, "max-clips", 0, "Cap clips per source (0 = unlimited)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for clip placement")

	return cmd
}
