package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clipsmith/clipsmith/internal/check"
	"github.com/clipsmith/clipsmith/internal/display"
	"github.com/clipsmith/clipsmith/internal/montage"
	"github.com/clipsmith/clipsmith/internal/scan"
)

func newMontageCommand(cc *commandContext) *cobra.Command {
	var (
		clipDuration float64
		clipRatio    float64
		maxClips     int
		seed         int64
		workers      int
		chunkSize    int
		width        int
		height       int
		fps          int
		preset       string
		timeoutSec   int
		noBanner     bool
	)

	cmd := &cobra.Command{
		Use:   "montage <source>... <output>",
		Short: "Sample clips from source videos and join them into one montage",
		Long: `Probes every source (files or directories, walked recursively), plans
seeded-random clip positions, extracts the clips in parallel, and joins
them losslessly into the output file.`,
		Args: cobra.MinimumNArgs(2),
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
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("chunk-size") {
				cfg.ChunkSize = chunkSize
			}
			if flags.Changed("width") {
				cfg.Width = width
			}
			if flags.Changed("height") {
				cfg.Height = height
			}
			if flags.Changed("fps") {
				cfg.FPS = fps
			}
			if flags.Changed("preset") {
				cfg.Preset = preset
			}
			if flags.Changed("timeout") {
				cfg.TimeoutSec = timeoutSec
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if !noBanner {
				display.PrintBanner()
			}

			if err := check.CheckDeps(cfg); err != nil {
				return err
			}

			output := args[len(args)-1]
			sources, warnings, err := scan.Discover(args[:len(args)-1]...)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				log.Warn("%s", w)
			}
			if len(sources) == 0 {
				return fmt.Errorf("no media files found in the given sources")
			}
			log.Info("Found %d source file(s)", len(sources))

			m := montage.New(cfg, log)
			sum, err := m.Create(cmd.Context(), montage.NewRequest(cfg, sources, output))
			if err != nil {
				return err
			}

			fmt.Println(renderSummary(sum))
			log.Success("Wrote %s in %s", sum.Output, display.FormatElapsed(sum.Elapsed))
			return nil
		},
	}

	cmd.Flags().Float64Var(&clipDuration, "clip-duration", 2.0, "Seconds per clip")
	cmd.Flags().Float64Var(&clipRatio, "clip-ratio", 30.0, "Source seconds per planned clip")
	cmd.Flags().IntVar(&maxClips, "max-clips", 0, "Cap clips per source (0 = unlimited)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for clip placement")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "Concurrent ffmpeg processes")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 16, "Clips per concat invocation")
	cmd.Flags().IntVar(&width, "width", 1920, "Output width")
	cmd.Flags().IntVar(&height, "height", 1080, "Output height")
	cmd.Flags().IntVar(&fps, "fps", 30, "Output frame rate")
	cmd.Flags().StringVar(&preset, "preset", "fast", "Encoder preset")
	cmd.Flags().IntVar(&timeoutSec, "timeout", 0, "Per-process timeout in seconds (0 = none)")
	cmd.Flags().BoolVar(&noBanner, "no-banner", false, "Suppress the startup banner")

	return cmd
}
