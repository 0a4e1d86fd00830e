package main

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	var (
		configFlag  string
		verboseFlag bool
		colorFlag   string
		logFileFlag string
	)

	ctx := newCommandContext(&configFlag, &verboseFlag, &colorFlag, &logFileFlag)

	rootCmd := &cobra.Command{
		Use:           "clipsmith",
		Short:         "Generate video montages with ffmpeg",
		Long:          "clipsmith samples short clips from source videos and joins them into a single montage, driving ffmpeg and ffprobe under the hood.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "", "Color output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Also write log output to this file")

	rootCmd.AddCommand(newMontageCommand(ctx))
	rootCmd.AddCommand(newPlanCommand(ctx))
	rootCmd.AddCommand(newProbeCommand(ctx))
	rootCmd.AddCommand(newThumbCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))

	return rootCmd
}
