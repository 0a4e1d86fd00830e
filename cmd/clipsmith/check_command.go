package main

import (
	"github.com/spf13/cobra"

	"github.com/clipsmith/clipsmith/internal/check"
)

func newCheckCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify ffmpeg, ffprobe, and the configured encoders work",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := cc.ensure(cmd.Context())
			if err != nil {
				return err
			}
			check.RunCheck(cfg, log)
			return check.CheckDeps(cfg)
		},
	}
}
