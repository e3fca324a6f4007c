package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/services/ffmpeg"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "split <stereo-audio-file>",
		Short: "Split a stereo recording into per-channel MP3 files",
		Long: "Split a stereo recording into <name>_L.mp3 and <name>_R.mp3 beside the " +
			"input. Useful for call recordings that carry one speaker per channel.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			codec := ffmpeg.NewService(ffmpeg.Config{
				Binary:      cfg.FFmpeg.Binary,
				ProbeBinary: cfg.FFmpeg.ProbeBinary,
				MP3Bitrate:  cfg.FFmpeg.MP3Bitrate,
			})

			left, right, err := codec.SplitChannels(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, left)
			fmt.Fprintln(out, right)
			return nil
		},
	}
}
