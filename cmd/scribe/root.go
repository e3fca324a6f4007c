package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)
	opts := &transcribeOptions{}

	rootCmd := &cobra.Command{
		Use:           "scribe [flags] <file-or-directory>",
		Short:         "Batch speech-to-text transcription to SRT, TXT, and LRC",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runTranscribe(cmd, ctx, args[0], opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.text, "text", "t", false, "Also write a plain-text transcript")
	flags.BoolVar(&opts.lrc, "lrc", false, "Also write an LRC lyric file")
	flags.StringVarP(&opts.outputDir, "output", "o", "", "Write artifacts into this directory")
	flags.BoolVar(&opts.largeModel, "large-v3", false, "Use the larger, more accurate model")
	flags.BoolVarP(&opts.recursive, "recursive", "r", false, "Include subdirectories when the input is a directory")
	flags.StringVar(&opts.language, "language", "", "Language hint (e.g. en, zh, yue); empty auto-detects")
	flags.BoolVarP(&opts.assumeYes, "yes", "y", false, "Skip the multi-file confirmation prompt")
	flags.SetNormalizeFunc(normalizeLangFlag)

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newSRTToTextCommand())
	rootCmd.AddCommand(newSRTToLRCCommand())
	rootCmd.AddCommand(newSplitCommand(ctx))
	rootCmd.AddCommand(newSummarizeCommand(ctx))

	return rootCmd
}

// normalizeLangFlag accepts --lang as an alias for --language.
func normalizeLangFlag(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "lang" {
		name = "language"
	}
	return pflag.NormalizedName(name)
}
