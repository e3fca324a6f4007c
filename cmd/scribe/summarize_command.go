package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/fileutil"
	"scribe/internal/services"
	"scribe/internal/services/llm"
	"scribe/internal/subtitles"
)

func newSummarizeCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "summarize <transcript.srt|transcript.txt>",
		Short: "Summarize a transcript with an OpenAI-compatible endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			text, err := loadTranscript(args[0])
			if err != nil {
				return err
			}

			client := llm.NewClient(llm.Config{
				APIKey:         cfg.LLM.APIKey,
				BaseURL:        cfg.LLM.BaseURL,
				Model:          cfg.LLM.Model,
				TimeoutSeconds: cfg.LLM.TimeoutSeconds,
			})

			summary, err := llm.Summarize(cmd.Context(), client, text, cfg.LLM.ChunkChars)
			if err != nil {
				return err
			}

			if outputPath != "" {
				if err := os.WriteFile(outputPath, []byte(summary+"\n"), 0o644); err != nil {
					return fmt.Errorf("write summary: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), outputPath)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the summary to this file instead of stdout")
	return cmd
}

// loadTranscript reads transcript text from an SRT or plain-text file.
func loadTranscript(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", services.Wrap(services.ErrNotFound, "summarize", "stat", path, nil)
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	if fileutil.HasExt(path, ".srt") {
		segments, err := subtitles.ParseSRTFile(path)
		if err != nil {
			return "", err
		}
		return subtitles.PlainText(segments), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", services.Wrap(services.ErrValidation, "summarize", "read", "transcript is empty", nil)
	}
	return text, nil
}
