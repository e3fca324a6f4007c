package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/deps"
	"scribe/internal/language"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}

			if err := config.WriteSampleConfig(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to pick a model and device before running scribe.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration and tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath())
			if !ctx.configExists() {
				fmt.Fprintln(out, "Config file not found; defaults in effect")
			}

			rows := [][]string{
				{"Model", cfg.Whisper.Model},
				{"Large model", cfg.Whisper.LargeModel},
				{"Device", cfg.Whisper.Device},
				{"Beam size", fmt.Sprintf("%d", cfg.Whisper.BeamSize)},
				{"VAD filter", fmt.Sprintf("%t", cfg.Whisper.VADFilter)},
				{"Language", language.DisplayName(cfg.Whisper.Language)},
				{"Output dir", orDefault(cfg.Paths.OutputDir, "(next to input)")},
				{"Log dir", cfg.Paths.LogDir},
				{"MP3 bitrate", orDefault(cfg.FFmpeg.MP3Bitrate, "(encoder default)")},
				{"LLM endpoint", cfg.LLM.BaseURL},
				{"LLM model", orDefault(cfg.LLM.Model, "(server default)")},
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Setting", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			toolRows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = "missing"
					if status.Optional {
						state = "missing (optional)"
					}
				}
				detail := status.Description
				if status.Detail != "" {
					detail = status.Detail
				}
				toolRows = append(toolRows, []string{status.Name, status.Command, state, detail})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Tool", "Command", "Status", "Detail"},
				toolRows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
