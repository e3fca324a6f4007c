package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"scribe/internal/history"
	"scribe/internal/language"
	"scribe/internal/logging"
	"scribe/internal/media"
	"scribe/internal/services/ffmpeg"
	"scribe/internal/services/whisper"
	"scribe/internal/transcribe"
)

type transcribeOptions struct {
	text       bool
	lrc        bool
	outputDir  string
	largeModel bool
	recursive  bool
	language   string
	assumeYes  bool
}

func runTranscribe(cmd *cobra.Command, cctx *commandContext, inputPath string, opts *transcribeOptions) error {
	cfg, err := cctx.ensureConfig()
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	files, err := media.Resolve(inputPath, opts.recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No supported media files found.")
		return nil
	}

	if err := confirmBatch(cmd.OutOrStdout(), cmd.InOrStdin(), files, opts.assumeYes); err != nil {
		return err
	}

	model := cfg.Whisper.Model
	if opts.largeModel {
		model = cfg.Whisper.LargeModel
	}
	lang := opts.language
	if lang == "" {
		lang = cfg.Whisper.Language
	}
	lang = language.NormalizeHint(lang)

	outputDir := opts.outputDir
	if outputDir == "" {
		outputDir = cfg.Paths.OutputDir
	}

	recognizer := whisper.NewService(whisper.Config{
		Binary:    cfg.Whisper.Binary,
		Tool:      cfg.Whisper.Tool,
		Device:    cfg.Whisper.Device,
		BeamSize:  cfg.Whisper.BeamSize,
		VADFilter: cfg.Whisper.VADFilter,
	})
	codec := ffmpeg.NewService(ffmpeg.Config{
		Binary:      cfg.FFmpeg.Binary,
		ProbeBinary: cfg.FFmpeg.ProbeBinary,
		MP3Bitrate:  cfg.FFmpeg.MP3Bitrate,
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Transcribing %d file(s) with model %s (language: %s)\n",
		len(files), model, language.DisplayName(lang))

	orchestrator := transcribe.NewOrchestrator(recognizer, codec, logger)
	if len(files) > 1 {
		bar := progressbar.NewOptions(
			len(files),
			progressbar.OptionSetDescription("transcribing"),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		orchestrator.OnFileDone = func(transcribe.FileOutcome) {
			_ = bar.Add(1)
		}
	}

	job := transcribe.BatchJob{
		InputPath: inputPath,
		Files:     files,
		Model:     model,
		Language:  lang,
		OutputDir: outputDir,
		WriteText: opts.text,
		WriteLRC:  opts.lrc,
	}

	summary, runErr := orchestrator.Run(cmd.Context(), job)
	recordRun(cmd, cfg.HistoryDBPath(), logger, job, summary)
	if runErr != nil {
		return runErr
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary))
	if failed := summary.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(summary.Outcomes))
	}
	return nil
}

// recordRun persists the run outcome. History is best effort; a failure to
// record never fails the run itself.
func recordRun(cmd *cobra.Command, dbPath string, logger *slog.Logger, job transcribe.BatchJob, summary *transcribe.RunSummary) {
	store, err := history.Open(dbPath)
	if err != nil {
		logger.Warn("history unavailable", logging.Args(logging.Error(err))...)
		return
	}
	defer store.Close()

	run := history.Run{
		StartedAt:  summary.StartedAt,
		FinishedAt: summary.FinishedAt,
		InputPath:  job.InputPath,
		Model:      job.Model,
		Language:   job.Language,
	}
	for _, outcome := range summary.Outcomes {
		result := history.FileResult{
			Path:    outcome.File.Path,
			Status:  history.StatusSucceeded,
			Elapsed: outcome.Elapsed,
		}
		if outcome.Err != nil {
			result.Status = history.StatusFailed
			result.Error = outcome.Err.Error()
		}
		run.Files = append(run.Files, result)
	}

	if _, err := store.RecordRun(cmd.Context(), run); err != nil {
		logger.Warn("record run", logging.Args(logging.Error(err))...)
	}
}

func renderSummary(summary *transcribe.RunSummary) string {
	rows := make([][]string, 0, len(summary.Outcomes))
	for _, outcome := range summary.Outcomes {
		status := "ok"
		detail := fmt.Sprintf("%d artifact(s)", len(outcome.Artifacts))
		if outcome.Err != nil {
			status = "failed"
			detail = outcome.Err.Error()
		}
		rows = append(rows, []string{
			outcome.File.Path,
			status,
			formatElapsed(outcome.Elapsed),
			detail,
		})
	}
	table := renderTable(
		[]string{"File", "Status", "Elapsed", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	)
	return fmt.Sprintf("%s\n%d succeeded, %d failed, total %s",
		table, summary.Succeeded(), summary.Failed(),
		formatElapsed(summary.FinishedAt.Sub(summary.StartedAt)))
}

func formatElapsed(d time.Duration) string {
	return d.Round(100 * time.Millisecond).String()
}
