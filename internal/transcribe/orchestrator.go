package transcribe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"scribe/internal/logging"
	"scribe/internal/media"
	"scribe/internal/services"
	"scribe/internal/subtitles"
)

// Transcriber is the narrow interface to the speech-recognition capability.
type Transcriber interface {
	Transcribe(ctx context.Context, source, model, language string) ([]subtitles.Segment, error)
}

// AudioExtractor prepares video containers for the recognizer.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, source, dest string) error
}

// Orchestrator processes a BatchJob strictly sequentially.
type Orchestrator struct {
	transcriber Transcriber
	extractor   AudioExtractor
	logger      *slog.Logger

	// OnFileStart fires before each file with its 1-based index.
	OnFileStart func(index, total int, file media.MediaFile)
	// OnFileDone fires after each file with its outcome.
	OnFileDone func(outcome FileOutcome)
}

// NewOrchestrator wires the batch loop. A nil logger is replaced with a
// no-op one.
func NewOrchestrator(transcriber Transcriber, extractor AudioExtractor, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		transcriber: transcriber,
		extractor:   extractor,
		logger:      logging.WithComponent(logger, "orchestrator"),
	}
}

// Run processes every file in the job in order. Per-file failures are
// recorded in the summary and the loop continues; context cancellation and
// errors classified as fatal abort early, returning the partial summary
// alongside the error.
func (o *Orchestrator) Run(ctx context.Context, job BatchJob) (*RunSummary, error) {
	summary := &RunSummary{StartedAt: time.Now()}
	total := len(job.Files)

	for i, file := range job.Files {
		if err := ctx.Err(); err != nil {
			summary.FinishedAt = time.Now()
			return summary, err
		}

		if o.OnFileStart != nil {
			o.OnFileStart(i+1, total, file)
		}
		o.logger.Info("transcribing",
			logging.Args(
				logging.String(logging.FieldFile, file.Path),
				logging.Int("index", i+1),
				logging.Int("total", total),
				logging.String(logging.FieldModel, job.Model),
			)...)

		start := time.Now()
		artifacts, err := o.processFile(ctx, job, file)
		outcome := FileOutcome{
			File:      file,
			Artifacts: artifacts,
			Err:       err,
			Elapsed:   time.Since(start),
		}
		summary.Outcomes = append(summary.Outcomes, outcome)

		if err != nil {
			o.logger.Error("file failed",
				logging.Args(
					logging.String(logging.FieldFile, file.Path),
					logging.Error(err),
				)...)
		} else {
			o.logger.Info("file done",
				logging.Args(
					logging.String(logging.FieldFile, file.Path),
					logging.Duration(logging.FieldElapsed, outcome.Elapsed),
					logging.Int("artifacts", len(artifacts)),
				)...)
		}
		if o.OnFileDone != nil {
			o.OnFileDone(outcome)
		}

		if err != nil && services.Fatal(err) {
			summary.FinishedAt = time.Now()
			return summary, err
		}
	}

	summary.FinishedAt = time.Now()
	return summary, nil
}

// processFile transcribes one file and writes its artifacts. Returned paths
// cover everything written, even when a later artifact fails.
func (o *Orchestrator) processFile(ctx context.Context, job BatchJob, file media.MediaFile) ([]string, error) {
	outputDir := job.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(file.Path)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure output dir: %w", err)
	}

	source := file.Path
	if file.Kind == media.KindVideo {
		// The intermediate WAV lives outside the output directory so an
		// interrupted run never leaves a file a later scan would ingest.
		tempDir, err := os.MkdirTemp("", "scribe-extract-*")
		if err != nil {
			return nil, fmt.Errorf("extract: temp dir: %w", err)
		}
		defer os.RemoveAll(tempDir)
		tempWAV := filepath.Join(tempDir, file.Stem()+".wav")
		if err := o.extractor.ExtractAudio(ctx, file.Path, tempWAV); err != nil {
			return nil, err
		}
		source = tempWAV
	}

	segments, err := o.transcriber.Transcribe(ctx, source, job.Model, job.Language)
	if err != nil {
		return nil, err
	}

	var artifacts []string
	srtPath := filepath.Join(outputDir, file.Stem()+".srt")
	if err := subtitles.WriteSRTFile(srtPath, segments); err != nil {
		return artifacts, err
	}
	artifacts = append(artifacts, srtPath)

	if job.WriteText {
		txtPath := filepath.Join(outputDir, file.Stem()+".txt")
		if err := subtitles.WriteTextFile(txtPath, segments); err != nil {
			return artifacts, err
		}
		artifacts = append(artifacts, txtPath)
	}

	if job.WriteLRC {
		lrcPath := filepath.Join(outputDir, file.Stem()+".lrc")
		if err := subtitles.WriteLRCFile(lrcPath, segments, file.Stem()); err != nil {
			return artifacts, err
		}
		artifacts = append(artifacts, lrcPath)
	}

	return artifacts, nil
}
