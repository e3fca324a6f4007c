package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	langpkg "scribe/internal/language"
	"scribe/internal/services"
	"scribe/internal/subtitles"
)

// Service provides speech-to-text transcription via the external CLI.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a transcription service with the given configuration.
func NewService(cfg Config) *Service {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.Tool == "" {
		cfg.Tool = DefaultTool
	}
	if cfg.Device == "" {
		cfg.Device = DefaultDevice
	}
	if cfg.BeamSize <= 0 {
		cfg.BeamSize = DefaultBeamSize
	}
	return &Service{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Transcribe runs the recognizer against source with the requested model and
// language hint (empty hint means auto-detect) and returns the ordered timed
// segments. The recognizer's JSON output lands in a temporary directory that
// is removed before return.
func (s *Service) Transcribe(ctx context.Context, source, model, language string) ([]subtitles.Segment, error) {
	if source == "" {
		return nil, services.Wrap(services.ErrValidation, "whisper", "transcribe", "source path required", nil)
	}
	if model == "" {
		model = DefaultModel
	}

	workDir, err := os.MkdirTemp("", "scribe-whisper-*")
	if err != nil {
		return nil, fmt.Errorf("transcribe: temp dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	args := s.buildArgs(source, workDir, model, language)
	if err := s.run(ctx, s.cfg.Binary, args...); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "whisper", "transcribe", filepath.Base(source), err)
	}

	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	jsonPath := filepath.Join(workDir, stem+".json")
	segments, err := LoadSegments(jsonPath)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "whisper", "parse output", filepath.Base(source), err)
	}
	return segments, nil
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// buildArgs constructs the launcher arguments for the recognizer.
func (s *Service) buildArgs(source, outputDir, model, language string) []string {
	args := []string{
		s.cfg.Tool,
		source,
		"--model", model,
		"--output_dir", outputDir,
		"--output_format", "json",
		"--beam_size", strconv.Itoa(s.cfg.BeamSize),
		"--device", s.cfg.Device,
		"--verbose", "False",
	}
	if s.cfg.VADFilter {
		args = append(args, "--vad_filter", "True")
	}
	if lang := langpkg.NormalizeHint(language); lang != "" {
		args = append(args, "--language", lang)
	}
	return args
}

// payload is the JSON structure the recognizer writes.
type payload struct {
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
	Language string `json:"language"`
}

// LoadSegments loads timed segments from a recognizer JSON file.
func LoadSegments(jsonPath string) ([]subtitles.Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse whisper json: %w", err)
	}
	segments := make([]subtitles.Segment, 0, len(p.Segments))
	for _, seg := range p.Segments {
		segments = append(segments, subtitles.Segment{Start: seg.Start, End: seg.End, Text: seg.Text})
	}
	return segments, nil
}
