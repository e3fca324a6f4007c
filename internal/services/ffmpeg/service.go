package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"scribe/internal/services"
)

// Decode extensions the converter accepts, with the container hint ffmpeg
// needs when auto-detection fails (raw AAC streams are ADTS framed).
var decodeFormats = map[string]string{
	".m4a":  "m4a",
	".wav":  "wav",
	".mp3":  "mp3",
	".aac":  "adts",
	".flac": "flac",
	".ogg":  "ogg",
	".wma":  "asf",
}

// DecodeExtensions returns the supported converter extensions in sorted
// order, without leading dots, for error messages.
func DecodeExtensions() []string {
	return []string{"aac", "flac", "m4a", "mp3", "ogg", "wav", "wma"}
}

// Config captures runtime settings for codec operations.
type Config struct {
	Binary      string
	ProbeBinary string
	// MP3Bitrate is passed as -b:a when set; empty keeps the encoder default.
	MP3Bitrate string
}

// Service wraps ffmpeg/ffprobe invocations.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
	probeRunner   func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewService creates a codec service with the given configuration.
func NewService(cfg Config) *Service {
	if cfg.Binary == "" {
		cfg.Binary = "ffmpeg"
	}
	if cfg.ProbeBinary == "" {
		cfg.ProbeBinary = "ffprobe"
	}
	return &Service{cfg: cfg}
}

// WithCommandRunner sets a custom ffmpeg runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// WithProbeRunner sets a custom ffprobe runner (for testing).
func (s *Service) WithProbeRunner(runner func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	s.probeRunner = runner
}

// ConvertToMP3 decodes source and re-encodes it as MP3 next to the input,
// returning the output path. Decoding first relies on ffmpeg's container
// auto-detection and retries once with the extension's format hint, matching
// how players cope with misnamed files. An .mp3 source is re-encoded in
// place, replaced only after the new file is complete.
func (s *Service) ConvertToMP3(ctx context.Context, source string) (string, error) {
	if _, err := os.Stat(source); err != nil {
		if os.IsNotExist(err) {
			return "", services.Wrap(services.ErrNotFound, "converter", "stat", source, nil)
		}
		return "", fmt.Errorf("convert: stat %s: %w", source, err)
	}

	ext := strings.ToLower(filepath.Ext(source))
	hint, ok := decodeFormats[ext]
	if !ok {
		return "", services.Wrap(services.ErrUnsupportedFormat, "converter", "classify",
			fmt.Sprintf("%s (supported: %s)", source, strings.Join(DecodeExtensions(), ", ")), nil)
	}

	stem := strings.TrimSuffix(filepath.Base(source), ext)
	dir := filepath.Dir(source)
	dest := filepath.Join(dir, stem+".mp3")

	// Encode into a temporary sibling and rename on success. The encoder
	// must never write to dest directly: for an .mp3 source dest equals
	// source, and a failed attempt must not leave dest clobbered or removed.
	tmp, err := os.CreateTemp(dir, stem+"-*.mp3")
	if err != nil {
		return "", fmt.Errorf("convert: temp output: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("convert: temp output: %w", err)
	}

	err = s.run(ctx, s.cfg.Binary, s.convertArgs(source, tmpPath, "")...)
	if err != nil && ext != ".mp3" {
		// Auto-detection failed; retry with the container hint.
		err = s.run(ctx, s.cfg.Binary, s.convertArgs(source, tmpPath, hint)...)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return "", services.Wrap(services.ErrExternalTool, "converter", "encode", filepath.Base(source), err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("convert: finalize %s: %w", dest, err)
	}
	return dest, nil
}

func (s *Service) convertArgs(source, dest, formatHint string) []string {
	args := []string{"-y", "-hide_banner", "-loglevel", "error"}
	if formatHint != "" {
		args = append(args, "-f", formatHint)
	}
	args = append(args, "-i", source, "-vn", "-c:a", "libmp3lame")
	if s.cfg.MP3Bitrate != "" {
		args = append(args, "-b:a", s.cfg.MP3Bitrate)
	}
	return append(args, dest)
}

// ExtractAudio extracts the audio stream from a source file into dest as a
// mono 16kHz WAV suitable for the recognizer.
func (s *Service) ExtractAudio(ctx context.Context, source, dest string) error {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
	if err := s.run(ctx, s.cfg.Binary, args...); err != nil {
		return services.Wrap(services.ErrExternalTool, "ffmpeg", "extract audio", filepath.Base(source), err)
	}
	return nil
}

// SplitChannels splits a stereo source into left and right MP3 files named
// <stem>_L.mp3 and <stem>_R.mp3 beside the input, returning both paths.
// Mono and multichannel sources are rejected.
func (s *Service) SplitChannels(ctx context.Context, source string) (left, right string, err error) {
	probe, err := s.Probe(ctx, source)
	if err != nil {
		return "", "", err
	}
	channels := probe.AudioChannels()
	switch {
	case channels == 0:
		return "", "", services.Wrap(services.ErrValidation, "ffmpeg", "split", "no audio stream found", nil)
	case channels == 1:
		return "", "", services.Wrap(services.ErrValidation, "ffmpeg", "split", "source is mono; nothing to split", nil)
	case channels > 2:
		return "", "", services.Wrap(services.ErrValidation, "ffmpeg", "split",
			fmt.Sprintf("source has %d channels; only stereo is supported", channels), nil)
	}

	ext := filepath.Ext(source)
	stem := strings.TrimSuffix(filepath.Base(source), ext)
	dir := filepath.Dir(source)
	left = filepath.Join(dir, stem+"_L.mp3")
	right = filepath.Join(dir, stem+"_R.mp3")

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-filter_complex", "[0:a]channelsplit=channel_layout=stereo[left][right]",
		"-map", "[left]", "-c:a", "libmp3lame", left,
		"-map", "[right]", "-c:a", "libmp3lame", right,
	}
	if err := s.run(ctx, s.cfg.Binary, args...); err != nil {
		_ = os.Remove(left)
		_ = os.Remove(right)
		return "", "", services.Wrap(services.ErrExternalTool, "ffmpeg", "split", filepath.Base(source), err)
	}
	return left, right, nil
}

// run executes ffmpeg, using the custom runner if set.
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
