package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// OutputDir, when set, overrides the per-file default of writing
	// artifacts next to the input media.
	OutputDir string `toml:"output_dir"`
	// LogDir receives the scribe log file and the run history database.
	LogDir string `toml:"log_dir"`
}

// Whisper contains configuration for the speech-recognition CLI.
type Whisper struct {
	// Model is the default (fast) model variant.
	Model string `toml:"model"`
	// LargeModel is requested when the operator asks for the accurate variant.
	LargeModel string `toml:"large_model"`
	// Binary is the launcher executable (uvx by default).
	Binary string `toml:"binary"`
	// Tool is the package the launcher runs (whisper-ctranslate2).
	Tool string `toml:"tool"`
	// Device selects the compute device ("auto", "cpu", "cuda").
	Device   string `toml:"device"`
	BeamSize int    `toml:"beam_size"`
	// VADFilter enables voice activity detection in the recognizer.
	VADFilter bool `toml:"vad_filter"`
	// Language is the default language hint; empty means auto-detect.
	Language string `toml:"language"`
}

// FFmpeg contains configuration for the codec tool.
type FFmpeg struct {
	Binary      string `toml:"binary"`
	ProbeBinary string `toml:"probe_binary"`
	// MP3Bitrate is passed to the encoder; empty keeps the encoder default.
	MP3Bitrate string `toml:"mp3_bitrate"`
}

// LLM contains connection settings for the summarization endpoint.
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	// ChunkChars bounds how much transcript text each summarization request
	// carries before the per-chunk summaries are combined.
	ChunkChars int `toml:"chunk_chars"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for scribe and tomp3.
//
// Configuration sections by subsystem:
//   - Paths: output override and log/history directory
//   - Whisper: speech-recognition CLI invocation settings
//   - FFmpeg: codec tool binaries and encoder settings
//   - LLM: OpenAI-compatible endpoint for transcript summaries
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Whisper Whisper `toml:"whisper"`
	FFmpeg  FFmpeg  `toml:"ffmpeg"`
	LLM     LLM     `toml:"llm"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/scribe/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. Missing files are not
// an error; defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("scribe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories scribe writes into.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) != "" {
		if err := os.MkdirAll(c.Paths.OutputDir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", c.Paths.OutputDir, err)
		}
	}
	return nil
}

// HistoryDBPath returns the location of the run history database.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.Paths.LogDir, "history.db")
}

// SampleConfig returns the embedded annotated sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// WriteSampleConfig writes the embedded sample configuration to path,
// refusing to overwrite an existing file.
func WriteSampleConfig(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath expands a leading tilde and returns an absolute cleaned path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
