package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeWhisper()
	c.normalizeFFmpeg()
	c.normalizeLLM()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) != "" {
		if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
			return fmt.Errorf("paths.output_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeWhisper() {
	c.Whisper.Model = strings.TrimSpace(c.Whisper.Model)
	if c.Whisper.Model == "" {
		c.Whisper.Model = defaultWhisperModel
	}
	c.Whisper.LargeModel = strings.TrimSpace(c.Whisper.LargeModel)
	if c.Whisper.LargeModel == "" {
		c.Whisper.LargeModel = defaultWhisperLarge
	}
	c.Whisper.Binary = strings.TrimSpace(c.Whisper.Binary)
	if c.Whisper.Binary == "" {
		c.Whisper.Binary = defaultWhisperBinary
	}
	c.Whisper.Tool = strings.TrimSpace(c.Whisper.Tool)
	if c.Whisper.Tool == "" {
		c.Whisper.Tool = defaultWhisperTool
	}
	c.Whisper.Device = strings.ToLower(strings.TrimSpace(c.Whisper.Device))
	if c.Whisper.Device == "" {
		c.Whisper.Device = defaultWhisperDevice
	}
	if c.Whisper.BeamSize <= 0 {
		c.Whisper.BeamSize = defaultWhisperBeam
	}
	c.Whisper.Language = strings.TrimSpace(c.Whisper.Language)
}

func (c *Config) normalizeFFmpeg() {
	c.FFmpeg.Binary = strings.TrimSpace(c.FFmpeg.Binary)
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = defaultFFmpegBinary
	}
	c.FFmpeg.ProbeBinary = strings.TrimSpace(c.FFmpeg.ProbeBinary)
	if c.FFmpeg.ProbeBinary == "" {
		c.FFmpeg.ProbeBinary = defaultFFprobeBinary
	}
	c.FFmpeg.MP3Bitrate = strings.TrimSpace(c.FFmpeg.MP3Bitrate)
}

func (c *Config) normalizeLLM() {
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("SCRIBE_LLM_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeout
	}
	if c.LLM.ChunkChars <= 0 {
		c.LLM.ChunkChars = defaultLLMChunkChars
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
