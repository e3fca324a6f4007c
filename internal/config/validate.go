package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWhisper(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateWhisper() error {
	switch c.Whisper.Device {
	case "auto", "cpu", "cuda":
	default:
		return fmt.Errorf("whisper.device must be auto, cpu, or cuda (got %q)", c.Whisper.Device)
	}
	if c.Whisper.BeamSize > 20 {
		return fmt.Errorf("whisper.beam_size %d is out of range (1-20)", c.Whisper.BeamSize)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.LLM.BaseURL == "" {
		return errors.New("llm.base_url must be set")
	}
	return nil
}
