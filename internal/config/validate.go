package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DestinationDir == "" {
		return errors.New("paths.destination_dir must be set")
	}
	if c.Paths.StateDir == "" {
		return errors.New("paths.state_dir must be set")
	}
	if _, err := filepath.Match(c.Paths.SourcePattern, ""); err != nil {
		return fmt.Errorf("paths.source_pattern: %w", err)
	}
	return nil
}

func (c *Config) validateExport() error {
	switch c.Export.Source {
	case SourceNotes, SourceVoiceMemos:
	default:
		return fmt.Errorf("export.source: unsupported value %q (want %q or %q)", c.Export.Source, SourceNotes, SourceVoiceMemos)
	}
	if c.Export.Source == SourceVoiceMemos && c.Paths.VoiceMemosDB == "" {
		return errors.New("paths.voice_memos_db must be set when export.source is voicememos")
	}
	for _, ext := range c.Export.Extensions {
		if len(ext) < 2 {
			return fmt.Errorf("export.extensions: invalid extension %q", ext)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
