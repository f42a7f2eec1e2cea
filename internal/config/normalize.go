package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize expands paths and canonicalizes enumerated values. Load calls it;
// callers that mutate a Config after loading (for example from CLI flags) call
// it again before use. It is idempotent.
func (c *Config) Normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeExport()
	c.normalizeLogging()
	return nil
}

func (c *Config) applyEnvOverrides() {
	if value, ok := os.LookupEnv(destinationEnv); ok && strings.TrimSpace(value) != "" {
		c.Paths.DestinationDir = strings.TrimSpace(value)
	}
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.SourcePattern) == "" {
		c.Paths.SourcePattern = defaultSourcePattern
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}

	var err error
	if c.Paths.SourcePattern, err = normalizePath(c.Paths.SourcePattern); err != nil {
		return fmt.Errorf("paths.source_pattern: %w", err)
	}
	if c.Paths.DestinationDir, err = normalizePath(c.Paths.DestinationDir); err != nil {
		return fmt.Errorf("paths.destination_dir: %w", err)
	}
	if c.Paths.StateDir, err = normalizePath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}

	if strings.TrimSpace(c.Paths.VoiceMemosDB) == "" {
		c.Paths.VoiceMemosDB = resolveVoiceMemosDB()
	}
	if c.Paths.VoiceMemosDB, err = normalizePath(c.Paths.VoiceMemosDB); err != nil {
		return fmt.Errorf("paths.voice_memos_db: %w", err)
	}
	return nil
}

// normalizePath expands the path and folds it to NFC so that names typed in a
// config file compare equal to names returned by macOS directory listings.
func normalizePath(value string) (string, error) {
	expanded, err := expandPath(strings.TrimSpace(value))
	if err != nil {
		return "", err
	}
	return norm.NFC.String(expanded), nil
}

// resolveVoiceMemosDB picks the first existing library candidate, falling back
// to the newest layout so error messages name a sensible path.
func resolveVoiceMemosDB() string {
	candidates := VoiceMemosDatabaseCandidates()
	for _, candidate := range candidates {
		expanded, err := expandPath(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(expanded); err == nil && !info.IsDir() {
			return expanded
		}
	}
	return candidates[0]
}

func (c *Config) normalizeExport() {
	c.Export.Source = strings.ToLower(strings.TrimSpace(c.Export.Source))
	if c.Export.Source == "" {
		c.Export.Source = SourceNotes
	}

	extensions := make([]string, 0, len(c.Export.Extensions))
	seen := make(map[string]struct{}, len(c.Export.Extensions))
	for _, ext := range c.Export.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		extensions = append(extensions, ext)
	}
	if len(extensions) == 0 {
		extensions = []string{defaultExtension}
	}
	c.Export.Extensions = extensions
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
