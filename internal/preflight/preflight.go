package preflight

import (
	"notesaudio/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Warn marks a passing check that still deserves attention, such as a
	// source pattern that currently matches nothing.
	Warn   bool
	Detail string
}

// RunAll executes the checks relevant to the configured source.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDestination("Destination", cfg.Paths.DestinationDir),
	}

	switch cfg.Export.Source {
	case config.SourceVoiceMemos:
		results = append(results, CheckDatabase("Voice Memos library", cfg.Paths.VoiceMemosDB))
	default:
		results = append(results, CheckSourcePattern("Notes media", cfg.Paths.SourcePattern))
	}

	if cfg.History.Enabled || cfg.Export.Exclusive || cfg.Logging.File {
		results = append(results, CheckDestination("State directory", cfg.Paths.StateDir))
	}

	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
