package voicememos

import (
	"os"

	"notesaudio/internal/config"
)

// ResolveDatabase returns the first candidate that exists as a regular file,
// after tilde expansion. It returns "" when none exist.
func ResolveDatabase(candidates []string) string {
	for _, candidate := range candidates {
		expanded, err := config.ExpandPath(candidate)
		if err != nil || expanded == "" {
			continue
		}
		if info, err := os.Stat(expanded); err == nil && info.Mode().IsRegular() {
			return expanded
		}
	}
	return ""
}

// DefaultDatabasePaths lists the known library locations.
func DefaultDatabasePaths() []string {
	return config.VoiceMemosDatabaseCandidates()
}
