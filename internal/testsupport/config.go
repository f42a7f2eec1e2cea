package testsupport

import (
	"path/filepath"
	"testing"

	"notesaudio/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The source pattern points at <base>/notes/Accounts/*/Media and the
// destination at <base>/export, neither of which exists yet.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.SourcePattern = filepath.Join(base, "notes", "Accounts", "*", "Media")
	cfgVal.Paths.DestinationDir = filepath.Join(base, "export")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.VoiceMemosDB = filepath.Join(base, "memos", "CloudRecordings.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithHistoryDisabled turns off the export ledger on the test config.
func WithHistoryDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// WithVoiceMemos switches the test config to the voice memo source.
func WithVoiceMemos() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Export.Source = config.SourceVoiceMemos
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}

// MediaDir returns the media directory for account inside the test notes tree.
func MediaDir(cfg *config.Config, account string) string {
	return filepath.Join(BaseDir(cfg), "notes", "Accounts", account, "Media")
}
