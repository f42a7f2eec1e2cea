package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"notesaudio/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("NOTESAUDIO_DEST", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantSource := filepath.Join(tempHome, "Library", "Group Containers", "group.com.apple.notes", "Accounts", "*", "Media")
	if cfg.Paths.SourcePattern != wantSource {
		t.Fatalf("unexpected source pattern: got %q want %q", cfg.Paths.SourcePattern, wantSource)
	}
	wantDest := filepath.Join(tempHome, "Library", "CloudStorage", "OneDrive-个人", "NotesAudioExports")
	if cfg.Paths.DestinationDir != wantDest {
		t.Fatalf("unexpected destination: got %q want %q", cfg.Paths.DestinationDir, wantDest)
	}
	if cfg.Paths.StateDir != filepath.Join(tempHome, ".local", "share", "notesaudio") {
		t.Fatalf("unexpected state dir: %q", cfg.Paths.StateDir)
	}
	if !strings.HasPrefix(cfg.Paths.VoiceMemosDB, tempHome) {
		t.Fatalf("expected voice memos db under home, got %q", cfg.Paths.VoiceMemosDB)
	}
	if cfg.Export.Source != config.SourceNotes {
		t.Fatalf("expected notes source by default, got %q", cfg.Export.Source)
	}
	if len(cfg.Export.Extensions) != 1 || cfg.Export.Extensions[0] != ".m4a" {
		t.Fatalf("unexpected extensions: %v", cfg.Export.Extensions)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
	if cfg.Export.Strict || cfg.Export.Exclusive || cfg.Export.Verify {
		t.Fatalf("expected optional export behaviours off by default: %+v", cfg.Export)
	}
	if cfg.HistoryPath() != filepath.Join(cfg.Paths.StateDir, "history.db") {
		t.Fatalf("unexpected history path: %q", cfg.HistoryPath())
	}
}

func TestLoadCustomConfig(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("NOTESAUDIO_DEST", "")

	configPath := filepath.Join(t.TempDir(), "config.toml")
	payload := map[string]any{
		"paths": map[string]any{
			"source_pattern":  "~/notes/Accounts/*/Media",
			"destination_dir": "~/exports",
			"voice_memos_db":  "~/memos/CloudRecordings.db",
		},
		"export": map[string]any{
			"source":     "VoiceMemos",
			"extensions": []string{"m4a", ".m4a", " .caf "},
			"verify":     true,
		},
		"logging": map[string]any{
			"format": "JSON",
			"level":  "Debug",
		},
	}
	data, err := toml.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected config at %q, got %q (exists=%v)", configPath, resolved, exists)
	}
	if cfg.Paths.DestinationDir != filepath.Join(tempHome, "exports") {
		t.Fatalf("unexpected destination: %q", cfg.Paths.DestinationDir)
	}
	if cfg.Paths.VoiceMemosDB != filepath.Join(tempHome, "memos", "CloudRecordings.db") {
		t.Fatalf("unexpected voice memos db: %q", cfg.Paths.VoiceMemosDB)
	}
	if cfg.Export.Source != config.SourceVoiceMemos {
		t.Fatalf("expected source normalized to voicememos, got %q", cfg.Export.Source)
	}
	if got := strings.Join(cfg.Export.Extensions, ","); got != ".m4a,.caf" {
		t.Fatalf("unexpected extensions: %q", got)
	}
	if !cfg.Export.Verify {
		t.Fatal("expected verify enabled")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestDestinationEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	override := filepath.Join(t.TempDir(), "override")
	t.Setenv("NOTESAUDIO_DEST", override)

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.DestinationDir != override {
		t.Fatalf("expected env override %q, got %q", override, cfg.Paths.DestinationDir)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NOTESAUDIO_DEST", "")

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "source", body: "[export]\nsource = \"photos\"\n", wantErr: "export.source"},
		{name: "format", body: "[logging]\nformat = \"xml\"\n", wantErr: "logging.format"},
		{name: "level", body: "[logging]\nlevel = \"loud\"\n", wantErr: "logging.level"},
		{name: "pattern", body: "[paths]\nsource_pattern = \"/tmp/[\"\n", wantErr: "paths.source_pattern"},
		{name: "unknown", body: "[paths]\nlibrary_dir = \"/tmp\"\n", wantErr: "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateSampleLoads(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NOTESAUDIO_DEST", "")

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Export.Source != config.SourceNotes {
		t.Fatalf("unexpected sample source: %q", cfg.Export.Source)
	}
}

func TestEncodeRoundTrips(t *testing.T) {
	cfg := config.Default()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode encoded config: %v", err)
	}
	if decoded.Paths.SourcePattern != cfg.Paths.SourcePattern {
		t.Fatalf("source pattern lost in encode: %q", decoded.Paths.SourcePattern)
	}
}
