package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"notesaudio/internal/config"
	"notesaudio/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	result := CheckDirectoryAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDirectoryAccess("test", f); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDestination_MissingButCreatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "exports")
	result := CheckDestination("dest", path)
	if !result.Passed {
		t.Fatalf("expected pass for creatable path, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckDestination_BlockedByFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDestination("dest", filepath.Join(blocker, "exports"))
	if result.Passed {
		t.Fatal("expected failure when an ancestor is a file")
	}
}

func TestCheckSourcePattern(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	result := CheckSourcePattern("notes", cfg.Paths.SourcePattern)
	if !result.Passed || !result.Warn {
		t.Fatalf("expected passing warning for empty source, got %+v", result)
	}

	testsupport.WriteFile(t, filepath.Join(testsupport.MediaDir(cfg, "one"), "a.m4a"), 1)
	testsupport.WriteFile(t, filepath.Join(testsupport.MediaDir(cfg, "two"), "b.m4a"), 1)
	result = CheckSourcePattern("notes", cfg.Paths.SourcePattern)
	if !result.Passed || result.Warn || result.Detail != "2 media directories" {
		t.Fatalf("unexpected result: %+v", result)
	}

	if result := CheckSourcePattern("notes", "/tmp/["); result.Passed {
		t.Fatal("expected failure for malformed pattern")
	}
}

func TestCheckDatabase(t *testing.T) {
	dir := t.TempDir()
	if result := CheckDatabase("db", filepath.Join(dir, "missing.db")); result.Passed {
		t.Fatal("expected failure for missing database")
	}
	if result := CheckDatabase("db", dir); result.Passed {
		t.Fatal("expected failure for directory")
	}
	db := filepath.Join(dir, "CloudRecordings.db")
	testsupport.WriteFile(t, db, 1)
	if result := CheckDatabase("db", db); !result.Passed {
		t.Fatalf("expected pass, got %s", result.Detail)
	}
}

func TestRunAllFollowsSource(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	results := RunAll(cfg)
	if len(results) != 3 {
		t.Fatalf("expected destination, notes, state checks, got %+v", results)
	}
	if results[1].Name != "Notes media" {
		t.Fatalf("expected notes check, got %s", results[1].Name)
	}
	if Failed(results) {
		t.Fatalf("expected fresh temp config to pass, got %+v", results)
	}

	cfg.Export.Source = config.SourceVoiceMemos
	cfg.History.Enabled = false
	results = RunAll(cfg)
	if len(results) != 2 || results[1].Name != "Voice Memos library" {
		t.Fatalf("unexpected voice memo checks: %+v", results)
	}
	if !Failed(results) {
		t.Fatal("expected missing library to fail")
	}
}
