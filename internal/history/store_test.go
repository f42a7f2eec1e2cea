package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"notesaudio/internal/export"
	"notesaudio/internal/history"
	"notesaudio/internal/source"
	"notesaudio/internal/testsupport"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"a.m4a", "b.m4a", "c.m4a"} {
		record := export.Record{
			RunID:       "run-1",
			ID:          name + "-id",
			Source:      "/notes/" + name,
			Destination: "/export/" + name,
			ModTime:     base.Add(-time.Hour),
			Bytes:       int64(100 + i),
			SHA256:      "digest-" + name,
			ExportedAt:  base.Add(time.Duration(i) * time.Second),
		}
		if err := store.RecordExport(ctx, record); err != nil {
			t.Fatalf("RecordExport: %v", err)
		}
	}

	entries, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].SourcePath != "/notes/c.m4a" || entries[1].SourcePath != "/notes/b.m4a" {
		t.Fatalf("expected newest first, got %s then %s", entries[0].SourcePath, entries[1].SourcePath)
	}
	if !entries[0].ExportedAt.Equal(base.Add(2*time.Second)) {
		t.Fatalf("unexpected exported_at %v", entries[0].ExportedAt)
	}
	if !entries[0].ModifiedAt.Equal(base.Add(-time.Hour)) {
		t.Fatalf("unexpected modified_at %v", entries[0].ModifiedAt)
	}
	if entries[0].Bytes != 102 || entries[0].SHA256 != "digest-c.m4a" || entries[0].RunID != "run-1" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}

	all, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent(0): %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected all 3 entries, got %d", len(all))
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.RecordExport(context.Background(), export.Record{ID: "x", Source: "/s", Destination: "/d"}); err != nil {
		t.Fatalf("RecordExport: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	count, err := reopened.CountBySource(context.Background(), "/s")
	if err != nil {
		t.Fatalf("CountBySource: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 entry after reopen, got %d", count)
	}
}

func TestStoreRecordsExporterRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := filepath.Join(testsupport.MediaDir(cfg, "acct"), "clip.m4a")
	testsupport.WriteFile(t, src, 64)

	store := openStore(t)
	exp := export.New(export.Options{DestinationDir: cfg.Paths.DestinationDir}, export.WithRecorder(store))
	for i := 0; i < 2; i++ {
		result, err := exp.Run(context.Background(), source.Walk(cfg.Paths.SourcePattern, cfg.Export.Extensions))
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if result.Copied != 1 || len(result.Warnings) != 0 {
			t.Fatalf("unexpected result: %+v", result)
		}
	}

	count, err := store.CountBySource(context.Background(), src)
	if err != nil {
		t.Fatalf("CountBySource: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected two ledger rows for repeated export, got %d", count)
	}
}
