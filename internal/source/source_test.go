package source_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"notesaudio/internal/source"
	"notesaudio/internal/testsupport"
)

func collect(t *testing.T, seq source.Seq) ([]string, []error) {
	t.Helper()
	var paths []string
	var errs []error
	for file, err := range seq {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		paths = append(paths, file.Path)
	}
	slices.Sort(paths)
	return paths, errs
}

func TestWalkFindsRecordingsAcrossAccounts(t *testing.T) {
	root := t.TempDir()
	want := []string{
		filepath.Join(root, "Accounts", "A", "Media", "x", "one.m4a"),
		filepath.Join(root, "Accounts", "A", "Media", "x", "y", "two.m4a"),
		filepath.Join(root, "Accounts", "B", "Media", "three.m4a"),
	}
	for _, p := range want {
		testsupport.WriteFile(t, p, 16)
	}
	testsupport.WriteFile(t, filepath.Join(root, "Accounts", "A", "Media", "x", "image.png"), 8)
	testsupport.WriteFile(t, filepath.Join(root, "Accounts", "A", "Media", "x", "upper.M4A"), 8)
	testsupport.WriteFile(t, filepath.Join(root, "Accounts", "A", "Previews", "preview.m4a"), 8)
	if err := os.MkdirAll(filepath.Join(root, "Accounts", "B", "Media", "folder.m4a"), 0o755); err != nil {
		t.Fatal(err)
	}

	pattern := filepath.Join(root, "Accounts", "*", "Media")
	got, errs := collect(t, source.Walk(pattern, []string{".m4a"}))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected files:\n got %v\nwant %v", got, want)
	}
}

func TestWalkMissingRootYieldsNothing(t *testing.T) {
	pattern := filepath.Join(t.TempDir(), "Accounts", "*", "Media")
	got, errs := collect(t, source.Walk(pattern, []string{".m4a"}))
	if len(got) != 0 || len(errs) != 0 {
		t.Fatalf("expected empty sequence, got files=%v errs=%v", got, errs)
	}

	literal := filepath.Join(t.TempDir(), "does-not-exist")
	got, errs = collect(t, source.Walk(literal, []string{".m4a"}))
	if len(got) != 0 || len(errs) != 0 {
		t.Fatalf("expected empty sequence for missing literal root, got files=%v errs=%v", got, errs)
	}
}

func TestWalkBadPatternReportsEnumerationError(t *testing.T) {
	_, errs := collect(t, source.Walk("/tmp/[", []string{".m4a"}))
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	var enumErr *source.EnumerationError
	if !errors.As(errs[0], &enumErr) {
		t.Fatalf("expected EnumerationError, got %T", errs[0])
	}
	if enumErr.ErrorKind() != "source_enumeration" {
		t.Fatalf("unexpected kind %q", enumErr.ErrorKind())
	}
}

func TestWalkSkipsUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed for root")
	}
	root := t.TempDir()
	media := filepath.Join(root, "Accounts", "A", "Media")
	readable := filepath.Join(media, "ok", "keep.m4a")
	testsupport.WriteFile(t, readable, 4)
	locked := filepath.Join(media, "locked")
	testsupport.WriteFile(t, filepath.Join(locked, "hidden.m4a"), 4)
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	got, errs := collect(t, source.Walk(filepath.Join(root, "Accounts", "*", "Media"), []string{".m4a"}))
	if !slices.Equal(got, []string{readable}) {
		t.Fatalf("unexpected files: %v", got)
	}
	if len(errs) != 1 {
		t.Fatalf("expected exactly one enumeration error, got %v", errs)
	}
	var enumErr *source.EnumerationError
	if !errors.As(errs[0], &enumErr) || enumErr.Path != locked {
		t.Fatalf("expected error for %s, got %v", locked, errs[0])
	}
}

func TestWalkStopsWhenConsumerStops(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.m4a", "b.m4a", "c.m4a"} {
		testsupport.WriteFile(t, filepath.Join(root, name), 1)
	}

	count := 0
	for _, err := range source.Walk(root, []string{".m4a"}) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		count++
		break
	}
	if count != 1 {
		t.Fatalf("expected iteration to stop after one file, got %d", count)
	}

	// A fresh call enumerates again from scratch.
	got, _ := collect(t, source.Walk(root, []string{".m4a"}))
	if len(got) != 3 {
		t.Fatalf("expected re-enumeration to find 3 files, got %d", len(got))
	}
}

func TestSlice(t *testing.T) {
	got, errs := collect(t, source.Slice(source.File{Path: "/b"}, source.File{Path: "/a"}))
	if len(errs) != 0 || !slices.Equal(got, []string{"/a", "/b"}) {
		t.Fatalf("unexpected slice output: %v %v", got, errs)
	}
}
