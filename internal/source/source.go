package source

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
	"time"
)

// File is a discovered recording awaiting export.
type File struct {
	Path string
	// Recorded overrides the file modification time when the source knows
	// when the recording was made. Zero means "use the file's mtime".
	Recorded time.Time
	Label    string
}

// Seq is a lazy, single-pass sequence of discovered files. A non-nil error
// reports a problem with part of the source; iteration continues past it.
type Seq = iter.Seq2[File, error]

// EnumerationError reports a part of the source tree that could not be read.
type EnumerationError struct {
	Path string
	Err  error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("enumerate %s: %v", e.Path, e.Err)
}

func (e *EnumerationError) Unwrap() error { return e.Err }

// ErrorKind classifies the error for reporting.
func (e *EnumerationError) ErrorKind() string { return "source_enumeration" }

// Walk expands pattern with filepath.Glob and walks every match recursively,
// yielding regular files whose base name ends with one of extensions. The
// suffix match is literal and case-sensitive. Unreadable directories are
// reported once and skipped. Each call enumerates from scratch.
func Walk(pattern string, extensions []string) Seq {
	return func(yield func(File, error) bool) {
		roots, err := filepath.Glob(pattern)
		if err != nil {
			yield(File{}, &EnumerationError{Path: pattern, Err: err})
			return
		}

		for _, root := range roots {
			if !walkRoot(root, extensions, yield) {
				return
			}
		}
	}
}

func walkRoot(root string, extensions []string, yield func(File, error) bool) bool {
	stopped := false
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root && errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			if !yield(File{}, &EnumerationError{Path: path, Err: err}) {
				stopped = true
				return fs.SkipAll
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !matchesExtension(d.Name(), extensions) {
			return nil
		}
		if !yield(File{Path: path}, nil) {
			stopped = true
			return fs.SkipAll
		}
		return nil
	})
	return !stopped
}

func matchesExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Slice yields the given files in order. It backs explicit file lists and tests.
func Slice(files ...File) Seq {
	return func(yield func(File, error) bool) {
		for _, f := range files {
			if !yield(f, nil) {
				return
			}
		}
	}
}
