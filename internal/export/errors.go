package export

import "fmt"

// DirectoryCreationError means the destination directory could not be created.
// It aborts the run before any file is copied.
type DirectoryCreationError struct {
	Dir string
	Err error
}

func (e *DirectoryCreationError) Error() string {
	return fmt.Sprintf("create destination directory %s: %v", e.Dir, e.Err)
}

func (e *DirectoryCreationError) Unwrap() error { return e.Err }

// ErrorKind classifies the error for reporting.
func (e *DirectoryCreationError) ErrorKind() string { return "directory_creation" }

// FileCopyError records a single file that could not be exported. The run
// continues past it.
type FileCopyError struct {
	Source      string
	Destination string
	Err         error
}

func (e *FileCopyError) Error() string {
	if e.Destination == "" {
		return fmt.Sprintf("export %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("export %s to %s: %v", e.Source, e.Destination, e.Err)
}

func (e *FileCopyError) Unwrap() error { return e.Err }

// ErrorKind classifies the error for reporting.
func (e *FileCopyError) ErrorKind() string { return "file_copy" }

// ErrorClassifier is implemented by every error the exporter reports.
type ErrorClassifier interface {
	ErrorKind() string
}
