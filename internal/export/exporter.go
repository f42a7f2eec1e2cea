package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"notesaudio/internal/fileutil"
	"notesaudio/internal/logging"
	"notesaudio/internal/source"
)

// Options configures an Exporter.
type Options struct {
	DestinationDir string
	// Verify re-reads every copy and compares it with the source.
	Verify bool
	// PreserveModTime stamps each copy with the recording timestamp.
	PreserveModTime bool
	// DryRun plans destination names without creating any files.
	DryRun bool
}

// Record describes one exported (or, in a dry run, planned) file.
type Record struct {
	RunID       string
	Source      string
	Destination string
	ModTime     time.Time
	ID          string
	Bytes       int64
	SHA256      string
	ExportedAt  time.Time
}

// Recorder receives every successful export. The history ledger implements it.
type Recorder interface {
	RecordExport(ctx context.Context, record Record) error
}

// Result summarizes a run.
type Result struct {
	RunID   string
	Copied  int
	Records []Record
	// Errors holds one *FileCopyError per file that could not be exported.
	Errors []error
	// Warnings holds enumeration problems and ledger failures. They never
	// affect Copied.
	Warnings []error
	DryRun   bool
}

// Option customizes an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger used for progress and failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRecorder attaches a ledger that receives every successful record.
func WithRecorder(recorder Recorder) Option {
	return func(e *Exporter) {
		e.recorder = recorder
	}
}

// WithIDGenerator replaces the UUID source.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(e *Exporter) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// WithLocation sets the time zone used to format timestamps. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(e *Exporter) {
		if loc != nil {
			e.location = loc
		}
	}
}

// WithClock replaces time.Now for ExportedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// Exporter copies recordings into a flat destination directory.
type Exporter struct {
	opts     Options
	logger   *slog.Logger
	recorder Recorder
	newID    func() (string, error)
	location *time.Location
	now      func() time.Time
}

// New constructs an Exporter.
func New(opts Options, options ...Option) *Exporter {
	e := &Exporter{
		opts:     opts,
		logger:   logging.NewNop(),
		newID:    newUUID,
		location: time.Local,
		now:      time.Now,
	}
	for _, opt := range options {
		opt(e)
	}
	e.logger = logging.NewComponentLogger(e.logger, "exporter")
	return e
}

func newUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Run ensures the destination exists and exports every file produced by files,
// sequentially. A *DirectoryCreationError aborts the run; every other failure
// is collected in the result. Cancelling ctx stops the run between files and
// returns the partial result with ctx.Err().
func (e *Exporter) Run(ctx context.Context, files source.Seq) (Result, error) {
	result := Result{DryRun: e.opts.DryRun}
	started := e.now()

	runID, err := e.newID()
	if err != nil {
		return result, fmt.Errorf("generate run id: %w", err)
	}
	result.RunID = runID
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, e.logger)

	if err := e.ensureDestination(); err != nil {
		logger.Error("destination unavailable",
			logging.String(logging.FieldDestination, e.opts.DestinationDir),
			logging.Error(err),
		)
		return result, err
	}

	logger.Debug("export started",
		logging.String(logging.FieldDestination, e.opts.DestinationDir),
		logging.Bool("dry_run", e.opts.DryRun),
	)

	for file, seqErr := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if seqErr != nil {
			logger.Warn("skipped unreadable source", logging.Error(seqErr), classify(seqErr))
			result.Warnings = append(result.Warnings, seqErr)
			continue
		}

		record, err := e.exportOne(runID, file)
		if err != nil {
			logger.Error("export failed",
				logging.String(logging.FieldSource, file.Path),
				logging.Error(err),
				classify(err),
			)
			result.Errors = append(result.Errors, err)
			continue
		}

		result.Records = append(result.Records, record)
		if e.opts.DryRun {
			logger.Info("would export",
				logging.String(logging.FieldSource, record.Source),
				logging.String(logging.FieldDestination, record.Destination),
			)
			continue
		}

		result.Copied++
		logger.Debug("exported",
			logging.String(logging.FieldSource, record.Source),
			logging.String(logging.FieldDestination, record.Destination),
			logging.Int64("bytes", record.Bytes),
		)

		if e.recorder != nil {
			if err := e.recorder.RecordExport(ctx, record); err != nil {
				wrapped := fmt.Errorf("record export of %s: %w", record.Source, err)
				logger.Warn("history update failed", logging.Error(wrapped))
				result.Warnings = append(result.Warnings, wrapped)
			}
		}
	}

	logger.Info("export finished",
		logging.Int("copied", result.Copied),
		logging.Int("failed", len(result.Errors)),
		logging.Int("warnings", len(result.Warnings)),
		logging.Duration("elapsed", e.now().Sub(started)),
	)
	return result, nil
}

// DefaultExtension is the suffix exported when no other list is configured.
const DefaultExtension = ".m4a"

// ExportAll walks sourcePattern for DefaultExtension files and copies them into
// destinationDir. It returns the number of copies and the per-file failures;
// the error is non-nil only when the run could not start or was cancelled.
func ExportAll(ctx context.Context, sourcePattern, destinationDir string, options ...Option) (int, []error, error) {
	result, err := New(Options{DestinationDir: destinationDir}, options...).
		Run(ctx, source.Walk(sourcePattern, []string{DefaultExtension}))
	return result.Copied, result.Errors, err
}

func (e *Exporter) ensureDestination() error {
	if e.opts.DestinationDir == "" {
		return &DirectoryCreationError{Dir: e.opts.DestinationDir, Err: errors.New("destination directory not set")}
	}
	if err := os.MkdirAll(e.opts.DestinationDir, 0o755); err != nil {
		return &DirectoryCreationError{Dir: e.opts.DestinationDir, Err: err}
	}
	return nil
}

func (e *Exporter) exportOne(runID string, file source.File) (Record, error) {
	record := Record{RunID: runID, Source: file.Path}

	modTime := file.Recorded
	if modTime.IsZero() {
		info, err := os.Stat(file.Path)
		if err != nil {
			return record, &FileCopyError{Source: file.Path, Err: fmt.Errorf("stat source: %w", err)}
		}
		if !info.Mode().IsRegular() {
			return record, &FileCopyError{Source: file.Path, Err: errors.New("not a regular file")}
		}
		modTime = info.ModTime()
	}
	record.ModTime = modTime

	id, err := e.newID()
	if err != nil {
		return record, &FileCopyError{Source: file.Path, Err: fmt.Errorf("generate id: %w", err)}
	}
	record.ID = id

	name := DestinationName(modTime.In(e.location), id, Extension(file.Path))
	record.Destination = filepath.Join(e.opts.DestinationDir, name)

	if e.opts.DryRun {
		return record, nil
	}

	copyFn := fileutil.CopyFile
	if e.opts.Verify {
		copyFn = fileutil.CopyFileVerified
	}
	copied, err := copyFn(file.Path, record.Destination)
	if err != nil {
		return record, &FileCopyError{Source: file.Path, Destination: record.Destination, Err: err}
	}
	record.Bytes = copied.Bytes
	record.SHA256 = copied.SHA256
	record.ExportedAt = e.now().UTC()

	if e.opts.PreserveModTime {
		if err := os.Chtimes(record.Destination, modTime, modTime); err != nil {
			e.logger.Warn("could not preserve modification time",
				logging.String(logging.FieldDestination, record.Destination),
				logging.Error(err),
			)
		}
	}

	return record, nil
}

func classify(err error) logging.Attr {
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return logging.String(logging.FieldErrorKind, classifier.ErrorKind())
	}
	return logging.String(logging.FieldErrorKind, "unknown")
}
