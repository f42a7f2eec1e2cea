package voicememos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"notesaudio/internal/source"
)

// appleEpoch is the Core Data reference date ZDATE counts from.
var appleEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// ErrMissingPath marks a recording row that has no audio file.
var ErrMissingPath = errors.New("recording has no audio file")

const recordingsQuery = `SELECT ZDATE, ZDURATION, ZCUSTOMLABEL, ZPATH
    FROM ZCLOUDRECORDING ORDER BY ZDATE`

// Recording is one row of the Voice Memos library.
type Recording struct {
	Date     time.Time
	Duration time.Duration
	Label    string
	// Path is absolute; empty when the row has no file.
	Path string
}

// Library is a read-only view of a CloudRecordings.db file.
type Library struct {
	db   *sql.DB
	path string
	dir  string
}

// Open opens the library database read-only. Recording paths are resolved
// relative to the database's directory.
func Open(path string) (*Library, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("voice memos library: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("voice memos library: %s is a directory", path)
	}

	dsn := (&url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro"}).String()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open voice memos library: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open voice memos library: %w", err)
	}
	return &Library{db: db, path: path, dir: filepath.Dir(path)}, nil
}

// Path returns the database location.
func (l *Library) Path() string {
	return l.path
}

// Close releases the database handle.
func (l *Library) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Recordings loads every recording ordered by date.
func (l *Library) Recordings(ctx context.Context) ([]Recording, error) {
	var recordings []Recording
	for rec, err := range l.scan(ctx) {
		if err != nil {
			return nil, err
		}
		recordings = append(recordings, rec)
	}
	return recordings, nil
}

// Files yields recordings as export sources. Rows without an audio file are
// reported as *source.EnumerationError and skipped.
func (l *Library) Files(ctx context.Context) source.Seq {
	return func(yield func(source.File, error) bool) {
		for rec, err := range l.scan(ctx) {
			if err != nil {
				yield(source.File{}, &source.EnumerationError{Path: l.path, Err: err})
				return
			}
			if rec.Path == "" {
				label := rec.Label
				if label == "" {
					label = rec.Date.Format(time.RFC3339)
				}
				if !yield(source.File{}, &source.EnumerationError{Path: label, Err: ErrMissingPath}) {
					return
				}
				continue
			}
			if !yield(source.File{Path: rec.Path, Recorded: rec.Date, Label: rec.Label}, nil) {
				return
			}
		}
	}
}

func (l *Library) scan(ctx context.Context) func(yield func(Recording, error) bool) {
	return func(yield func(Recording, error) bool) {
		rows, err := l.db.QueryContext(ctx, recordingsQuery)
		if err != nil {
			yield(Recording{}, fmt.Errorf("query recordings: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var (
				date     sql.NullFloat64
				duration sql.NullFloat64
				label    sql.NullString
				relPath  sql.NullString
			)
			if err := rows.Scan(&date, &duration, &label, &relPath); err != nil {
				yield(Recording{}, fmt.Errorf("scan recording: %w", err))
				return
			}
			rec := Recording{
				Date:     FromAppleTime(date.Float64),
				Duration: time.Duration(duration.Float64 * float64(time.Second)),
				Label:    strings.TrimSpace(label.String),
			}
			if p := strings.TrimSpace(relPath.String); p != "" {
				if filepath.IsAbs(p) {
					rec.Path = p
				} else {
					rec.Path = filepath.Join(l.dir, p)
				}
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(Recording{}, fmt.Errorf("iterate recordings: %w", err))
		}
	}
}

// FromAppleTime converts seconds since 2001-01-01 UTC to a time.Time.
func FromAppleTime(seconds float64) time.Time {
	whole, frac := math.Modf(seconds)
	return appleEpoch.Add(time.Duration(whole) * time.Second).Add(time.Duration(frac * float64(time.Second)))
}

// ToAppleTime converts t to seconds since 2001-01-01 UTC.
func ToAppleTime(t time.Time) float64 {
	return t.Sub(appleEpoch).Seconds()
}
