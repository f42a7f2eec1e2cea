package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"notesaudio/internal/export"
)

// timeLayout keeps a fixed fraction width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Entry is one recorded export.
type Entry struct {
	ID              int64
	RunID           string
	ExportID        string
	SourcePath      string
	DestinationPath string
	ModifiedAt      time.Time
	ExportedAt      time.Time
	Bytes           int64
	SHA256          string
}

// Store manages the export ledger backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database and applies migrations.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("history path not set")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordExport appends a completed export. It satisfies export.Recorder.
func (s *Store) RecordExport(ctx context.Context, record export.Record) error {
	exportedAt := record.ExportedAt
	if exportedAt.IsZero() {
		exportedAt = time.Now()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO exports (
            run_id, export_id, source_path, destination_path,
            modified_at, exported_at, bytes, sha256
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.RunID,
		record.ID,
		record.Source,
		record.Destination,
		record.ModTime.UTC().Format(timeLayout),
		exportedAt.UTC().Format(timeLayout),
		record.Bytes,
		nullableString(record.SHA256),
	)
	if err != nil {
		return fmt.Errorf("insert export: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A limit <= 0 returns everything.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, run_id, export_id, source_path, destination_path,
        modified_at, exported_at, bytes, sha256
        FROM exports ORDER BY exported_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query exports: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exports: %w", err)
	}
	return entries, nil
}

// CountBySource returns how many times path has been exported.
func (s *Store) CountBySource(ctx context.Context, path string) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM exports WHERE source_path = ?", path).Scan(&count); err != nil {
		return 0, fmt.Errorf("count exports: %w", err)
	}
	return count, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		entry      Entry
		modifiedAt string
		exportedAt string
		digest     sql.NullString
	)
	if err := rows.Scan(
		&entry.ID,
		&entry.RunID,
		&entry.ExportID,
		&entry.SourcePath,
		&entry.DestinationPath,
		&modifiedAt,
		&exportedAt,
		&entry.Bytes,
		&digest,
	); err != nil {
		return Entry{}, fmt.Errorf("scan export: %w", err)
	}
	entry.ModifiedAt = parseTime(modifiedAt)
	entry.ExportedAt = parseTime(exportedAt)
	entry.SHA256 = digest.String
	return entry, nil
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
