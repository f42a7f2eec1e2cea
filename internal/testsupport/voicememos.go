package testsupport

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"notesaudio/internal/voicememos"
)

// VoiceMemo is one ZCLOUDRECORDING fixture row. Label and Path accept nil to
// store SQL NULL.
type VoiceMemo struct {
	Date     time.Time
	Duration float64
	Label    any
	Path     any
}

// WriteVoiceMemosLibrary creates a CloudRecordings.db at path with the Core
// Data column layout used by the Voice Memos app.
func WriteVoiceMemosLibrary(t testing.TB, path string, memos []VoiceMemo) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE ZCLOUDRECORDING (
        Z_PK INTEGER PRIMARY KEY,
        ZDATE TIMESTAMP,
        ZDURATION FLOAT,
        ZCUSTOMLABEL VARCHAR,
        ZPATH VARCHAR
    )`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	for _, memo := range memos {
		if _, err := db.Exec(
			"INSERT INTO ZCLOUDRECORDING (ZDATE, ZDURATION, ZCUSTOMLABEL, ZPATH) VALUES (?, ?, ?, ?)",
			voicememos.ToAppleTime(memo.Date), memo.Duration, memo.Label, memo.Path,
		); err != nil {
			t.Fatalf("insert row: %v", err)
		}
	}
}
