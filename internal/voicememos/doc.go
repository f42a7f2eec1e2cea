// Package voicememos reads the Voice Memos library database.
//
// The library is a Core Data SQLite store (CloudRecordings.db). Only the
// ZCLOUDRECORDING table is read, and always through a read-only connection,
// so the application's own data is never modified. Recordings are exposed as
// a source.Seq so the exporter treats them like any other discovered file,
// with the recording date taking the place of the file modification time.
package voicememos
