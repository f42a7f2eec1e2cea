// Package history keeps a SQLite ledger of completed exports.
//
// Each successful copy becomes one row holding the source, the generated
// destination, size, and SHA-256. The ledger is informational: the exporter
// never consults it to skip files, so every run still copies every source.
package history
