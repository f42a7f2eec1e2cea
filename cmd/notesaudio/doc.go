// Package main hosts the notesaudio CLI entrypoint and command graph.
//
// Running the binary with no subcommand performs an export: it discovers
// audio attachments in the notes media tree (or the Voice Memos library),
// copies each into the destination under a timestamp-and-UUID name, prints a
// table of results, and logs per-file failures to stderr. Subcommands cover
// preflight checks, the export history ledger, and configuration scaffolding.
//
// Keep this package lean: the export logic lives in internal/export and its
// sources; commands here only resolve configuration and render output.
package main
