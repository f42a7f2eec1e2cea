// Package config loads, normalizes, and validates notesaudio configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the NOTESAUDIO_DEST environment
// override. Paths are folded to Unicode NFC so destination names containing
// non-ASCII characters compare reliably against macOS directory listings.
//
// Always obtain settings through this package so the exporter and CLI receive
// absolute paths, canonical log formats, and clear validation errors.
package config
