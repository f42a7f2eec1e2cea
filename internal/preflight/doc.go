// Package preflight provides readiness checks for the filesystem paths an
// export depends on.
//
// The CLI "notesaudio check" command runs them to show whether the
// destination can be created, whether the source currently matches anything,
// and whether the state directory is usable. Export runs do not call them:
// the exporter reports the same conditions through its own errors.
package preflight
