// Package export copies discovered recordings into the destination directory.
//
// An Exporter ensures the destination exists, then walks a source.Seq one file
// at a time. Every copy gets a fresh name built from the recording timestamp
// and a random UUID, so repeated runs never overwrite earlier exports. Per-file
// failures are collected in Result.Errors and never stop the batch; only a
// destination that cannot be created aborts the run.
package export
