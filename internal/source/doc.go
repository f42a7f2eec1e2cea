// Package source discovers recordings to export.
//
// Discovery is exposed as a lazy iter.Seq2 so the exporter can start copying
// before the whole tree has been listed. Problems with parts of the tree are
// yielded as *EnumerationError values alongside the files and never stop the
// walk on their own.
package source
