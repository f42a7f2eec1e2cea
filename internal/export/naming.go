package export

import (
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout renders the modification time at the front of every export name.
const TimestampLayout = "2006-01-02_15-04-05"

// DestinationName builds "{timestamp}_{id}.{extension}". An empty extension
// drops the trailing dot.
func DestinationName(modTime time.Time, id, extension string) string {
	name := modTime.Format(TimestampLayout) + "_" + id
	if extension == "" {
		return name
	}
	return name + "." + extension
}

// Extension returns the text after the final "." of the base name, or "" when
// there is none.
func Extension(path string) string {
	base := filepath.Base(path)
	idx := strings.LastIndexByte(base, '.')
	if idx < 0 {
		return ""
	}
	return base[idx+1:]
}
