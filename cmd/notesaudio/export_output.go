package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"notesaudio/internal/export"
)

const (
	recordedLayout = "2006-01-02 15:04:05"
	sourceColWidth = 48
)

func exportRows(result export.Result) [][]string {
	status := "Exported"
	if result.DryRun {
		status = "Planned"
	}

	rows := make([][]string, 0, len(result.Records)+len(result.Errors))
	for _, record := range result.Records {
		size := "-"
		if !result.DryRun {
			size = humanize.Bytes(uint64(record.Bytes))
		}
		rows = append(rows, []string{
			record.ModTime.Local().Format(recordedLayout),
			shortenPath(record.Source, sourceColWidth),
			filepath.Base(record.Destination),
			size,
			status,
		})
	}
	for _, err := range result.Errors {
		var copyErr *export.FileCopyError
		src := "-"
		if errors.As(err, &copyErr) {
			src = shortenPath(copyErr.Source, sourceColWidth)
		}
		rows = append(rows, []string{"-", src, "-", "-", "Failed"})
	}
	return rows
}

// shortenPath keeps the tail of long paths, where the distinguishing file name lives.
func shortenPath(path string, width int) string {
	runes := []rune(path)
	if width <= 3 || len(runes) <= width {
		return path
	}
	return "..." + string(runes[len(runes)-(width-3):])
}

func renderExportSummary(result export.Result, dest string, colorize bool) string {
	var b strings.Builder
	kind := statusOK
	if result.DryRun {
		fmt.Fprintf(&b, "Dry run: %d file(s) would be exported to %s", len(result.Records), dest)
		kind = statusInfo
	} else {
		fmt.Fprintf(&b, "Exported %d file(s) to %s", result.Copied, dest)
	}
	if n := len(result.Errors); n > 0 {
		fmt.Fprintf(&b, ", %d failed", n)
		kind = statusError
	}
	if n := len(result.Warnings); n > 0 {
		fmt.Fprintf(&b, ", %d warning(s)", n)
		if kind == statusOK {
			kind = statusWarn
		}
	}
	line := b.String()
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + line + ansiReset
		}
	}
	return line
}
