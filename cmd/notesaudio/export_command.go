package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"notesaudio/internal/config"
	"notesaudio/internal/export"
	"notesaudio/internal/history"
	"notesaudio/internal/logging"
	"notesaudio/internal/source"
	"notesaudio/internal/voicememos"
)

var errExportFailures = errors.New("one or more files failed to export")

func runExport(cmd *cobra.Command, ctx *commandContext, flags *exportFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if err := flags.apply(cmd, cfg); err != nil {
		return err
	}

	logger, err := ctx.logger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	if cfg.Export.Exclusive {
		unlock, err := acquireExportLock(cfg)
		if err != nil {
			return err
		}
		defer unlock()
	}

	files, closeSource, err := openSource(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	options := []export.Option{export.WithLogger(logger)}
	if cfg.History.Enabled && !flags.dryRun {
		if store := openHistory(cfg, logger); store != nil {
			defer store.Close()
			options = append(options, export.WithRecorder(store))
		}
	}

	exporter := export.New(export.Options{
		DestinationDir:  cfg.Paths.DestinationDir,
		Verify:          cfg.Export.Verify,
		PreserveModTime: cfg.Export.PreserveModTime,
		DryRun:          flags.dryRun,
	}, options...)

	result, runErr := exporter.Run(cmd.Context(), files)
	var dirErr *export.DirectoryCreationError
	if errors.As(runErr, &dirErr) {
		return runErr
	}

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	if !flags.quiet {
		printExportTable(out, result)
	}
	fmt.Fprintln(out, renderExportSummary(result, cfg.Paths.DestinationDir, colorize))

	if runErr != nil {
		return runErr
	}
	if cfg.Export.Strict && len(result.Errors) > 0 {
		return fmt.Errorf("%w (%d of %d)", errExportFailures, len(result.Errors), len(result.Errors)+len(result.Records))
	}
	return nil
}

// openSource returns the recording sequence for the configured source. A Voice
// Memos library that cannot be opened is fatal.
func openSource(cmd *cobra.Command, cfg *config.Config) (source.Seq, func(), error) {
	if cfg.Export.Source != config.SourceVoiceMemos {
		return source.Walk(cfg.Paths.SourcePattern, cfg.Export.Extensions), func() {}, nil
	}
	lib, err := voicememos.Open(cfg.Paths.VoiceMemosDB)
	if err != nil {
		return nil, nil, fmt.Errorf("open voice memos library: %w", err)
	}
	return lib.Files(cmd.Context()), func() { _ = lib.Close() }, nil
}

// openHistory opens the ledger. Failures are logged and the run continues
// without recording history.
func openHistory(cfg *config.Config, logger *slog.Logger) *history.Store {
	if err := cfg.EnsureStateDir(); err != nil {
		logger.Warn("history disabled", logging.Error(err))
		return nil
	}
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		logger.Warn("history disabled",
			logging.String("path", cfg.HistoryPath()),
			logging.Error(err),
		)
		return nil
	}
	return store
}

func acquireExportLock(cfg *config.Config) (func(), error) {
	if err := cfg.EnsureStateDir(); err != nil {
		return nil, err
	}
	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire export lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another notesaudio export is running (lock: %s)", cfg.LockPath())
	}
	return func() { _ = lock.Unlock() }, nil
}

func printExportTable(out io.Writer, result export.Result) {
	rows := exportRows(result)
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Recorded", "Source", "Export", "Size", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	))
}
