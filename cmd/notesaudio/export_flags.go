package main

import (
	"github.com/spf13/cobra"

	"notesaudio/internal/config"
)

type exportFlags struct {
	source    string
	dest      string
	from      string
	db        string
	verify    bool
	keepMtime bool
	dryRun    bool
	exclusive bool
	strict    bool
	noHistory bool
	quiet     bool
}

func (f *exportFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.source, "source", "", "Glob pattern for notes media directories")
	flags.StringVar(&f.dest, "dest", "", "Directory that receives exported files")
	flags.StringVar(&f.from, "from", "", "Recording source: notes or voicememos")
	flags.StringVar(&f.db, "db", "", "Voice Memos library database (with --from voicememos)")
	flags.BoolVar(&f.verify, "verify", false, "Re-read each copy and compare checksums")
	flags.BoolVar(&f.keepMtime, "keep-mtime", false, "Stamp copies with the recording time")
	flags.BoolVar(&f.dryRun, "dry-run", false, "List planned exports without copying")
	flags.BoolVar(&f.exclusive, "exclusive", false, "Fail if another export holds the state lock")
	flags.BoolVar(&f.strict, "strict", false, "Exit nonzero when any file fails to export")
	flags.BoolVar(&f.noHistory, "no-history", false, "Do not record exports in the history ledger")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "Print only the summary line")
}

// apply copies explicitly set flags onto cfg, then re-normalizes and validates it.
func (f *exportFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Paths.SourcePattern = f.source
	}
	if flags.Changed("dest") {
		cfg.Paths.DestinationDir = f.dest
	}
	if flags.Changed("from") {
		cfg.Export.Source = f.from
	}
	if flags.Changed("db") {
		cfg.Paths.VoiceMemosDB = f.db
	}
	if flags.Changed("verify") {
		cfg.Export.Verify = f.verify
	}
	if flags.Changed("keep-mtime") {
		cfg.Export.PreserveModTime = f.keepMtime
	}
	if flags.Changed("exclusive") {
		cfg.Export.Exclusive = f.exclusive
	}
	if flags.Changed("strict") {
		cfg.Export.Strict = f.strict
	}
	if f.noHistory {
		cfg.History.Enabled = false
	}
	if err := cfg.Normalize(); err != nil {
		return err
	}
	return cfg.Validate()
}
