package config

const (
	defaultSourcePattern  = "~/Library/Group Containers/group.com.apple.notes/Accounts/*/Media"
	defaultDestinationDir = "~/Library/CloudStorage/OneDrive-个人/NotesAudioExports"
	defaultStateDir       = "~/.local/share/notesaudio"
	defaultExtension      = ".m4a"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"

	// destinationEnv overrides paths.destination_dir when set.
	destinationEnv = "NOTESAUDIO_DEST"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourcePattern:  defaultSourcePattern,
			DestinationDir: defaultDestinationDir,
			StateDir:       defaultStateDir,
		},
		Export: Export{
			Source:     SourceNotes,
			Extensions: []string{defaultExtension},
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// VoiceMemosDatabaseCandidates lists the known Voice Memos library locations, newest layout first.
func VoiceMemosDatabaseCandidates() []string {
	return []string{
		"~/Library/Group Containers/group.com.apple.VoiceMemos.shared/Recordings/CloudRecordings.db",
		"~/Library/Containers/com.apple.VoiceMemos/Data/Library/Application Support/com.apple.voicememos/Recordings/CloudRecordings.db",
		"~/Library/Application Support/com.apple.voicememos/Recordings/CloudRecordings.db",
	}
}
