package config

const (
	defaultLibraryRoot      = "~/roms"
	defaultLogDir           = "~/.local/share/romdat/logs"
	defaultJournalPath      = "~/.local/share/romdat/journal.db"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 30
	defaultThreshold        = 0.85
	defaultDiscPolicy       = DiscPolicyPerDisc
	defaultKeep             = KeepPrompt
	defaultArtDirection     = ArtToROM

	defaultGamesFolder      = "{console} games"
	defaultReferencesFolder = "{console} plain text names"
	defaultArtFolder        = "{console} cover art"
	defaultRenamedArtFolder = "renamed cover art"
	defaultRemovedFolder    = "Removed games"
	defaultUnmatchedFolder  = "unmatched games"
)

// Disc grouping policies for duplicate detection.
const (
	DiscPolicyPerDisc = "per_disc"
	DiscPolicyMerge   = "merge"
	DiscPolicyExclude = "exclude"
)

// Keep rules for duplicate resolution.
const (
	KeepPrompt = "prompt"
	KeepAll    = "all"
	KeepFirst  = "first"
)

// Art pairing directions.
const (
	ArtToROM = "art_to_rom"
	ROMToArt = "rom_to_art"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryRoot: defaultLibraryRoot,
			LogDir:      defaultLogDir,
		},
		Matching: Matching{
			Threshold: defaultThreshold,
		},
		Dedupe: Dedupe{
			DiscPolicy: defaultDiscPolicy,
			Keep:       defaultKeep,
		},
		Art: Art{
			Direction: defaultArtDirection,
			FanOut:    true,
		},
		Folders: Folders{
			Games:      defaultGamesFolder,
			References: defaultReferencesFolder,
			Art:        defaultArtFolder,
			RenamedArt: defaultRenamedArtFolder,
			Removed:    defaultRemovedFolder,
			Unmatched:  defaultUnmatchedFolder,
		},
		Journal: Journal{
			Path: defaultJournalPath,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
