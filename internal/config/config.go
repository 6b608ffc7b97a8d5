package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the library root and log location.
type Paths struct {
	LibraryRoot string `toml:"library_root"`
	LogDir      string `toml:"log_dir"`
}

// Matching tunes the normalizer and fuzzy matcher.
type Matching struct {
	Threshold              float64 `toml:"threshold"`
	PreserveHyphens        bool    `toml:"preserve_hyphens"`
	FoldAccents            bool    `toml:"fold_accents"`
	RequireNumberAgreement bool    `toml:"require_number_agreement"`
}

// Dedupe controls duplicate grouping and the default resolution rule.
type Dedupe struct {
	// DiscPolicy is one of per_disc, merge, exclude.
	DiscPolicy string `toml:"disc_policy"`
	// Keep is one of prompt, all, first.
	Keep string `toml:"keep"`
}

// Art controls cover-art pairing.
type Art struct {
	// Direction is art_to_rom or rom_to_art.
	Direction string `toml:"direction"`
	FanOut    bool   `toml:"fan_out"`
	// StripTags removes release tags from art basenames before pairing.
	StripTags bool `toml:"strip_tags"`
}

// Folders holds directory-name templates. {console} is replaced with the
// console profile name.
type Folders struct {
	Games      string `toml:"games"`
	References string `toml:"references"`
	Art        string `toml:"art"`
	RenamedArt string `toml:"renamed_art"`
	Removed    string `toml:"removed"`
	Unmatched  string `toml:"unmatched"`
}

// Overrides points at the literal rename rule table.
type Overrides struct {
	Path string `toml:"path"`
}

// Journal configures the optional SQLite record of applied operations.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for romdat.
//
// Configuration sections by subsystem:
//   - Paths: library root and log directory
//   - Matching: fuzzy threshold and clean-string variants
//   - Dedupe: disc grouping policy and default keep rule
//   - Art: pairing direction and multi-disc fan-out
//   - Folders: per-console directory names
//   - Overrides: literal rename table
//   - Journal: SQLite operation history
//   - Logging: log format, level, and retention
//   - Consoles: user console profiles layered over the built-ins
type Config struct {
	Paths     Paths     `toml:"paths"`
	Matching  Matching  `toml:"matching"`
	Dedupe    Dedupe    `toml:"dedupe"`
	Art       Art       `toml:"art"`
	Folders   Folders   `toml:"folders"`
	Overrides Overrides `toml:"overrides"`
	Journal   Journal   `toml:"journal"`
	Logging   Logging   `toml:"logging"`
	Consoles  []Console `toml:"consoles"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/romdat/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		data, err := os.ReadFile(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// resolveConfigPath picks the file Load reads. An explicit path is used even
// when it does not exist yet; otherwise the first existing default wins.
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		switch _, err := os.Stat(expanded); {
		case err == nil:
			return expanded, true, nil
		case errors.Is(err, fs.ErrNotExist):
			return expanded, false, nil
		default:
			return "", false, fmt.Errorf("stat config: %w", err)
		}
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("romdat.toml")
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{defaultPath, projectPath} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
	}
	return defaultPath, false, nil
}

// LockPath is the flock file guarding the library against concurrent runs.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.LibraryRoot, ".romdat.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
