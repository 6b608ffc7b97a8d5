package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeDedupe()
	c.normalizeArt()
	c.normalizeFolders()
	c.normalizeConsoles()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LibraryRoot, err = expandPath(c.Paths.LibraryRoot); err != nil {
		return fmt.Errorf("paths.library_root: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Overrides.Path, err = expandPath(strings.TrimSpace(c.Overrides.Path)); err != nil {
		return fmt.Errorf("overrides.path: %w", err)
	}
	if strings.TrimSpace(c.Journal.Path) == "" {
		c.Journal.Path = defaultJournalPath
	}
	if c.Journal.Path, err = expandPath(c.Journal.Path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeMatching() {
	if c.Matching.Threshold == 0 {
		c.Matching.Threshold = defaultThreshold
	}
}

func (c *Config) normalizeDedupe() {
	c.Dedupe.DiscPolicy = lowerOr(c.Dedupe.DiscPolicy, defaultDiscPolicy)
	c.Dedupe.Keep = lowerOr(c.Dedupe.Keep, defaultKeep)
}

func (c *Config) normalizeArt() {
	c.Art.Direction = lowerOr(c.Art.Direction, defaultArtDirection)
}

func (c *Config) normalizeFolders() {
	f := &c.Folders
	f.Games = trimOr(f.Games, defaultGamesFolder)
	f.References = trimOr(f.References, defaultReferencesFolder)
	f.Art = trimOr(f.Art, defaultArtFolder)
	f.RenamedArt = trimOr(f.RenamedArt, defaultRenamedArtFolder)
	f.Removed = trimOr(f.Removed, defaultRemovedFolder)
	f.Unmatched = trimOr(f.Unmatched, defaultUnmatchedFolder)
}

func (c *Config) normalizeConsoles() {
	for i := range c.Consoles {
		console := &c.Consoles[i]
		console.Name = strings.ToLower(strings.TrimSpace(console.Name))
		console.ArtDirection = strings.ToLower(strings.TrimSpace(console.ArtDirection))
		exts := make([]string, 0, len(console.Extensions))
		for _, ext := range console.Extensions {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			exts = append(exts, ext)
		}
		console.Extensions = exts
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = lowerOr(c.Logging.Format, defaultLogFormat)
	c.Logging.Level = lowerOr(c.Logging.Level, defaultLogLevel)
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

func lowerOr(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	return value
}

func trimOr(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
