package config

import (
	"errors"
	"fmt"
	"strings"

	"romdat/internal/title"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := validateThreshold("matching.threshold", c.Matching.Threshold); err != nil {
		return err
	}
	if err := c.validateDedupe(); err != nil {
		return err
	}
	if err := validateDirection("art.direction", c.Art.Direction); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateConsoles()
}

func (c *Config) validatePaths() error {
	if c.Paths.LibraryRoot == "" {
		return errors.New("paths.library_root must be set")
	}
	return nil
}

func validateThreshold(field string, value float64) error {
	if value <= 0 || value >= 1 {
		return fmt.Errorf("%s must be between 0 and 1 (exclusive), got %v", field, value)
	}
	return nil
}

func (c *Config) validateDedupe() error {
	switch c.Dedupe.DiscPolicy {
	case DiscPolicyPerDisc, DiscPolicyMerge, DiscPolicyExclude:
	default:
		return fmt.Errorf("dedupe.disc_policy must be one of per_disc, merge, exclude, got %q", c.Dedupe.DiscPolicy)
	}
	switch c.Dedupe.Keep {
	case KeepPrompt, KeepAll, KeepFirst:
	default:
		return fmt.Errorf("dedupe.keep must be one of prompt, all, first, got %q", c.Dedupe.Keep)
	}
	return nil
}

func validateDirection(field, value string) error {
	switch value {
	case ArtToROM, ROMToArt:
		return nil
	default:
		return fmt.Errorf("%s must be art_to_rom or rom_to_art, got %q", field, value)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateConsoles() error {
	seen := map[string]struct{}{}
	for i, console := range c.Consoles {
		field := fmt.Sprintf("consoles[%d]", i)
		if console.Name == "" {
			return fmt.Errorf("%s.name must be set", field)
		}
		if strings.ContainsAny(console.Name, `/\`) {
			return fmt.Errorf("%s.name %q must not contain path separators", field, console.Name)
		}
		if _, dup := seen[console.Name]; dup {
			return fmt.Errorf("%s.name %q is defined more than once", field, console.Name)
		}
		seen[console.Name] = struct{}{}
		if len(console.Extensions) == 0 {
			return fmt.Errorf("%s.extensions must list at least one extension", field)
		}
		if console.Threshold != nil {
			if err := validateThreshold(field+".threshold", *console.Threshold); err != nil {
				return err
			}
		}
		if console.ArtDirection != "" {
			if err := validateDirection(field+".art_direction", console.ArtDirection); err != nil {
				return err
			}
		}
		if _, err := title.New(title.Options{ProtectedPatterns: console.ProtectedTags}); err != nil {
			return fmt.Errorf("%s.protected_tags: %w", field, err)
		}
	}
	return nil
}
