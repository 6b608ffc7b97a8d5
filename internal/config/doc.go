// Package config loads, normalizes, and validates romdat configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and merges user console profiles over the
// built-in table. The Config type centralizes every knob the CLI and the
// pipeline need: where the library lives, how names are matched, how
// duplicates are grouped and resolved, and what the per-console folders are
// called.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
