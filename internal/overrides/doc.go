// Package overrides applies a user-maintained table of literal renames.
//
// Some titles never fuzzy-match their canonical name ("SMB3" will not score
// against "Super Mario Bros. 3"). A Catalog loads rules from JSON, TOML, or
// YAML, picked by file extension, and reloads when the file changes. Apply
// runs before fuzzy matching and returns the names it produced so the rename
// orchestrator leaves them alone.
package overrides
