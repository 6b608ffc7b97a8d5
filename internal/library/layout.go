package library

import (
	"fmt"
	"os"
)

// Layout names every directory a console library run touches.
type Layout struct {
	Games      string `json:"games"`
	References string `json:"references"`
	Manifest   string `json:"manifest,omitempty"`
	Art        string `json:"art"`
	RenamedArt string `json:"renamed_art"`
	Removed    string `json:"removed"`
	Unmatched  string `json:"unmatched"`
}

// EnsureOutputs creates the directories the pipeline writes into.
func (l Layout) EnsureOutputs() error {
	for _, dir := range []string{l.RenamedArt, l.Removed, l.Unmatched} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LoadReferences reads the manifest when one is configured, otherwise the
// reference directory.
func (l Layout) LoadReferences() ([]Reference, error) {
	if l.Manifest != "" {
		return LoadManifest(l.Manifest)
	}
	return ListReferences(l.References)
}
