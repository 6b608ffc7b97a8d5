package preflight

import (
	"path/filepath"

	"romdat/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes the checks for one console profile.
func RunAll(cfg *config.Config, profile config.Profile) []Result {
	if cfg == nil {
		return nil
	}
	layout := profile.Layout

	results := []Result{
		CheckDirectoryAccess("Library root", cfg.Paths.LibraryRoot),
		CheckDirectoryAccess("Games directory", layout.Games),
	}
	if layout.Manifest != "" {
		results = append(results, CheckFileReadable("Reference manifest", layout.Manifest))
	} else {
		results = append(results, CheckDirectoryReadable("Reference names", layout.References))
	}
	results = append(results,
		CheckDirectoryReadable("Cover art", layout.Art),
		CheckCreatable("Renamed cover art", layout.RenamedArt),
		CheckCreatable("Removed games", layout.Removed),
		CheckCreatable("Unmatched games", layout.Unmatched),
	)
	if cfg.Overrides.Path != "" {
		results = append(results, CheckFileReadable("Override table", cfg.Overrides.Path))
	}
	if cfg.Journal.Enabled {
		results = append(results, CheckCreatable("Journal directory", filepath.Dir(cfg.Journal.Path)))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

func parentDir(path string) string {
	parent := filepath.Dir(filepath.Clean(path))
	if parent == "" {
		return "."
	}
	return parent
}
