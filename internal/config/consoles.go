package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"romdat/internal/library"
	"romdat/internal/title"
)

// DefaultProtectedTags keep multi-part release markers through tag removal.
var DefaultProtectedTags = []string{
	`dis[ck]\s*\d+(\s+side\s+[a-z0-9]+)?`,
	`side\s+[a-z0-9]+`,
}

// Console is one console profile. Pointer fields override the global
// [matching] section when set.
type Console struct {
	Name              string   `toml:"name"`
	Extensions        []string `toml:"extensions"`
	ProtectedTags     []string `toml:"protected_tags"`
	ReferenceManifest string   `toml:"reference_manifest"`
	ArtDirection      string   `toml:"art_direction"`

	Threshold              *float64 `toml:"threshold"`
	PreserveHyphens        *bool    `toml:"preserve_hyphens"`
	FoldAccents            *bool    `toml:"fold_accents"`
	RequireNumberAgreement *bool    `toml:"require_number_agreement"`
}

// Profile is a console with every setting resolved against the config.
type Profile struct {
	Name          string
	Extensions    []string
	ProtectedTags []string
	Matching      Matching
	ArtDirection  string
	Layout        library.Layout
}

// TitleOptions returns the normalizer options for the profile.
func (p Profile) TitleOptions() title.Options {
	return title.Options{
		ProtectedPatterns: append([]string(nil), p.ProtectedTags...),
		PreserveHyphens:   p.Matching.PreserveHyphens,
		FoldAccents:       p.Matching.FoldAccents,
	}
}

func boolPtr(v bool) *bool { return &v }

var builtinConsoles = []Console{
	{Name: "a2600", Extensions: []string{".a26"}},
	{Name: "c64", Extensions: []string{".d64", ".t64", ".crt", ".prg"}, PreserveHyphens: boolPtr(true)},
	{Name: "colecovision", Extensions: []string{".col"}},
	{Name: "gamegear", Extensions: []string{".gg"}},
	{Name: "gba", Extensions: []string{".gba"}},
	{Name: "n64", Extensions: []string{".z64", ".n64", ".v64"}},
	{Name: "nes", Extensions: []string{".nes"}},
	{Name: "ps1", Extensions: []string{".bin", ".cue", ".chd"}, RequireNumberAgreement: boolPtr(true)},
	{Name: "segacd", Extensions: []string{".chd", ".cue", ".bin"}},
	{Name: "snes", Extensions: []string{".sfc", ".smc"}},
	{Name: "wonderswan", Extensions: []string{".ws", ".wsc"}},
}

// ConsoleNames lists every available profile name, sorted.
func (c *Config) ConsoleNames() []string {
	seen := map[string]struct{}{}
	for _, console := range builtinConsoles {
		seen[console.Name] = struct{}{}
	}
	for _, console := range c.Consoles {
		seen[console.Name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Console resolves the named profile. A user [[consoles]] entry replaces the
// built-in of the same name.
func (c *Config) Console(name string) (Profile, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Profile{}, fmt.Errorf("console name is required (available: %s)", strings.Join(c.ConsoleNames(), ", "))
	}
	var found *Console
	for i := range builtinConsoles {
		if builtinConsoles[i].Name == name {
			found = &builtinConsoles[i]
		}
	}
	for i := range c.Consoles {
		if c.Consoles[i].Name == name {
			found = &c.Consoles[i]
		}
	}
	if found == nil {
		return Profile{}, fmt.Errorf("unknown console %q (available: %s)", name, strings.Join(c.ConsoleNames(), ", "))
	}
	return c.resolve(*found), nil
}

func (c *Config) resolve(console Console) Profile {
	matching := c.Matching
	if console.Threshold != nil {
		matching.Threshold = *console.Threshold
	}
	if console.PreserveHyphens != nil {
		matching.PreserveHyphens = *console.PreserveHyphens
	}
	if console.FoldAccents != nil {
		matching.FoldAccents = *console.FoldAccents
	}
	if console.RequireNumberAgreement != nil {
		matching.RequireNumberAgreement = *console.RequireNumberAgreement
	}

	tags := console.ProtectedTags
	if len(tags) == 0 {
		tags = DefaultProtectedTags
	}
	direction := console.ArtDirection
	if direction == "" {
		direction = c.Art.Direction
	}

	return Profile{
		Name:          console.Name,
		Extensions:    append([]string(nil), console.Extensions...),
		ProtectedTags: append([]string(nil), tags...),
		Matching:      matching,
		ArtDirection:  direction,
		Layout:        c.layout(console),
	}
}

func (c *Config) layout(console Console) library.Layout {
	root := c.Paths.LibraryRoot
	dir := func(template string) string {
		return filepath.Join(root, strings.ReplaceAll(template, "{console}", console.Name))
	}
	layout := library.Layout{
		Games:      dir(c.Folders.Games),
		References: dir(c.Folders.References),
		Art:        dir(c.Folders.Art),
		RenamedArt: dir(c.Folders.RenamedArt),
		Removed:    dir(c.Folders.Removed),
		Unmatched:  dir(c.Folders.Unmatched),
	}
	if manifest := strings.TrimSpace(console.ReferenceManifest); manifest != "" {
		if !filepath.IsAbs(manifest) {
			manifest = filepath.Join(root, manifest)
		}
		layout.Manifest = manifest
	}
	return layout
}
