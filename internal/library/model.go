package library

import (
	"path/filepath"
	"strings"

	"romdat/internal/title"
)

// Item is one ROM file in a library directory. Derived fields come from the
// normalizer and are never persisted.
type Item struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Base  string `json:"base"`
	Ext   string `json:"ext"`
	Title string `json:"title"`
	Key   string `json:"key"`
	Tag   string `json:"tag,omitempty"`
	Clean string `json:"clean"`
}

// NewItem derives an Item for the file name inside dir.
func NewItem(dir, name string, n *title.Normalizer) Item {
	res := n.Normalize(name)
	return Item{
		Name:  name,
		Path:  filepath.Join(dir, name),
		Base:  res.Base,
		Ext:   res.Ext,
		Title: res.Title,
		Key:   res.Key,
		Tag:   res.Tag,
		Clean: res.Clean,
	}
}

// ArtName is the cover-art filename the frontend expects for this item.
func (i Item) ArtName() string {
	return ArtName(i.Name)
}

// ArtName appends the art suffix to a ROM filename: "Pitfall.nes" becomes
// "Pitfall.nes.png".
func ArtName(romName string) string {
	return romName + ArtSuffix
}

// ArtSuffix is appended to ROM filenames to name their cover art.
const ArtSuffix = ".png"

// Reference is a canonical title from the reference list.
type Reference struct {
	Title string `json:"title"`
}

// Titles flattens refs into their canonical title strings.
func Titles(refs []Reference) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Title)
	}
	return out
}

// Asset is a cover-art image.
type Asset struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	DiscTag string `json:"disc_tag,omitempty"`
}

// Name returns the asset's file name.
func (a Asset) Name() string {
	return filepath.Base(a.Path)
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
