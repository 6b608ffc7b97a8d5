package library

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"romdat/internal/stage"
	"romdat/internal/title"
)

// DefaultArtExtensions are the image types discovered as cover art.
var DefaultArtExtensions = []string{".png", ".jpg", ".jpeg"}

// ListItems returns the files in dir whose extension is one of exts, in
// name order.
func ListItems(dir string, exts []string, n *title.Normalizer) ([]Item, error) {
	entries, err := readDir(dir)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || hidden(entry.Name()) || !hasExt(entry.Name(), exts) {
			continue
		}
		items = append(items, NewItem(dir, entry.Name(), n))
	}
	if len(items) == 0 {
		return nil, stage.Wrap(stage.ErrEmptyInput, "", "list items",
			fmt.Sprintf("no %s files in %s", strings.Join(exts, "/"), dir), nil)
	}
	return items, nil
}

// ListReferences returns one Reference per regular file in dir, titled by the
// file's basename without extension.
func ListReferences(dir string) ([]Reference, error) {
	entries, err := readDir(dir)
	if err != nil {
		return nil, err
	}
	refs := make([]Reference, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || hidden(entry.Name()) {
			continue
		}
		base, _ := title.SplitExt(entry.Name())
		if base = strings.TrimSpace(base); base != "" {
			refs = append(refs, Reference{Title: base})
		}
	}
	if len(refs) == 0 {
		return nil, stage.Wrap(stage.ErrEmptyInput, "", "list references", "no reference names in "+dir, nil)
	}
	return refs, nil
}

// LoadManifest reads line-delimited titles from path. Blank lines and lines
// starting with '#' are skipped.
func LoadManifest(path string) ([]Reference, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, stage.Wrap(stage.ErrMissingDirectory, "", "load manifest", path+" does not exist", nil)
		}
		return nil, stage.Wrap(stage.ErrFilesystem, "", "load manifest", path, err)
	}
	defer file.Close()

	var refs []Reference
	scanner := bufio.NewScanner(file)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		refs = append(refs, Reference{Title: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, stage.Wrap(stage.ErrFilesystem, "", "load manifest", path, err)
	}
	if len(refs) == 0 {
		return nil, stage.Wrap(stage.ErrEmptyInput, "", "load manifest", "no titles in "+path, nil)
	}
	return refs, nil
}

// ListArt walks dir recursively for images with one of exts. Results are
// sorted by path.
func ListArt(dir string, exts []string, n *title.Normalizer) ([]Asset, error) {
	if len(exts) == 0 {
		exts = DefaultArtExtensions
	}
	if err := requireDir(dir); err != nil {
		return nil, err
	}
	var assets []Asset
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && hidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden(d.Name()) || !hasExt(d.Name(), exts) {
			return nil
		}
		res := n.Normalize(d.Name())
		assets = append(assets, Asset{Path: path, Title: res.Base, DiscTag: res.Tag})
		return nil
	})
	if err != nil {
		return nil, stage.Wrap(stage.ErrFilesystem, "", "list art", dir, err)
	}
	if len(assets) == 0 {
		return nil, stage.Wrap(stage.ErrEmptyInput, "", "list art", "no images in "+dir, nil)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Path < assets[j].Path })
	return assets, nil
}

// ListNames returns the names of the regular files in dir that end with
// suffix. A missing directory yields an empty set.
func ListNames(dir, suffix string) (map[string]struct{}, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]struct{}{}, nil
		}
		return nil, stage.Wrap(stage.ErrFilesystem, "", "list names", dir, err)
	}
	names := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), strings.ToLower(suffix)) {
			continue
		}
		names[entry.Name()] = struct{}{}
	}
	return names, nil
}

func readDir(dir string) ([]os.DirEntry, error) {
	if err := requireDir(dir); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, stage.Wrap(stage.ErrFilesystem, "", "read directory", dir, err)
	}
	return entries, nil
}

func requireDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return stage.Wrap(stage.ErrMissingDirectory, "", "stat", dir+" does not exist", nil)
		}
		return stage.Wrap(stage.ErrFilesystem, "", "stat", dir, err)
	}
	if !info.IsDir() {
		return stage.Wrap(stage.ErrMissingDirectory, "", "stat", dir+" is not a directory", nil)
	}
	return nil
}
