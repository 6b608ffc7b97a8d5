package dedupe

import (
	"fmt"
	"sort"
	"strings"

	"romdat/internal/library"
)

// DiscPolicy controls how disc-tagged items take part in grouping.
type DiscPolicy string

const (
	// PerDisc keeps the protected tag in the key, so the same disc merges
	// across regions while Disc 1 and Disc 2 stay apart.
	PerDisc DiscPolicy = "per_disc"
	// Merge ignores protected tags; every disc of a title groups together.
	Merge DiscPolicy = "merge"
	// Exclude leaves tagged items out of grouping entirely.
	Exclude DiscPolicy = "exclude"
)

// ParseDiscPolicy maps a configuration value to a DiscPolicy.
func ParseDiscPolicy(value string) (DiscPolicy, error) {
	switch DiscPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", PerDisc:
		return PerDisc, nil
	case Merge:
		return Merge, nil
	case Exclude:
		return Exclude, nil
	default:
		return "", fmt.Errorf("unknown disc policy %q", value)
	}
}

// Member is one release inside a group: every file that shares a base
// name, such as a .cue sheet and its .bin track.
type Member struct {
	Base  string         `json:"base"`
	Files []library.Item `json:"files"`
}

// Label names the member for prompts: the file name, followed by the other
// extensions of a multi-file release.
func (m Member) Label() string {
	if len(m.Files) == 0 {
		return m.Base
	}
	var b strings.Builder
	b.WriteString(m.Files[0].Name)
	for _, f := range m.Files[1:] {
		b.WriteString(" + ")
		b.WriteString(f.Ext)
	}
	return b.String()
}

// Group is a set of two or more releases sharing a key.
type Group struct {
	Key     string   `json:"key"`
	Members []Member `json:"members"`
}

// Names returns member labels in group order.
func (g Group) Names() []string {
	names := make([]string, len(g.Members))
	for i, m := range g.Members {
		names[i] = m.Label()
	}
	return names
}

// FindDuplicates partitions items by normalized key and returns only the
// groups with more than one release, sorted by key. Files sharing a base
// name form a single member, so a .cue and its .bin are kept or archived
// together. Members keep their input order. Items whose key is empty are
// never grouped.
func FindDuplicates(items []library.Item, policy DiscPolicy) []Group {
	buckets := map[string]*Group{}
	var order []string

	for _, item := range items {
		key, ok := groupKey(item, policy)
		if !ok {
			continue
		}
		g, exists := buckets[key]
		if !exists {
			g = &Group{Key: key}
			buckets[key] = g
			order = append(order, key)
		}
		g.add(item)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		if g := buckets[key]; len(g.Members) > 1 {
			groups = append(groups, *g)
		}
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}

func (g *Group) add(item library.Item) {
	for i := range g.Members {
		if g.Members[i].Base == item.Base {
			g.Members[i].Files = append(g.Members[i].Files, item)
			return
		}
	}
	g.Members = append(g.Members, Member{Base: item.Base, Files: []library.Item{item}})
}

func groupKey(item library.Item, policy DiscPolicy) (string, bool) {
	if item.Title == "" {
		return "", false
	}
	switch policy {
	case Merge:
		return item.Title, true
	case Exclude:
		if item.Tag != "" {
			return "", false
		}
		return item.Key, true
	default:
		return item.Key, item.Key != ""
	}
}
