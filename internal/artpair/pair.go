package artpair

import (
	"fmt"
	"sort"
	"strings"

	"romdat/internal/library"
	"romdat/internal/match"
	"romdat/internal/title"
)

// Direction selects which side of the pairing is the match source.
type Direction string

const (
	// ArtToROM matches each image name against the ROM titles.
	ArtToROM Direction = "art_to_rom"
	// ROMToArt matches each ROM title against the image names.
	ROMToArt Direction = "rom_to_art"
)

// ParseDirection maps a configuration value to a Direction.
func ParseDirection(value string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(value))) {
	case "", ArtToROM:
		return ArtToROM, nil
	case ROMToArt:
		return ROMToArt, nil
	default:
		return "", fmt.Errorf("unknown art direction %q", value)
	}
}

// Options configures Pair.
type Options struct {
	Direction Direction
	FanOut    bool
	Matcher   *match.Matcher
}

// Entry copies one image to one target name.
type Entry struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Title  string  `json:"title"`
	Score  float64 `json:"score"`
}

// Plan is the outcome of pairing: what to copy, and what found no partner.
type Plan struct {
	Entries []Entry `json:"entries"`
	// Unpaired lists image paths (art_to_rom) or ROM titles (rom_to_art)
	// for which no confident match was found.
	Unpaired []string `json:"unpaired,omitempty"`
}

type titleGroup struct {
	title   string
	members []library.Item
}

// Pair builds the copy plan for roms and assets. Targets are unique: when
// two images resolve to the same target, the first one in source order wins.
func Pair(roms []library.Item, assets []library.Asset, opts Options) Plan {
	matcher := opts.Matcher
	if matcher == nil {
		matcher = match.New(match.Options{})
	}
	groups := groupByTitle(roms)
	plan := Plan{Entries: []Entry{}}
	claimed := map[string]struct{}{}

	add := func(asset library.Asset, g *titleGroup, score float64) {
		for _, target := range targets(g, asset, opts.FanOut) {
			if _, taken := claimed[target]; taken {
				continue
			}
			claimed[target] = struct{}{}
			plan.Entries = append(plan.Entries, Entry{Source: asset.Path, Target: target, Title: g.title, Score: score})
		}
	}

	switch opts.Direction {
	case ROMToArt:
		names := make([]string, len(assets))
		byName := map[string]int{}
		for i, a := range assets {
			names[i] = a.Title
			if _, ok := byName[a.Title]; !ok {
				byName[a.Title] = i
			}
		}
		pool := matcher.Pool(names)
		for i := range groups {
			c, ok := pool.BestScored(groups[i].title)
			if !ok {
				plan.Unpaired = append(plan.Unpaired, groups[i].title)
				continue
			}
			add(assets[byName[c.Candidate]], &groups[i], c.Score)
		}
	default:
		titles := make([]string, len(groups))
		byTitle := make(map[string]int, len(groups))
		for i, g := range groups {
			titles[i] = g.title
			byTitle[g.title] = i
		}
		pool := matcher.Pool(titles)
		for _, asset := range assets {
			c, ok := pool.BestScored(asset.Title)
			if !ok {
				plan.Unpaired = append(plan.Unpaired, asset.Path)
				continue
			}
			add(asset, &groups[byTitle[c.Candidate]], c.Score)
		}
	}
	return plan
}

func groupByTitle(roms []library.Item) []titleGroup {
	index := map[string]int{}
	var groups []titleGroup
	for _, item := range roms {
		if item.Title == "" {
			continue
		}
		i, ok := index[item.Title]
		if !ok {
			i = len(groups)
			index[item.Title] = i
			groups = append(groups, titleGroup{title: item.Title})
		}
		groups[i].members = append(groups[i].members, item)
	}
	return groups
}

// targets lists the art names one image produces for a title group. An
// image with its own disc tag only covers the members carrying that tag
// when there are any. Fan-out fills the gaps up to the highest plain
// "(Disc N)" member; side-qualified tags such as "(Disk 1 Side A)" never
// fan out.
func targets(g *titleGroup, asset library.Asset, fanOut bool) []string {
	members := g.members
	if asset.DiscTag != "" {
		var tagged []library.Item
		for _, m := range members {
			if strings.EqualFold(m.Tag, asset.DiscTag) {
				tagged = append(tagged, m)
			}
		}
		if len(tagged) > 0 {
			members = tagged
			fanOut = false
		}
	}

	seen := map[string]struct{}{}
	var out []string
	push := func(name string) {
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, m := range members {
		push(m.ArtName())
	}
	if !fanOut {
		return out
	}

	maxDisc, label := 0, ""
	var exts []string
	extSeen := map[string]struct{}{}
	for _, m := range members {
		if _, ok := extSeen[m.Ext]; !ok {
			extSeen[m.Ext] = struct{}{}
			exts = append(exts, m.Ext)
		}
		if !title.IsPlainDisc(m.Tag) {
			continue
		}
		if d, ok := title.ParseDisc(m.Tag); ok && d.Number > maxDisc {
			maxDisc, label = d.Number, d.Label
		}
	}
	sort.Strings(exts)
	for n := 1; n <= maxDisc; n++ {
		tag := title.Disc{Label: label, Number: n}.Tag()
		for _, ext := range exts {
			push(library.ArtName(title.WithTag(g.title, tag) + ext))
		}
	}
	return out
}
