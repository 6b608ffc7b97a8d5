package artpair_test

import (
	"context"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"romdat/internal/artpair"
	"romdat/internal/config"
	"romdat/internal/library"
	"romdat/internal/match"
	"romdat/internal/testsupport"
	"romdat/internal/title"
)

var normalizer = title.MustNew(title.Options{ProtectedPatterns: config.DefaultProtectedTags})

func roms(names ...string) []library.Item {
	out := make([]library.Item, len(names))
	for i, name := range names {
		out[i] = library.NewItem("/games", name, normalizer)
	}
	return out
}

func assets(paths ...string) []library.Asset {
	out := make([]library.Asset, len(paths))
	for i, p := range paths {
		res := normalizer.Normalize(filepath.Base(p))
		out[i] = library.Asset{Path: p, Title: res.Base, DiscTag: res.Tag}
	}
	return out
}

func targets(plan artpair.Plan) []string {
	out := make([]string, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		out = append(out, e.Target)
	}
	sort.Strings(out)
	return out
}

func options(dir artpair.Direction, fanOut bool) artpair.Options {
	return artpair.Options{Direction: dir, FanOut: fanOut, Matcher: match.New(match.Options{Cleaner: normalizer})}
}

func TestPairNamesArtAfterROMFile(t *testing.T) {
	plan := artpair.Pair(roms("Pitfall.nes", "Frogger.nes"), assets("/art/pitfall.png", "/art/Unrelated Thing.jpg"), options(artpair.ArtToROM, true))
	if got := targets(plan); !reflect.DeepEqual(got, []string{"Pitfall.nes.png"}) {
		t.Fatalf("targets got %v", got)
	}
	if !reflect.DeepEqual(plan.Unpaired, []string{"/art/Unrelated Thing.jpg"}) {
		t.Fatalf("unpaired got %v", plan.Unpaired)
	}
}

func TestPairFansOutDiscs(t *testing.T) {
	items := roms(
		"Wing Commander III (Disc 1).bin",
		"Wing Commander III (Disc 2).bin",
		"Wing Commander III (Disc 4).bin",
	)
	want := []string{
		"Wing Commander III (Disc 1).bin.png",
		"Wing Commander III (Disc 2).bin.png",
		"Wing Commander III (Disc 3).bin.png",
		"Wing Commander III (Disc 4).bin.png",
	}
	for _, dir := range []artpair.Direction{artpair.ArtToROM, artpair.ROMToArt} {
		t.Run(string(dir), func(t *testing.T) {
			plan := artpair.Pair(items, assets("/art/Wing Commander III.png"), options(dir, true))
			if got := targets(plan); !reflect.DeepEqual(got, want) {
				t.Fatalf("targets got %v want %v", got, want)
			}
			for _, e := range plan.Entries {
				if e.Source != "/art/Wing Commander III.png" {
					t.Fatalf("every copy should come from the one image, got %q", e.Source)
				}
			}
		})
	}

	plan := artpair.Pair(items, assets("/art/Wing Commander III.png"), options(artpair.ArtToROM, false))
	if got := targets(plan); len(got) != 3 {
		t.Fatalf("without fan-out expected one target per file, got %v", got)
	}
}

func TestPairDoesNotFanOutSideTags(t *testing.T) {
	items := roms(
		"Summer Games (Disk 1 Side A).d64",
		"Summer Games (Disk 1 Side B).d64",
		"Summer Games (Disk 2 Side A).d64",
	)
	plan := artpair.Pair(items, assets("/art/Summer Games.png"), options(artpair.ArtToROM, true))
	want := []string{
		"Summer Games (Disk 1 Side A).d64.png",
		"Summer Games (Disk 1 Side B).d64.png",
		"Summer Games (Disk 2 Side A).d64.png",
	}
	if got := targets(plan); !reflect.DeepEqual(got, want) {
		t.Fatalf("targets got %v want %v", got, want)
	}
}

func TestPairDiscSpecificArt(t *testing.T) {
	items := roms("Myst (Disc 1).cue", "Myst (Disc 2).cue")
	plan := artpair.Pair(items, assets("/art/Myst (Disc 2).png", "/art/Myst.png"), options(artpair.ArtToROM, true))
	byTarget := map[string]string{}
	for _, e := range plan.Entries {
		byTarget[e.Target] = filepath.Base(e.Source)
	}
	want := map[string]string{
		"Myst (Disc 2).cue.png": "Myst (Disc 2).png",
		"Myst (Disc 1).cue.png": "Myst.png",
	}
	if !reflect.DeepEqual(byTarget, want) {
		t.Fatalf("targets got %v want %v", byTarget, want)
	}
}

func TestApplyCopiesWithoutOverwrite(t *testing.T) {
	root := t.TempDir()
	artDir := filepath.Join(root, "nes cover art")
	out := filepath.Join(root, "renamed cover art")
	testsupport.Touch(t, artDir, "pitfall.png", "frogger.png")
	testsupport.WriteText(t, filepath.Join(out, "Frogger.nes.png"), "keep me")

	listed, err := library.ListArt(artDir, nil, normalizer)
	if err != nil {
		t.Fatal(err)
	}
	plan := artpair.Pair(roms("Pitfall.nes", "Frogger.nes"), listed, options(artpair.ArtToROM, true))
	report, err := artpair.Apply(context.Background(), plan, out, nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if got := testsupport.ListDir(t, out); !reflect.DeepEqual(got, []string{"Frogger.nes.png", "Pitfall.nes.png"}) {
		t.Fatalf("output got %v", got)
	}
	if testsupport.ReadText(t, filepath.Join(out, "Frogger.nes.png")) != "keep me" {
		t.Fatal("existing art was overwritten")
	}
	if testsupport.ReadText(t, filepath.Join(out, "Pitfall.nes.png")) != "pitfall.png" {
		t.Fatal("copied art has wrong content")
	}
	if len(report.Applied) != 1 || len(report.Skipped) != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if got := testsupport.ListDir(t, artDir); len(got) != 2 {
		t.Fatalf("source art must remain, got %v", got)
	}
}
