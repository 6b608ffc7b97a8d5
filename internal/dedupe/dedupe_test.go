package dedupe_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"romdat/internal/config"
	"romdat/internal/decision"
	"romdat/internal/dedupe"
	"romdat/internal/library"
	"romdat/internal/stage"
	"romdat/internal/testsupport"
	"romdat/internal/title"
)

func items(names ...string) []library.Item {
	n := title.MustNew(title.Options{ProtectedPatterns: config.DefaultProtectedTags})
	out := make([]library.Item, len(names))
	for i, name := range names {
		out[i] = library.NewItem("/games", name, n)
	}
	return out
}

func TestFindDuplicatesGroupsRegionVariants(t *testing.T) {
	groups := dedupe.FindDuplicates(items("Pitfall (USA).nes", "Pitfall (Europe).nes", "Frogger.nes"), dedupe.PerDisc)
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d: %+v", len(groups), groups)
	}
	if groups[0].Key != "Pitfall" {
		t.Fatalf("group key got %q want %q", groups[0].Key, "Pitfall")
	}
	want := []string{"Pitfall (USA).nes", "Pitfall (Europe).nes"}
	if got := groups[0].Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("members got %v want %v", got, want)
	}
}

func TestFindDuplicatesDiscPolicies(t *testing.T) {
	input := items(
		"Final Fantasy VII (USA) (Disc 1).bin",
		"Final Fantasy VII (Europe) (Disc 1).bin",
		"Final Fantasy VII (USA) (Disc 2).bin",
		"Final Fantasy VII (USA) (Disc 1).cue",
	)
	cases := []struct {
		policy dedupe.DiscPolicy
		want   map[string]int
	}{
		{dedupe.PerDisc, map[string]int{"Final Fantasy VII (Disc 1)": 2}},
		{dedupe.Merge, map[string]int{"Final Fantasy VII": 3}},
		{dedupe.Exclude, map[string]int{}},
	}
	for _, tc := range cases {
		t.Run(string(tc.policy), func(t *testing.T) {
			got := map[string]int{}
			for _, g := range dedupe.FindDuplicates(input, tc.policy) {
				got[g.Key] = len(g.Members)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("groups got %v want %v", got, tc.want)
			}
		})
	}
}

func TestFindDuplicatesKeepsMultiFileReleasesTogether(t *testing.T) {
	groups := dedupe.FindDuplicates(items(
		"Tekken (Europe).bin",
		"Tekken (Europe).cue",
		"Tekken (USA).bin",
		"Tekken (USA).cue",
		"Tekken 2 (USA).cue",
	), dedupe.PerDisc)
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d: %+v", len(groups), groups)
	}
	want := []string{"Tekken (Europe).bin + .cue", "Tekken (USA).bin + .cue"}
	if got := groups[0].Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("members got %v want %v", got, want)
	}
}

func TestFindDuplicatesIgnoresSingleReleaseWithSeveralFiles(t *testing.T) {
	if groups := dedupe.FindDuplicates(items("Tekken (USA).bin", "Tekken (USA).cue"), dedupe.PerDisc); len(groups) != 0 {
		t.Fatalf("expected no duplicates, got %+v", groups)
	}
}

func TestFindDuplicatesSkipsEmptyKeys(t *testing.T) {
	if groups := dedupe.FindDuplicates(items("(USA).nes", "[!].nes"), dedupe.PerDisc); len(groups) != 0 {
		t.Fatalf("expected malformed names to stay ungrouped, got %+v", groups)
	}
}

func TestFindDuplicatesSortedByKey(t *testing.T) {
	groups := dedupe.FindDuplicates(items("Zaxxon (USA).nes", "Zaxxon (Japan).nes", "Arkanoid (USA).nes", "Arkanoid (Japan).nes"), dedupe.PerDisc)
	if len(groups) != 2 || groups[0].Key != "Arkanoid" || groups[1].Key != "Zaxxon" {
		t.Fatalf("unexpected order %+v", groups)
	}
}

func TestResolveValidatesSelection(t *testing.T) {
	group := dedupe.FindDuplicates(items("A (USA).nes", "A (Japan).nes"), dedupe.PerDisc)[0]
	ctx := context.Background()

	got, err := dedupe.Resolve(ctx, group, dedupe.Interactive{Source: &decision.Scripted{Choices: [][]int{{1, 1}}}})
	if err != nil || !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("got %v err %v, want [1]", got, err)
	}

	for _, bad := range [][]int{{}, {2}, {-1}} {
		_, err := dedupe.Resolve(ctx, group, dedupe.Interactive{Source: &decision.Scripted{Choices: [][]int{bad}}})
		if !errors.Is(err, stage.ErrValidation) {
			t.Fatalf("selection %v: expected ErrValidation, got %v", bad, err)
		}
	}

	if got, _ := dedupe.Resolve(ctx, group, dedupe.KeepAll{}); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Fatalf("KeepAll got %v", got)
	}
}

func TestArchiveMovesLosers(t *testing.T) {
	root := t.TempDir()
	games := filepath.Join(root, "nes games")
	removed := filepath.Join(root, "Removed games")
	testsupport.Touch(t, games, "Pitfall (Europe).nes", "Pitfall (USA).nes", "Frogger.nes")
	testsupport.Touch(t, removed, "Tetris (Japan).nes")
	testsupport.Touch(t, games, "Tetris (Japan).nes", "Tetris (USA).nes")

	n := title.MustNew(title.Options{})
	listed, err := library.ListItems(games, []string{".nes"}, n)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	groups := dedupe.FindDuplicates(listed, dedupe.PerDisc)

	// Keep the USA release of each title: listing order puts (Europe) and (Japan) first.
	src := &decision.Scripted{Choices: [][]int{{1}, {1}}}
	report, err := dedupe.Archive(context.Background(), groups, dedupe.Interactive{Source: src}, removed, nil)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}

	if got := testsupport.ListDir(t, games); !reflect.DeepEqual(got, []string{"Frogger.nes", "Pitfall (USA).nes", "Tetris (Japan).nes", "Tetris (USA).nes"}) {
		t.Fatalf("games left %v", got)
	}
	if len(report.Applied) != 1 || filepath.Base(report.Applied[0].To) != "Pitfall (Europe).nes" {
		t.Fatalf("applied %+v", report.Applied)
	}
	if len(report.Skipped) != 1 || filepath.Base(report.Skipped[0].From) != "Tetris (Japan).nes" {
		t.Fatalf("expected archive collision skip, got %+v", report.Skipped)
	}
	if testsupport.ReadText(t, filepath.Join(removed, "Tetris (Japan).nes")) != "Tetris (Japan).nes" {
		t.Fatal("existing archive file must be unchanged")
	}
	if len(src.Prompts) != 2 {
		t.Fatalf("expected one prompt per group, got %v", src.Prompts)
	}
}

func TestArchiveMovesEveryFileOfARelease(t *testing.T) {
	root := t.TempDir()
	games := filepath.Join(root, "ps1 games")
	removed := filepath.Join(root, "Removed games")
	testsupport.Touch(t, games, "Tekken (Europe).bin", "Tekken (Europe).cue", "Tekken (USA).bin", "Tekken (USA).cue")

	n := title.MustNew(title.Options{ProtectedPatterns: config.DefaultProtectedTags})
	listed, err := library.ListItems(games, []string{".bin", ".cue"}, n)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	src := &decision.Scripted{Choices: [][]int{{1}, {0}}}
	report, err := dedupe.Archive(context.Background(), dedupe.FindDuplicates(listed, dedupe.PerDisc), dedupe.Interactive{Source: src}, removed, nil)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if len(src.Prompts) != 1 {
		t.Fatalf("expected one prompt per title, got %v", src.Prompts)
	}
	if got := testsupport.ListDir(t, games); !reflect.DeepEqual(got, []string{"Tekken (USA).bin", "Tekken (USA).cue"}) {
		t.Fatalf("games left %v", got)
	}
	if got := testsupport.ListDir(t, removed); !reflect.DeepEqual(got, []string{"Tekken (Europe).bin", "Tekken (Europe).cue"}) {
		t.Fatalf("archived %v", got)
	}
	if len(report.Applied) != 2 {
		t.Fatalf("applied %+v", report.Applied)
	}
}

func TestArchiveStopsOnCancelledContext(t *testing.T) {
	group := dedupe.FindDuplicates(items("A (USA).nes", "A (Japan).nes"), dedupe.PerDisc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := dedupe.Archive(ctx, group, dedupe.KeepFirst{}, t.TempDir(), nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPolicyFor(t *testing.T) {
	if _, err := dedupe.PolicyFor("last", nil); err == nil {
		t.Fatal("expected error for unknown keep rule")
	}
	p, err := dedupe.PolicyFor("first", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(dedupe.KeepFirst); !ok {
		t.Fatalf("got %T", p)
	}
}
