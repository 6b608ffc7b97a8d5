package title_test

import (
	"testing"

	"romdat/internal/title"
)

var discPatterns = []string{`Dis[ck] \d+`, `Dis[ck] \d+ Side [A-Z]`, `Side [A-Z]`}

func TestNormalizeStripsAnnotations(t *testing.T) {
	n := title.MustNew(title.Options{ProtectedPatterns: discPatterns})

	tests := []struct {
		raw   string
		key   string
		tag   string
		ext   string
		clean string
	}{
		{"Pitfall (USA).nes", "Pitfall", "", ".nes", "pitfall"},
		{"Foo (Disc 2).cue", "Foo (Disc 2)", "(Disc 2)", ".cue", "foo"},
		{"Foo (USA) (Disc 2) (Rev 1).bin", "Foo (Disc 2)", "(Disc 2)", ".bin", "foo"},
		{"Super Mario Bros. 3 (USA) [!].nes", "Super Mario Bros. 3", "", ".nes", "super mario bros 3"},
		{"Summer Games (Disk 1 Side A).d64", "Summer Games (Disk 1 Side A)", "(Disk 1 Side A)", ".d64", "summer games"},
		{"Summer Games [Side B].d64", "Summer Games [Side B]", "[Side B]", ".d64", "summer games"},
		{"Archon (  disk   2  ).d64", "Archon (disk 2)", "(disk 2)", ".d64", "archon"},
		{"Dr. Mario", "Dr. Mario", "", "", "dr mario"},
		{"Game (Europe) [[b1]].sfc", "Game", "", ".sfc", "game"},
		{"Outer (Region (Nested)).nes", "Outer", "", ".nes", "outer"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := n.Normalize(tt.raw)
			if got.Key != tt.key {
				t.Fatalf("key got %q want %q", got.Key, tt.key)
			}
			if got.Tag != tt.tag {
				t.Fatalf("tag got %q want %q", got.Tag, tt.tag)
			}
			if got.Ext != tt.ext {
				t.Fatalf("ext got %q want %q", got.Ext, tt.ext)
			}
			if got.Clean != tt.clean {
				t.Fatalf("clean got %q want %q", got.Clean, tt.clean)
			}
		})
	}
}

func TestNormalizeWithoutProtectedPatternsRemovesDiscTags(t *testing.T) {
	n := title.MustNew(title.Options{})
	got := n.Normalize("Foo (Disc 2).cue")
	if got.Key != "Foo" || got.Tag != "" {
		t.Fatalf("got key %q tag %q, want plain Foo", got.Key, got.Tag)
	}
}

func TestNormalizeEmptyAfterRemoval(t *testing.T) {
	n := title.MustNew(title.Options{ProtectedPatterns: discPatterns})
	for _, raw := range []string{"(USA).nes", "[!] (Disc 1).cue", ""} {
		if got := n.Normalize(raw); got.Key != "" {
			t.Fatalf("Normalize(%q) key got %q want empty", raw, got.Key)
		}
	}
}

func TestFuzzyCleanIdempotent(t *testing.T) {
	inputs := []string{
		"Legend of Zelda, The (USA) (Rev 1).nes",
		"  Mega   Man 2 ",
		"Castlevania III - Dracula's Curse",
		"M.U.S.C.L.E.",
		"Pokémon Snap",
		"Battletoads-Double Dragon",
	}
	for _, opts := range []title.Options{{}, {PreserveHyphens: true}, {FoldAccents: true}} {
		n := title.MustNew(opts)
		for _, in := range inputs {
			once := n.NormalizeBase(in).Clean
			twice := n.NormalizeBase(once).Clean
			if once != twice {
				t.Fatalf("opts %+v: clean not idempotent for %q: %q then %q", opts, in, once, twice)
			}
		}
	}
}

func TestFuzzyCleanVariants(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts title.Options
		want string
	}{
		{"drops punctuation", "Chip 'n Dale - Rescue Rangers", title.Options{}, "chip n dale rescue rangers"},
		{"keeps hyphens", "Battletoads-Double Dragon", title.Options{PreserveHyphens: true}, "battletoads-double dragon"},
		{"drops accents", "Pokémon", title.Options{}, "pokmon"},
		{"folds accents", "Pokémon", title.Options{FoldAccents: true}, "pokemon"},
		{"collapses whitespace", "A\t  B\n", title.Options{}, "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := title.FuzzyClean(tt.in, tt.opts); got != tt.want {
				t.Fatalf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	n := title.MustNew(title.Options{ProtectedPatterns: discPatterns})
	a := n.Normalize("Wing Commander III (USA) (Disc 3).cue")
	b := n.Normalize("Wing Commander III (USA) (Disc 3).cue")
	if a != b {
		t.Fatalf("expected identical results, got %+v and %+v", a, b)
	}
}

func TestNewRejectsBadPattern(t *testing.T) {
	if _, err := title.New(title.Options{ProtectedPatterns: []string{"Disc ("}}); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		in, base, ext string
	}{
		{"720.nes", "720", ".nes"},
		{"M.U.S.C.L.E..nes", "M.U.S.C.L.E.", ".nes"},
		{"Snow Bros.", "Snow Bros.", ""},
		{"Dr. Mario", "Dr. Mario", ""},
		{".nes", ".nes", ""},
		{"Game.toolongext", "Game.toolongext", ""},
	}
	for _, tt := range tests {
		base, ext := title.SplitExt(tt.in)
		if base != tt.base || ext != tt.ext {
			t.Fatalf("SplitExt(%q) = (%q, %q), want (%q, %q)", tt.in, base, ext, tt.base, tt.ext)
		}
	}
}

func TestWithTag(t *testing.T) {
	if got := title.WithTag("Wing Commander III", "(Disc 2)"); got != "Wing Commander III (Disc 2)" {
		t.Fatalf("got %q", got)
	}
	if got := title.WithTag("Wing Commander III (Disc 2)", "(Disc 2)"); got != "Wing Commander III (Disc 2)" {
		t.Fatalf("expected no duplicate tag, got %q", got)
	}
	if got := title.WithTag("Pitfall", ""); got != "Pitfall" {
		t.Fatalf("got %q", got)
	}
}

func TestRetag(t *testing.T) {
	n := title.MustNew(title.Options{ProtectedPatterns: discPatterns})
	tests := []struct {
		name, tag, want string
	}{
		{"Final Fantasy IX (Disc 1)", "(Disc 2)", "Final Fantasy IX (Disc 2)"},
		{"Final Fantasy IX", "(Disc 2)", "Final Fantasy IX (Disc 2)"},
		{"Final Fantasy IX (Disc 2)", "(Disc 2)", "Final Fantasy IX (Disc 2)"},
		{"Summer Games [Side A]", "(Disk 1 Side B)", "Summer Games (Disk 1 Side B)"},
		{"Foo (Hack) (Disc 1)", "(Disc 3)", "Foo (Hack) (Disc 3)"},
		{"Final Fantasy IX (Disc 1)", "", "Final Fantasy IX (Disc 1)"},
		{"  Pitfall  ", "", "Pitfall"},
	}
	for _, tt := range tests {
		if got := n.Retag(tt.name, tt.tag); got != tt.want {
			t.Fatalf("Retag(%q, %q) got %q want %q", tt.name, tt.tag, got, tt.want)
		}
	}
}
