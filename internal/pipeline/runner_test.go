package pipeline_test

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"romdat/internal/config"
	"romdat/internal/decision"
	"romdat/internal/logging"
	"romdat/internal/pipeline"
	"romdat/internal/stage"
	"romdat/internal/testsupport"
)

func setupNES(t *testing.T, opts ...testsupport.ConfigOption) (*config.Config, config.Profile) {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	profile, err := cfg.Console("nes")
	if err != nil {
		t.Fatalf("console: %v", err)
	}
	testsupport.Touch(t, profile.Layout.Games,
		"Metroid (USA).nes",
		"Metroid (Europe).nes",
		"Legend of Zelda (USA).nes",
		"Qwerty Xyz (USA).nes",
	)
	testsupport.Touch(t, profile.Layout.References, "Metroid.txt", "The Legend of Zelda.txt")
	testsupport.Touch(t, profile.Layout.Art, "Metroid.png", "The Legend of Zelda.png")
	return cfg, profile
}

func TestRunFullPipeline(t *testing.T) {
	cfg, profile := setupNES(t)
	runner, err := pipeline.New(cfg, profile, decision.Auto{Approve: true}, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var observed []string
	runner.Observer = func(_ context.Context, r *stage.Report) {
		observed = append(observed, r.Stage)
	}

	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !slices.Equal(observed, stage.Ordered()) {
		t.Fatalf("observed stages %v want %v", observed, stage.Ordered())
	}
	if summary.Failures() != 0 {
		t.Fatalf("unexpected failures: %+v", summary.Reports)
	}

	if got, want := testsupport.ListDir(t, profile.Layout.Games), []string{"Metroid.nes", "The Legend of Zelda.nes"}; !slices.Equal(got, want) {
		t.Fatalf("games = %v want %v", got, want)
	}
	if got, want := testsupport.ListDir(t, profile.Layout.Removed), []string{"Metroid (USA).nes"}; !slices.Equal(got, want) {
		t.Fatalf("removed = %v want %v", got, want)
	}
	if got, want := testsupport.ListDir(t, profile.Layout.RenamedArt), []string{"Metroid.nes.png", "The Legend of Zelda.nes.png"}; !slices.Equal(got, want) {
		t.Fatalf("renamed art = %v want %v", got, want)
	}
	if got, want := testsupport.ListDir(t, profile.Layout.Unmatched), []string{"Qwerty Xyz.nes"}; !slices.Equal(got, want) {
		t.Fatalf("unmatched = %v want %v", got, want)
	}
	if got := testsupport.ReadText(t, filepath.Join(profile.Layout.RenamedArt, "Metroid.nes.png")); got != "Metroid.png" {
		t.Fatalf("art content = %q want %q", got, "Metroid.png")
	}
}

func TestRunDeclinedStagesAreSkipped(t *testing.T) {
	cfg, profile := setupNES(t)
	answers := &decision.Scripted{Confirms: []bool{false, true}}
	runner, err := pipeline.New(cfg, profile, answers, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	runner.Gate = true

	summary, err := runner.Run(context.Background(), stage.Dedupe, stage.Strip)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !slices.Equal(summary.Declined, []string{stage.Dedupe}) {
		t.Fatalf("declined = %v", summary.Declined)
	}
	if len(answers.Prompts) != 2 || answers.Prompts[0] != "Run dedupe for nes?" {
		t.Fatalf("prompts = %v", answers.Prompts)
	}
	games := testsupport.ListDir(t, profile.Layout.Games)
	want := []string{"Legend of Zelda.nes", "Metroid (USA).nes", "Metroid.nes", "Qwerty Xyz.nes"}
	if !slices.Equal(games, want) {
		t.Fatalf("games = %v want %v", games, want)
	}
	if len(summary.Reports) != 1 || summary.Reports[0].Stage != stage.Strip {
		t.Fatalf("reports = %+v", summary.Reports)
	}
	// Both Metroid copies strip to the same name; the second is skipped.
	if skipped := summary.Reports[0].Skipped; len(skipped) != 1 || skipped[0].Reason != "target exists" {
		t.Fatalf("strip skipped = %+v", skipped)
	}
}

func TestRunMissingFoldersEndGracefully(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	profile, err := cfg.Console("gba")
	if err != nil {
		t.Fatalf("console: %v", err)
	}
	runner, err := pipeline.New(cfg, profile, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(summary.Reports) != len(stage.Ordered()) {
		t.Fatalf("reports = %d want %d", len(summary.Reports), len(stage.Ordered()))
	}
	for _, r := range summary.Reports {
		if r.Failed() {
			t.Fatalf("stage %s failed: %+v", r.Stage, r.Errors)
		}
		if len(r.Applied) != 0 {
			t.Fatalf("stage %s applied %+v", r.Stage, r.Applied)
		}
	}
}

func TestRunUnknownStage(t *testing.T) {
	cfg, profile := setupNES(t)
	runner, err := pipeline.New(cfg, profile, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := runner.Run(context.Background(), "encode"); err == nil {
		t.Fatal("expected unknown stage error")
	}
}

func TestRunCanceled(t *testing.T) {
	cfg, profile := setupNES(t)
	runner, err := pipeline.New(cfg, profile, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v want context.Canceled", err)
	}
}

func TestRunOverridesFeedRename(t *testing.T) {
	cfg, profile := setupNES(t, testsupport.WithOverrides("overrides.toml", `
[renames]
"Qwerty Xyz" = "Metroid II"
`))
	runner, err := pipeline.New(cfg, profile, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := runner.Run(context.Background(), stage.Dedupe, stage.Strip, stage.Overrides, stage.Rename); err != nil {
		t.Fatalf("Run: %v", err)
	}
	games := testsupport.ListDir(t, profile.Layout.Games)
	want := []string{"Metroid II.nes", "Metroid.nes", "The Legend of Zelda.nes"}
	if !slices.Equal(games, want) {
		t.Fatalf("games = %v want %v", games, want)
	}
}

func TestRunDedupeDiscPolicy(t *testing.T) {
	cases := []struct {
		policy  string
		removed []string
	}{
		{policy: config.DiscPolicyPerDisc, removed: []string{"Riven (Disc 1) (USA).cue"}},
		{policy: config.DiscPolicyExclude, removed: nil},
	}
	for _, tc := range cases {
		t.Run(tc.policy, func(t *testing.T) {
			cfg := testsupport.NewConfig(t, testsupport.WithDiscPolicy(tc.policy))
			profile, err := cfg.Console("ps1")
			if err != nil {
				t.Fatalf("console: %v", err)
			}
			testsupport.Touch(t, profile.Layout.Games,
				"Riven (Disc 1) (Europe).cue",
				"Riven (Disc 1) (USA).cue",
				"Riven (Disc 2) (Europe).cue",
			)
			runner, err := pipeline.New(cfg, profile, nil, logging.NewNop())
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if _, err := runner.Run(context.Background(), stage.Dedupe); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if got := testsupport.ListDir(t, profile.Layout.Removed); !slices.Equal(got, tc.removed) {
				t.Fatalf("removed = %v want %v", got, tc.removed)
			}
		})
	}
}
