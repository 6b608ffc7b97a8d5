package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"romdat/internal/config"
	"romdat/internal/decision"
	"romdat/internal/logging"
	"romdat/internal/match"
	"romdat/internal/overrides"
	"romdat/internal/stage"
	"romdat/internal/title"
)

// Observer is notified after every stage that ran.
type Observer func(ctx context.Context, report *stage.Report)

// Runner executes pipeline stages for one console profile.
type Runner struct {
	Config    *config.Config
	Profile   config.Profile
	Decisions decision.Source
	// Keep overrides the configured keep rule when set.
	Keep string
	// Gate asks before each stage when true.
	Gate     bool
	Logger   *slog.Logger
	Observer Observer

	normalizer *title.Normalizer
	matcher    *match.Matcher
	catalog    *overrides.Catalog
	owned      []string
}

// Summary collects the reports of one run.
type Summary struct {
	Console  string          `json:"console"`
	RunID    string          `json:"run_id,omitempty"`
	Reports  []*stage.Report `json:"reports"`
	Declined []string        `json:"declined,omitempty"`
	Duration time.Duration   `json:"duration"`
}

// Applied counts the operations applied across every stage.
func (s Summary) Applied() int {
	n := 0
	for _, r := range s.Reports {
		n += len(r.Applied)
	}
	return n
}

// Failures counts per-item errors across every stage.
func (s Summary) Failures() int {
	n := 0
	for _, r := range s.Reports {
		n += len(r.Errors)
	}
	return n
}

// New prepares a runner, compiling the profile's normalizer and matcher.
func New(cfg *config.Config, profile config.Profile, decisions decision.Source, logger *slog.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("pipeline: %w: config is required", stage.ErrConfiguration)
	}
	n, err := title.New(profile.TitleOptions())
	if err != nil {
		return nil, stage.Wrap(stage.ErrConfiguration, "", "compile protected tags", profile.Name, err)
	}
	if decisions == nil {
		decisions = decision.Auto{Approve: true}
	}
	return &Runner{
		Config:     cfg,
		Profile:    profile,
		Decisions:  decisions,
		Logger:     logger,
		normalizer: n,
		matcher: match.New(match.Options{
			Threshold:              profile.Matching.Threshold,
			Cleaner:                n,
			RequireNumberAgreement: profile.Matching.RequireNumberAgreement,
		}),
		catalog: overrides.NewCatalog(cfg.Overrides.Path, logger),
	}, nil
}

// Normalizer returns the compiled normalizer for the profile.
func (r *Runner) Normalizer() *title.Normalizer { return r.normalizer }

// Matcher returns the matcher configured for the profile.
func (r *Runner) Matcher() *match.Matcher { return r.matcher }

// Run executes stages in pipeline order. An empty list runs every stage.
func (r *Runner) Run(ctx context.Context, stages ...string) (Summary, error) {
	started := time.Now()
	summary := Summary{Console: r.Profile.Name, Reports: []*stage.Report{}}
	if id, ok := stage.RunIDFromContext(ctx); ok {
		summary.RunID = id
	}
	ctx = stage.WithConsole(ctx, r.Profile.Name)

	selected, err := selectStages(stages)
	if err != nil {
		return summary, err
	}
	r.owned = nil
	if err := r.Profile.Layout.EnsureOutputs(); err != nil {
		return summary, stage.Wrap(stage.ErrFilesystem, "", "prepare outputs", r.Profile.Name, err)
	}

	for _, name := range selected {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		stageCtx := stage.WithStage(ctx, name)
		logger := logging.WithContext(stageCtx, r.Logger)

		if r.Gate {
			ok, err := r.Decisions.Confirm(stageCtx, fmt.Sprintf("Run %s for %s?", name, r.Profile.Name))
			if err != nil {
				return summary, err
			}
			if !ok {
				summary.Declined = append(summary.Declined, name)
				logger.Info("stage declined", logging.Args(logging.DecisionAttrs("stage_gate", "skip", "operator declined")...)...)
				continue
			}
		}

		logger.Info("stage started", logging.String(logging.FieldEventType, "stage_start"))
		report, err := r.runStage(stageCtx, name, logger)
		if report == nil {
			report = stage.NewReport(name)
		}
		if err != nil {
			if fatal(stageCtx, err) {
				summary.Reports = append(summary.Reports, report)
				return summary, err
			}
			if stage.Graceful(err) {
				report.Note = err.Error()
				logger.Info("stage skipped", logging.String("reason", err.Error()),
					logging.String(logging.FieldEventType, "stage_skipped"))
			} else {
				report.Fail("", err)
				logger.Error("stage failed", logging.Error(err),
					logging.String(logging.FieldEventType, "stage_failure"))
			}
		}
		summary.Reports = append(summary.Reports, report)
		if r.Observer != nil {
			r.Observer(stageCtx, report)
		}
		logger.Info("stage completed",
			logging.String(logging.FieldEventType, "stage_complete"),
			logging.Int("applied", len(report.Applied)),
			logging.Int("skipped", len(report.Skipped)),
			logging.Int("errors", len(report.Errors)),
		)
	}
	summary.Duration = time.Since(started)
	logging.WithContext(ctx, r.Logger).Info("run finished",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("applied", summary.Applied()),
		logging.Int("errors", summary.Failures()),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func fatal(ctx context.Context, err error) bool {
	return ctx.Err() != nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, decision.ErrNotInteractive)
}

func selectStages(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return stage.Ordered(), nil
	}
	want := map[string]struct{}{}
	for _, name := range requested {
		if !stage.Known(name) {
			return nil, fmt.Errorf("unknown stage %q", name)
		}
		want[name] = struct{}{}
	}
	var out []string
	for _, name := range stage.Ordered() {
		if _, ok := want[name]; ok {
			out = append(out, name)
		}
	}
	return out, nil
}
