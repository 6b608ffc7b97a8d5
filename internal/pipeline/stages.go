package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"romdat/internal/artpair"
	"romdat/internal/dedupe"
	"romdat/internal/library"
	"romdat/internal/logging"
	"romdat/internal/overrides"
	"romdat/internal/quarantine"
	"romdat/internal/rename"
	"romdat/internal/stage"
)

func (r *Runner) runStage(ctx context.Context, name string, logger *slog.Logger) (*stage.Report, error) {
	switch name {
	case stage.Dedupe:
		return r.dedupe(ctx, logger)
	case stage.Strip:
		return r.strip(ctx, logger)
	case stage.Overrides:
		return r.overrides(ctx, logger)
	case stage.Rename:
		return r.rename(ctx, logger)
	case stage.Art:
		return r.art(ctx, logger)
	case stage.Quarantine:
		return r.quarantine(ctx, logger)
	default:
		return nil, fmt.Errorf("unknown stage %q", name)
	}
}

func (r *Runner) items() ([]library.Item, error) {
	return library.ListItems(r.Profile.Layout.Games, r.Profile.Extensions, r.normalizer)
}

func (r *Runner) dedupe(ctx context.Context, logger *slog.Logger) (*stage.Report, error) {
	policy, err := dedupe.ParseDiscPolicy(r.Config.Dedupe.DiscPolicy)
	if err != nil {
		return nil, stage.Wrap(stage.ErrConfiguration, stage.Dedupe, "disc policy", "", err)
	}
	keep := r.Keep
	if keep == "" {
		keep = r.Config.Dedupe.Keep
	}
	resolver, err := dedupe.PolicyFor(keep, r.Decisions)
	if err != nil {
		return nil, stage.Wrap(stage.ErrConfiguration, stage.Dedupe, "keep rule", "", err)
	}
	items, err := r.items()
	if err != nil {
		return nil, err
	}
	groups := dedupe.FindDuplicates(items, policy)
	logger.Info("duplicate groups found", logging.Int("groups", len(groups)), logging.String("disc_policy", string(policy)))
	return dedupe.Archive(ctx, groups, resolver, r.Profile.Layout.Removed, logger)
}

func (r *Runner) strip(ctx context.Context, logger *slog.Logger) (*stage.Report, error) {
	report, err := rename.StripTags(ctx, r.Profile.Layout.Games, r.Profile.Extensions, r.normalizer, logger)
	if err != nil || !r.Config.Art.StripTags {
		return report, err
	}
	art, err := rename.StripArtTags(ctx, r.Profile.Layout.Art, r.normalizer, logger)
	if err != nil {
		if stage.Graceful(err) {
			return report, nil
		}
		return report, err
	}
	report.Applied = append(report.Applied, art.Applied...)
	report.Skipped = append(report.Skipped, art.Skipped...)
	report.Errors = append(report.Errors, art.Errors...)
	return report, nil
}

func (r *Runner) overrides(ctx context.Context, logger *slog.Logger) (*stage.Report, error) {
	items, err := r.items()
	if err != nil {
		return nil, err
	}
	report, owned, err := overrides.Apply(ctx, items, r.catalog, r.normalizer, r.Profile.Name, logger)
	r.owned = append(r.owned, owned...)
	return report, err
}

func (r *Runner) rename(ctx context.Context, logger *slog.Logger) (*stage.Report, error) {
	refs, err := r.Profile.Layout.LoadReferences()
	if err != nil {
		return nil, err
	}
	o := &rename.Orchestrator{
		Normalizer: r.normalizer,
		Matcher:    r.matcher,
		Extensions: r.Profile.Extensions,
		Logger:     logger,
	}
	return o.Apply(ctx, r.Profile.Layout.Games, refs, r.owned...)
}

func (r *Runner) art(ctx context.Context, logger *slog.Logger) (*stage.Report, error) {
	direction, err := artpair.ParseDirection(r.Profile.ArtDirection)
	if err != nil {
		return nil, stage.Wrap(stage.ErrConfiguration, stage.Art, "direction", "", err)
	}
	roms, err := r.items()
	if err != nil {
		return nil, err
	}
	assets, err := library.ListArt(r.Profile.Layout.Art, library.DefaultArtExtensions, r.normalizer)
	if err != nil {
		return nil, err
	}
	plan := artpair.Pair(roms, assets, artpair.Options{
		Direction: direction,
		FanOut:    r.Config.Art.FanOut,
		Matcher:   r.matcher,
	})
	logger.Info("art pairing planned", logging.Int("copies", len(plan.Entries)), logging.Int("unpaired", len(plan.Unpaired)))
	return artpair.Apply(ctx, plan, r.Profile.Layout.RenamedArt, logger)
}

func (r *Runner) quarantine(ctx context.Context, logger *slog.Logger) (*stage.Report, error) {
	items, err := r.items()
	if err != nil {
		return nil, err
	}
	paired, err := library.ListNames(r.Profile.Layout.RenamedArt, library.ArtSuffix)
	if err != nil {
		return nil, err
	}
	return quarantine.Sweep(ctx, items, paired, r.Profile.Layout.Unmatched, logger)
}
