package rename

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"romdat/internal/fileutil"
	"romdat/internal/library"
	"romdat/internal/logging"
	"romdat/internal/match"
	"romdat/internal/stage"
	"romdat/internal/title"
)

// Orchestrator renames files to their best-matching reference title.
type Orchestrator struct {
	Normalizer *title.Normalizer
	Matcher    *match.Matcher
	Extensions []string
	Logger     *slog.Logger
}

// Apply runs matching passes over dir until one makes no progress. Names in
// seed count as already matched and are never touched; the override step
// uses this to protect its own work.
//
// A target that already exists is a collision: the file stays put, is not
// marked matched, and is retried on later passes. A file whose target equals
// its current name is marked matched without touching the disk.
func (o *Orchestrator) Apply(ctx context.Context, dir string, refs []library.Reference, seed ...string) (*stage.Report, error) {
	report := stage.NewReport(stage.Rename)
	logger := logging.NewComponentLogger(o.Logger, "rename")

	if len(refs) == 0 {
		return report, stage.Wrap(stage.ErrEmptyInput, stage.Rename, "load references", "no reference titles", nil)
	}
	pool := o.Matcher.Pool(library.Titles(refs))

	matched := make(map[string]struct{}, len(seed))
	for _, name := range seed {
		matched[name] = struct{}{}
	}
	collisions := map[string]struct{}{}

	var last []library.Item
	maxPasses := -1
	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		items, err := library.ListItems(dir, o.Extensions, o.Normalizer)
		if err != nil {
			if report.Passes > 0 && errors.Is(err, stage.ErrEmptyInput) {
				break
			}
			return report, err
		}
		last = items
		if maxPasses < 0 {
			maxPasses = len(items)
		}
		if report.Passes >= maxPasses {
			// Every productive pass resolves at least one file, so this only
			// trips when the directory changes underneath the run.
			return report, stage.Wrap(stage.ErrValidation, stage.Rename, "converge",
				fmt.Sprintf("no fixed point after %d passes", report.Passes), nil)
		}
		report.Passes++

		remaining, renamed := 0, 0
		for _, item := range items {
			if _, done := matched[item.Name]; done {
				continue
			}
			remaining++
			candidate, ok := pool.BestScored(item.Base)
			if !ok {
				continue
			}
			target := o.Normalizer.Retag(candidate.Candidate, item.Tag) + item.Ext
			if target == item.Name {
				matched[item.Name] = struct{}{}
				remaining--
				continue
			}
			dst := filepath.Join(dir, target)
			switch err := fileutil.Move(item.Path, dst); {
			case err == nil:
				matched[target] = struct{}{}
				delete(collisions, item.Path)
				renamed++
				report.Apply(item.Path, dst)
				logger.Info("renamed file",
					logging.Args(append([]logging.Attr{
						logging.String("from", item.Name),
						logging.String("to", target),
						logging.Float64("score", candidate.Score),
						logging.Int("pass", report.Passes),
					}, logging.DecisionAttrs("rename_match", "renamed", matchReason(candidate))...)...)...)
			case errors.Is(err, fileutil.ErrTargetExists):
				if _, seen := collisions[item.Path]; !seen {
					collisions[item.Path] = struct{}{}
					logging.WarnWithContext(logger, "rename target exists; file left unchanged", "rename_collision",
						logging.String("from", item.Name),
						logging.String("to", target),
						logging.Int("pass", report.Passes),
						logging.String(logging.FieldErrorHint, "archive the duplicate or rename it by hand"),
					)
				}
			default:
				report.Fail(item.Path, err)
				matched[item.Name] = struct{}{}
				logging.WarnWithContext(logger, "rename failed", "filesystem_failure",
					logging.String("from", item.Name),
					logging.String("to", target),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check permissions on the games directory"),
				)
			}
		}

		logger.Debug("rename pass complete",
			logging.Int("pass", report.Passes),
			logging.Int("renamed", renamed),
			logging.Int("remaining", remaining-renamed),
		)
		if renamed == 0 || remaining == renamed {
			break
		}
	}

	for _, item := range last {
		if _, done := matched[item.Name]; done {
			continue
		}
		if !fileutil.Exists(item.Path) {
			continue
		}
		if _, collided := collisions[item.Path]; collided {
			report.Skip(item.Path, "", "target exists")
		} else {
			report.Skip(item.Path, "", "no confident match")
		}
	}
	return report, nil
}

func matchReason(c match.Candidate) string {
	if c.Exact {
		return "exact cleaned match"
	}
	return fmt.Sprintf("token-set ratio %.3f", c.Score)
}
