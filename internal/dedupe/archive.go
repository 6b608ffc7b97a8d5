package dedupe

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"romdat/internal/fileutil"
	"romdat/internal/logging"
	"romdat/internal/stage"
)

// Archive resolves every group with policy and moves every file of the
// members that are not retained into removedDir. A name already present in
// removedDir is a collision: the source stays where it is. Filesystem
// failures are recorded per file. Only policy failures other than an invalid
// selection, such as a cancelled context or a missing terminal, abort the
// sweep.
func Archive(ctx context.Context, groups []Group, policy Policy, removedDir string, logger *slog.Logger) (*stage.Report, error) {
	report := stage.NewReport(stage.Dedupe)
	logger = logging.NewComponentLogger(logger, "dedupe")
	if len(groups) == 0 {
		report.Note = "no duplicates found"
		return report, nil
	}
	if err := os.MkdirAll(removedDir, 0o755); err != nil {
		return report, stage.Wrap(stage.ErrFilesystem, stage.Dedupe, "create archive directory", removedDir, err)
	}

	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		retained, err := Resolve(ctx, group, policy)
		if err != nil {
			if !errors.Is(err, stage.ErrValidation) {
				return report, err
			}
			report.Fail(group.Key, err)
			logging.WarnWithContext(logger, "duplicate selection rejected; group left as is", "dedupe_invalid_selection",
				logging.String("key", group.Key),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "choose at least one listed file"),
				logging.String(logging.FieldImpact, "no files archived for this title"),
			)
			continue
		}

		keep := make(map[int]struct{}, len(retained))
		for _, idx := range retained {
			keep[idx] = struct{}{}
		}
		for idx, member := range group.Members {
			if _, ok := keep[idx]; ok {
				attrs := append([]logging.Attr{logging.String("release", member.Label())},
					logging.DecisionAttrs("dedupe_resolve", "keep", "selected by policy")...)
				logger.Debug("duplicate retained", logging.Args(attrs...)...)
				continue
			}
			for _, file := range member.Files {
				archiveFile(report, logger, file.Path, filepath.Join(removedDir, file.Name))
			}
		}
	}
	return report, nil
}

func archiveFile(report *stage.Report, logger *slog.Logger, src, dst string) {
	err := fileutil.Move(src, dst)
	switch {
	case err == nil:
		report.Apply(src, dst)
		logger.Info("archived duplicate",
			logging.String("from", src),
			logging.String("to", dst),
			logging.String(logging.FieldEventType, "duplicate_archived"),
		)
	case errors.Is(err, fileutil.ErrTargetExists):
		report.Skip(src, dst, "target exists")
		logging.WarnWithContext(logger, "archive target exists; duplicate left in place", "rename_collision",
			logging.String("from", src),
			logging.String("to", dst),
			logging.String(logging.FieldErrorHint, "remove or rename the file already in the archive"),
		)
	default:
		report.Fail(src, err)
		logging.WarnWithContext(logger, "archive move failed", "filesystem_failure",
			logging.String("from", src),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on the games and archive directories"),
		)
	}
}
