// Package quarantine moves ROMs that have no paired cover art into a holding
// directory so the frontend only lists games it can draw.
package quarantine

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"romdat/internal/fileutil"
	"romdat/internal/library"
	"romdat/internal/logging"
	"romdat/internal/stage"
)

// Sweep moves every item whose art name is absent from paired into holdDir.
// paired holds art file names such as "Pitfall.nes.png".
func Sweep(ctx context.Context, items []library.Item, paired map[string]struct{}, holdDir string, logger *slog.Logger) (*stage.Report, error) {
	report := stage.NewReport(stage.Quarantine)
	logger = logging.NewComponentLogger(logger, "quarantine")

	var missing []library.Item
	for _, item := range items {
		if _, ok := paired[item.ArtName()]; !ok {
			missing = append(missing, item)
		}
	}
	if len(missing) == 0 {
		report.Note = "every ROM has cover art"
		return report, nil
	}
	if err := os.MkdirAll(holdDir, 0o755); err != nil {
		return report, stage.Wrap(stage.ErrFilesystem, stage.Quarantine, "create holding directory", holdDir, err)
	}

	for _, item := range missing {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		dst := filepath.Join(holdDir, item.Name)
		switch err := fileutil.Move(item.Path, dst); {
		case err == nil:
			report.Apply(item.Path, dst)
			logger.Info("quarantined ROM without art",
				logging.String("file", item.Name),
				logging.String("expected_art", item.ArtName()),
			)
		case errors.Is(err, fileutil.ErrTargetExists):
			report.Skip(item.Path, dst, "target exists")
			logging.WarnWithContext(logger, "quarantine target exists; ROM left in place", "rename_collision",
				logging.String("file", item.Name),
				logging.String(logging.FieldErrorHint, "compare the two copies and delete one"),
			)
		default:
			report.Fail(item.Path, err)
			logging.WarnWithContext(logger, "quarantine move failed", "filesystem_failure",
				logging.String("file", item.Name),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check permissions on the games and unmatched directories"),
			)
		}
	}
	return report, nil
}
