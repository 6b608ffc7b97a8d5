package artpair

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

// Apply copies every plan entry into outDir without replacing existing
// files. Images that found no partner are listed as skipped.
func Apply(ctx context.Context, plan Plan, outDir string, logger *slog.Logger) (*stage.Report, error) {
	report := stage.NewReport(stage.Art)
	logger = logging.NewComponentLogger(logger, "art")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return report, stage.Wrap(stage.ErrFilesystem, stage.Art, "create output directory", outDir, err)
	}

	for _, entry := range plan.Entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		dst := filepath.Join(outDir, entry.Target)
		switch err := fileutil.CopyFile(entry.Source, dst); {
		case err == nil:
			report.Apply(entry.Source, dst)
			logger.Info("copied cover art",
				logging.String("from", filepath.Base(entry.Source)),
				logging.String("to", entry.Target),
				logging.Float64("score", entry.Score),
			)
		case errors.Is(err, fileutil.ErrTargetExists):
			report.Skip(entry.Source, dst, "target exists")
			logging.WarnWithContext(logger, "cover art target exists; existing file kept", "copy_collision",
				logging.String("from", filepath.Base(entry.Source)),
				logging.String("to", entry.Target),
				logging.String(logging.FieldErrorHint, "delete the existing image to replace it"),
				logging.String(logging.FieldImpact, "existing art left unchanged"),
			)
		default:
			report.Fail(entry.Source, err)
			logging.WarnWithContext(logger, "cover art copy failed", "filesystem_failure",
				logging.String("from", entry.Source),
				logging.String("to", dst),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check permissions on the renamed cover art directory"),
				logging.String(logging.FieldImpact, "ROM may be quarantined for missing art"),
			)
		}
	}
	for _, name := range plan.Unpaired {
		report.Skip(name, "", "no confident match")
	}
	return report, nil
}
