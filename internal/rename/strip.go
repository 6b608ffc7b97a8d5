package rename

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"romdat/internal/fileutil"
	"romdat/internal/library"
	"romdat/internal/logging"
	"romdat/internal/stage"
	"romdat/internal/title"
)

// StripTags renames every file in dir to its normalized key, removing
// release tags such as "(USA)" or "[!]" while keeping protected ones.
// Names that normalize to nothing are left alone.
func StripTags(ctx context.Context, dir string, exts []string, n *title.Normalizer, logger *slog.Logger) (*stage.Report, error) {
	report := stage.NewReport(stage.Strip)
	logger = logging.NewComponentLogger(logger, "strip")

	items, err := library.ListItems(dir, exts, n)
	if err != nil {
		return report, err
	}
	return report, stripItems(ctx, report, items, logger)
}

// StripArtTags is StripTags for a cover-art tree. Images are found
// recursively and each one is renamed inside its own folder.
func StripArtTags(ctx context.Context, dir string, n *title.Normalizer, logger *slog.Logger) (*stage.Report, error) {
	report := stage.NewReport(stage.Strip)
	logger = logging.NewComponentLogger(logger, "strip")

	assets, err := library.ListArt(dir, library.DefaultArtExtensions, n)
	if err != nil {
		return report, err
	}
	items := make([]library.Item, len(assets))
	for i, asset := range assets {
		items[i] = library.NewItem(filepath.Dir(asset.Path), asset.Name(), n)
	}
	return report, stripItems(ctx, report, items, logger)
}

func stripItems(ctx context.Context, report *stage.Report, items []library.Item, logger *slog.Logger) error {
	report.Passes = 1
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if item.Key == "" {
			report.Skip(item.Path, "", "name is only tags")
			logging.WarnWithContext(logger, "name has no title outside brackets", "malformed_name",
				logging.String("file", item.Name),
				logging.String(logging.FieldErrorHint, "rename the file by hand"),
			)
			continue
		}
		target := item.Key + item.Ext
		if target == item.Name {
			continue
		}
		dst := filepath.Join(filepath.Dir(item.Path), target)
		switch err := fileutil.Move(item.Path, dst); {
		case err == nil:
			report.Apply(item.Path, dst)
			logger.Info("stripped tags", logging.String("from", item.Name), logging.String("to", target))
		case errors.Is(err, fileutil.ErrTargetExists):
			report.Skip(item.Path, dst, "target exists")
			logging.WarnWithContext(logger, "stripped name already taken; file left unchanged", "rename_collision",
				logging.String("from", item.Name),
				logging.String("to", target),
				logging.String(logging.FieldErrorHint, "run dedupe first to archive region variants"),
			)
		default:
			report.Fail(item.Path, err)
			logging.WarnWithContext(logger, "strip rename failed", "filesystem_failure",
				logging.String("from", item.Name),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check permissions on the directory"),
			)
		}
	}
	return nil
}
