package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const runLogPattern = "romdat-*.log"

// PruneRunLogs deletes run logs in dir whose modification time is more than
// retentionDays old and returns how many were removed. current is never
// removed. retentionDays <= 0 disables pruning.
func PruneRunLogs(logger *slog.Logger, dir string, retentionDays int, current string) int {
	if retentionDays <= 0 || dir == "" {
		return 0
	}
	if logger == nil {
		logger = NewNop()
	}
	matches, err := filepath.Glob(filepath.Join(dir, runLogPattern))
	if err != nil {
		return 0
	}
	keep := ""
	if current != "" {
		keep, _ = filepath.Abs(current)
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	removed := 0
	for _, path := range matches {
		if abs, err := filepath.Abs(path); err == nil && abs == keep {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			WarnWithContext(logger, "could not prune old run log", "log_retention_failed",
				String("path", path),
				Error(err),
				String(FieldErrorHint, "check ownership of log_dir"),
				String(FieldImpact, "old log file remains on disk"),
			)
			continue
		}
		removed++
		logger.Debug("pruned run log", String("path", path), String(FieldEventType, "log_pruned"))
	}
	return removed
}
