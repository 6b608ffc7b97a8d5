package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"romdat/internal/config"
	"romdat/internal/stage"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestPrettyHandlerPrefixesStage(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, lvl, false))

	ctx := stage.WithStage(context.Background(), stage.Rename)
	WithContext(ctx, logger).Info("renamed file", String("from", "Zelda (USA).nes"), String(FieldRunID, "abc"))

	line := buf.String()
	if !strings.Contains(line, "[rename] renamed file") {
		t.Fatalf("expected stage prefix, got %q", line)
	}
	if !strings.Contains(line, `from="Zelda (USA).nes"`) {
		t.Fatalf("expected quoted attribute, got %q", line)
	}
	if strings.Contains(line, "run_id") {
		t.Fatalf("run_id should be omitted from console output, got %q", line)
	}
}

func TestPrettyHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newPrettyHandler(&buf, lvl, false))
	logger.Info("ignored")
	logger.Warn("kept")
	if strings.Contains(buf.String(), "ignored") || !strings.Contains(buf.String(), "WARN  kept") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	WarnWithContext(logger, "target exists", "rename_collision", String(FieldErrorHint, "remove the stale copy"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload[FieldEventType] != "rename_collision" {
		t.Fatalf("event_type = %v", payload[FieldEventType])
	}
	if payload[FieldErrorHint] != "remove the stale copy" {
		t.Fatalf("error_hint overridden: %v", payload[FieldErrorHint])
	}
	if payload[FieldImpact] == nil {
		t.Fatal("expected default impact")
	}
}

func TestNewFromConfigWritesRunLog(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Logging.Level = "error"

	run, err := NewFromConfig(&cfg, "0123456789abcdef")
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	run.Logger.Debug("debug line")

	if !strings.HasSuffix(run.LogPath, "-01234567.log") {
		t.Fatalf("unexpected log path %q", run.LogPath)
	}
	data, err := os.ReadFile(run.LogPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"run_id":"0123456789abcdef"`) {
		t.Fatalf("expected run_id in file, got %s", data)
	}
}

func TestPruneRunLogsKeepsCurrent(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "romdat-20200101-000000.log")
	current := filepath.Join(dir, "romdat-20200101-000001.log")
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{old, current, other} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		stale := time.Now().AddDate(0, 0, -30)
		if err := os.Chtimes(p, stale, stale); err != nil {
			t.Fatal(err)
		}
	}

	if n := PruneRunLogs(nil, dir, 7, current); n != 1 {
		t.Fatalf("pruned %d logs, want 1", n)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatalf("expected %s pruned", old)
	}
	for _, p := range []string{current, other} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected %s kept: %v", p, err)
		}
	}
}
