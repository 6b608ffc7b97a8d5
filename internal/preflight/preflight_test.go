package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"romdat/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	result := CheckDirectoryAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDirectoryAccess("test", f); result.Passed {
		t.Fatal("expected failure for file path")
	}
	if result := CheckFileReadable("test", f); !result.Passed {
		t.Fatalf("expected readable file, got %s", result.Detail)
	}
}

func TestCheckCreatable(t *testing.T) {
	dir := t.TempDir()
	if result := CheckCreatable("out", filepath.Join(dir, "new")); !result.Passed {
		t.Fatalf("expected pass for creatable dir, got %s", result.Detail)
	}
	if result := CheckCreatable("out", filepath.Join(dir, "missing", "deeper")); result.Passed {
		t.Fatal("expected failure when parent is missing")
	}
}

func TestRunAllReportsMissingInputs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	profile, err := cfg.Console("nes")
	if err != nil {
		t.Fatal(err)
	}
	testsupport.Touch(t, profile.Layout.Games, "Pitfall.nes")
	testsupport.Touch(t, profile.Layout.References, "Pitfall")

	failed := Failed(RunAll(cfg, profile))
	if len(failed) != 1 || failed[0].Name != "Cover art" {
		t.Fatalf("expected only cover art to fail, got %+v", failed)
	}
}
