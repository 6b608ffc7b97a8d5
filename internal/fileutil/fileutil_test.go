package fileutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"romdat/internal/stage"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	dst := filepath.Join(dir, "dst.png")

	content := []byte("box art")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestCopyFileRefusesExistingTarget(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	dst := filepath.Join(dir, "dst.png")
	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := CopyFile(src, dst)
	if !errors.Is(err, ErrTargetExists) {
		t.Fatalf("expected ErrTargetExists, got %v", err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "old" {
		t.Fatalf("target modified: %q", got)
	}
	srcGot, _ := os.ReadFile(src)
	if string(srcGot) != "new" {
		t.Fatalf("source modified: %q", srcGot)
	}
}

func TestCopyFileMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	if err := os.WriteFile(src, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFileMode(src, dst, 0o600); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o077 != 0 {
		t.Fatalf("expected owner-only permissions, got %o", info.Mode().Perm())
	}
}

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	content := []byte("verified copy content")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestMove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Pitfall (USA).nes")
	dst := filepath.Join(dir, "Removed games", "Pitfall (USA).nes")
	if err := os.WriteFile(src, []byte("rom"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := Move(src, dst); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if Exists(src) {
		t.Fatal("expected source to be gone")
	}
	if !Exists(dst) {
		t.Fatal("expected destination to exist")
	}
}

func TestMoveRefusesExistingTarget(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.nes")
	dst := filepath.Join(dir, "b.nes")
	if err := os.WriteFile(src, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("b"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := Move(src, dst)
	if !errors.Is(err, ErrTargetExists) {
		t.Fatalf("expected ErrTargetExists, got %v", err)
	}
	if !errors.Is(err, stage.ErrCollision) || !errors.Is(err, fs.ErrExist) {
		t.Fatalf("expected collision to match stage.ErrCollision and fs.ErrExist, got %v", err)
	}
	a, _ := os.ReadFile(src)
	b, _ := os.ReadFile(dst)
	if string(a) != "a" || string(b) != "b" {
		t.Fatalf("files changed: src=%q dst=%q", a, b)
	}
}

func TestMoveMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := Move(filepath.Join(dir, "missing.nes"), filepath.Join(dir, "x.nes")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestMoveAllowsCaseOnlyRenameOfSameFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "pitfall.nes")
	if err := os.WriteFile(src, []byte("rom"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Move(src, src); err != nil {
		t.Fatalf("Move onto itself: %v", err)
	}
	if !Exists(src) {
		t.Fatal("expected file to survive")
	}
}
