package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"romdat/internal/config"
	"romdat/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	profile    config.Profile
	configPath string
}

// setupCLITestEnv writes a config for a temp library holding a small nes
// collection.
func setupCLITestEnv(t *testing.T, journal bool) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	var opts []testsupport.ConfigOption
	if journal {
		opts = append(opts, testsupport.WithJournal())
	}
	cfg := testsupport.NewConfig(t, opts...)
	profile, err := cfg.Console("nes")
	if err != nil {
		t.Fatalf("console: %v", err)
	}
	testsupport.Touch(t, profile.Layout.Games,
		"Metroid (USA).nes",
		"Metroid (Europe).nes",
		"Legend of Zelda (USA).nes",
		"Qwerty Xyz (USA).nes",
	)
	testsupport.Touch(t, profile.Layout.References, "Metroid.txt", "The Legend of Zelda.txt")
	testsupport.Touch(t, profile.Layout.Art, "Metroid.png", "The Legend of Zelda.png")

	configPath := filepath.Join(filepath.Dir(cfg.Paths.LibraryRoot), "config.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, profile: profile, configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nlibrary_root = %q\nlog_dir = %q\n\n[dedupe]\nkeep = %q\n\n[journal]\nenabled = %t\npath = %q\n\n[logging]\nlevel = %q\n",
		cfg.Paths.LibraryRoot,
		cfg.Paths.LogDir,
		cfg.Dedupe.Keep,
		cfg.Journal.Enabled,
		cfg.Journal.Path,
		cfg.Logging.Level,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
