package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"romdat/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a unique temp directory per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LibraryRoot = filepath.Join(base, "library")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Journal.Path = filepath.Join(base, "journal.db")
	cfgVal.Dedupe.Keep = config.KeepFirst
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	if err := os.MkdirAll(cfgVal.Paths.LibraryRoot, 0o755); err != nil {
		t.Fatalf("mkdir library root: %v", err)
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithJournal enables the operation journal.
func WithJournal() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = true
	}
}

// WithDiscPolicy overrides the duplicate grouping policy.
func WithDiscPolicy(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Dedupe.DiscPolicy = policy
	}
}

// WithOverrides writes body to a rule table in the temp directory and
// points the config at it. name picks the format via its extension.
func WithOverrides(name, body string) ConfigOption {
	return func(b *configBuilder) {
		path := filepath.Join(b.baseDir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			b.t.Fatalf("write overrides: %v", err)
		}
		b.cfg.Overrides.Path = path
	}
}

// WithConsole appends a user console profile.
func WithConsole(console config.Console) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Consoles = append(b.cfg.Consoles, console)
	}
}
