package overrides

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"romdat/internal/textutil"
)

// Rule maps one exact name to a canonical title. An empty Console applies
// the rule to every console.
type Rule struct {
	Match   string `json:"match" toml:"match" yaml:"match"`
	Title   string `json:"title" toml:"title" yaml:"title"`
	Console string `json:"console,omitempty" toml:"console" yaml:"console"`
}

// Catalog loads rename rules from a file.
type Catalog struct {
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
	loaded time.Time
	rules  []Rule
}

// NewCatalog constructs a catalog backed by the file at path. A blank path
// yields a nil catalog, which matches nothing.
func NewCatalog(path string, logger *slog.Logger) *Catalog {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{path: trimmed, logger: logger}
}

// Rules returns the current rules for console, reloading the file if it
// changed since the last call. A missing file yields no rules.
func (c *Catalog) Rules(console string) ([]Rule, error) {
	if c == nil {
		return nil, nil
	}
	if err := c.ensureLoaded(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Rule, 0, len(c.rules))
	for _, rule := range c.rules {
		if rule.Console == "" || strings.EqualFold(rule.Console, console) {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (c *Catalog) ensureLoaded() error {
	info, err := os.Stat(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	c.mu.RLock()
	alreadyLoaded := !c.loaded.IsZero() && c.loaded.Equal(info.ModTime())
	c.mu.RUnlock()
	if alreadyLoaded {
		return nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return err
	}
	rules, err := Parse(filepath.Ext(c.path), data)
	if err != nil {
		return fmt.Errorf("parse overrides %s: %w", c.path, err)
	}

	c.mu.Lock()
	c.rules = rules
	c.loaded = info.ModTime()
	c.mu.Unlock()
	c.logger.Info("loaded rename overrides", slog.String("path", c.path), slog.Int("count", len(rules)))
	return nil
}

// Parse decodes a rule table. ext selects the format: .toml, .yaml/.yml, or
// JSON for anything else. JSON accepts a bare array of rules or an object
// with an "overrides" array. TOML and YAML accept a "renames" map of
// match = title plus an optional "rules" array.
func Parse(ext string, data []byte) ([]Rule, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var (
		rules   []Rule
		renames map[string]string
	)
	switch strings.ToLower(ext) {
	case ".toml":
		var doc struct {
			Renames map[string]string `toml:"renames"`
			Rules   []Rule            `toml:"rules"`
		}
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		rules, renames = doc.Rules, doc.Renames
	case ".yaml", ".yml":
		var doc struct {
			Renames map[string]string `yaml:"renames"`
			Rules   []Rule            `yaml:"rules"`
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		rules, renames = doc.Rules, doc.Renames
	default:
		trimmed := bytes.TrimSpace(data)
		if trimmed[0] == '{' {
			var wrapper struct {
				Overrides []Rule `json:"overrides"`
			}
			if err := json.Unmarshal(trimmed, &wrapper); err != nil {
				return nil, err
			}
			rules = wrapper.Overrides
		} else if err := json.Unmarshal(trimmed, &rules); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(renames))
	for k := range renames {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rules = append(rules, Rule{Match: k, Title: renames[k]})
	}

	normalized := make([]Rule, 0, len(rules))
	for i, rule := range rules {
		rule.Match = strings.TrimSpace(rule.Match)
		rule.Title = textutil.SanitizeFileName(rule.Title)
		rule.Console = strings.ToLower(strings.TrimSpace(rule.Console))
		if rule.Match == "" || rule.Title == "" {
			return nil, fmt.Errorf("rule %d: match and title are required", i+1)
		}
		normalized = append(normalized, rule)
	}
	return normalized, nil
}
