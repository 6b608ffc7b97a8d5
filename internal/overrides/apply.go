package overrides

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"romdat/internal/fileutil"
	"romdat/internal/library"
	"romdat/internal/logging"
	"romdat/internal/stage"
	"romdat/internal/title"
)

// Apply renames every item with a matching rule. The protected tag and
// extension of the original name are kept. It returns the report and the
// names now owned by the override table: renamed targets, plus items that
// already carried their canonical name.
//
// A rule matches an item by its full base name, then by its tag-free title,
// then by normalized key. The last form lets a rule written against a raw
// release name such as "Foo (USA) (Disc 1)" still find "Foo (Disc 1)" after
// tag stripping.
func Apply(ctx context.Context, items []library.Item, catalog *Catalog, n *title.Normalizer, console string, logger *slog.Logger) (*stage.Report, []string, error) {
	report := stage.NewReport(stage.Overrides)
	logger = logging.NewComponentLogger(logger, "overrides")
	if catalog == nil {
		report.Note = "no override table configured"
		return report, nil, nil
	}
	rules, err := catalog.Rules(console)
	if err != nil {
		return report, nil, stage.Wrap(stage.ErrConfiguration, stage.Overrides, "load rules", catalog.path, err)
	}
	if len(rules) == 0 {
		report.Note = "override table is empty"
		return report, nil, nil
	}

	index := newRuleIndex(rules, n)
	var owned []string
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return report, owned, err
		}
		canonical, ok := index.lookup(item)
		if !ok {
			continue
		}
		target := retag(n, canonical, item.Tag) + item.Ext
		if target == item.Name {
			owned = append(owned, item.Name)
			continue
		}
		dst := filepath.Join(filepath.Dir(item.Path), target)
		switch err := fileutil.Move(item.Path, dst); {
		case err == nil:
			owned = append(owned, target)
			report.Apply(item.Path, dst)
			logger.Info("applied rename override",
				logging.String("from", item.Name),
				logging.String("to", target),
			)
		case errors.Is(err, fileutil.ErrTargetExists):
			report.Skip(item.Path, dst, "target exists")
			logging.WarnWithContext(logger, "override target exists; file left unchanged", "rename_collision",
				logging.String("from", item.Name),
				logging.String("to", target),
				logging.String(logging.FieldErrorHint, "archive the duplicate before applying overrides"),
			)
		default:
			report.Fail(item.Path, err)
			logging.WarnWithContext(logger, "override rename failed", "filesystem_failure",
				logging.String("from", item.Name),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check permissions on the games directory"),
			)
		}
	}
	return report, owned, nil
}

func retag(n *title.Normalizer, name, tag string) string {
	if n == nil {
		return title.WithTag(name, tag)
	}
	return n.Retag(name, tag)
}

// ruleIndex holds rules alongside the normalized key of each Match.
type ruleIndex struct {
	rules []Rule
	keys  []string
}

func newRuleIndex(rules []Rule, n *title.Normalizer) ruleIndex {
	ix := ruleIndex{rules: rules, keys: make([]string, len(rules))}
	if n == nil {
		return ix
	}
	for i, rule := range rules {
		ix.keys[i] = n.NormalizeBase(rule.Match).Key
	}
	return ix
}

// lookup tries the item's base, title and key in that order. Within one
// form, a console-specific rule wins over a global one.
func (ix ruleIndex) lookup(item library.Item) (string, bool) {
	base, name := strings.TrimSpace(item.Base), strings.TrimSpace(item.Title)
	forms := []func(i int) bool{
		func(i int) bool { return base != "" && ix.rules[i].Match == base },
		func(i int) bool { return name != "" && ix.rules[i].Match == name },
		func(i int) bool { return item.Key != "" && ix.keys[i] == item.Key },
	}
	for _, matches := range forms {
		found, ok := "", false
		for i, rule := range ix.rules {
			if !matches(i) {
				continue
			}
			if rule.Console != "" {
				return rule.Title, true
			}
			if !ok {
				found, ok = rule.Title, true
			}
		}
		if ok {
			return found, true
		}
	}
	return "", false
}
