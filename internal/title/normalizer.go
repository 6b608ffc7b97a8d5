package title

import (
	"fmt"
	"regexp"
	"strings"
)

// bracketGroup matches one innermost parenthesized or square-bracketed group.
var bracketGroup = regexp.MustCompile(`\(([^()\[\]]*)\)|\[([^()\[\]]*)\]`)

// Options configures a Normalizer.
type Options struct {
	// ProtectedPatterns are regular expressions matched case-insensitively
	// against the full contents of a bracketed group, e.g. `Disc \d+`.
	ProtectedPatterns []string
	// PreserveHyphens keeps '-' in fuzzy-clean strings.
	PreserveHyphens bool
	// FoldAccents decomposes accented letters before fuzzy cleaning.
	FoldAccents bool
}

// Normalizer turns raw filenames into Results.
type Normalizer struct {
	opts      Options
	protected []*regexp.Regexp
}

// Result is the normalized view of one filename.
type Result struct {
	Raw  string `json:"raw"`
	Base string `json:"base"`
	Ext  string `json:"ext"`
	// Title is Base with every bracketed group removed, protected ones included.
	Title string `json:"title"`
	// Tag holds the protected groups in their original order, space separated.
	Tag string `json:"tag,omitempty"`
	// Key is the strict comparison key: Title followed by Tag.
	Key string `json:"key"`
	// Clean is the fuzzy-clean form of Title.
	Clean string `json:"clean"`
}

// New compiles the protected patterns in opts.
func New(opts Options) (*Normalizer, error) {
	n := &Normalizer{opts: opts}
	for _, pattern := range opts.ProtectedPatterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)^\s*(?:` + pattern + `)\s*$`)
		if err != nil {
			return nil, fmt.Errorf("protected pattern %q: %w", pattern, err)
		}
		n.protected = append(n.protected, re)
	}
	return n, nil
}

// MustNew is New for patterns known to be valid.
func MustNew(opts Options) *Normalizer {
	n, err := New(opts)
	if err != nil {
		panic(err)
	}
	return n
}

// Options returns the options the normalizer was built with.
func (n *Normalizer) Options() Options {
	return n.opts
}

// Normalize splits the extension from raw and normalizes the remainder.
func (n *Normalizer) Normalize(raw string) Result {
	base, ext := SplitExt(raw)
	res := n.NormalizeBase(base)
	res.Raw = raw
	res.Ext = ext
	return res
}

// NormalizeBase normalizes a name that carries no extension, such as a
// reference title.
func (n *Normalizer) NormalizeBase(base string) Result {
	stripped, tags := n.strip(base)
	res := Result{
		Raw:   base,
		Base:  base,
		Title: stripped,
		Tag:   strings.Join(tags, " "),
	}
	if res.Title != "" {
		res.Key = joinTag(res.Title, res.Tag)
	}
	res.Clean = FuzzyClean(res.Title, n.opts)
	return res
}

// MatchKey returns the fuzzy-clean string for s, with annotations removed.
func (n *Normalizer) MatchKey(s string) string {
	return n.NormalizeBase(s).Clean
}

// IsProtected reports whether the contents of a bracketed group match one of
// the protected patterns.
func (n *Normalizer) IsProtected(inner string) bool {
	inner = collapseSpaces(inner)
	for _, re := range n.protected {
		if re.MatchString(inner) {
			return true
		}
	}
	return false
}

// Retag replaces the protected groups in name with tag, keeping every other
// bracketed group where it is. An empty tag leaves name as it is apart from
// whitespace, so a reference that carries its own disc marker keeps it.
func (n *Normalizer) Retag(name, tag string) string {
	name = collapseSpaces(name)
	if tag == "" {
		return name
	}
	stripped := bracketGroup.ReplaceAllStringFunc(name, func(group string) string {
		if n.IsProtected(group[1 : len(group)-1]) {
			return " "
		}
		return group
	})
	return joinTag(collapseSpaces(stripped), tag)
}

// WithTag appends tag to name unless name already ends with it.
func WithTag(name, tag string) string {
	name = collapseSpaces(name)
	if tag == "" || strings.HasSuffix(strings.ToLower(name), strings.ToLower(tag)) {
		return name
	}
	return joinTag(name, tag)
}

func (n *Normalizer) strip(base string) (string, []string) {
	var tags []string
	current := base
	for bracketGroup.MatchString(current) {
		current = bracketGroup.ReplaceAllStringFunc(current, func(group string) string {
			inner := collapseSpaces(group[1 : len(group)-1])
			if n.IsProtected(inner) {
				tags = append(tags, group[:1]+inner+group[len(group)-1:])
			}
			return " "
		})
	}
	return collapseSpaces(current), tags
}

func joinTag(title, tag string) string {
	if tag == "" {
		return title
	}
	if title == "" {
		return tag
	}
	return title + " " + tag
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
