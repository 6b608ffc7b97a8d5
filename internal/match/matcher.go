package match

import (
	"regexp"
	"slices"
	"sort"

	"romdat/internal/title"
)

// DefaultThreshold is the score a candidate must strictly exceed.
const DefaultThreshold = 0.85

var digitRun = regexp.MustCompile(`\d+`)

// Cleaner reduces a name to the string used for comparison.
type Cleaner interface {
	MatchKey(name string) string
}

// Options configures a Matcher.
type Options struct {
	Threshold float64
	// Cleaner defaults to a Normalizer with no protected patterns.
	Cleaner Cleaner
	// RequireNumberAgreement rejects candidates whose digit runs differ from
	// the source's, so "Tekken 2" never matches "Tekken 3".
	RequireNumberAgreement bool
}

// Matcher scores source names against candidate lists.
type Matcher struct {
	threshold     float64
	cleaner       Cleaner
	requireDigits bool
}

// Candidate is one scored comparison.
type Candidate struct {
	Source    string  `json:"source"`
	Candidate string  `json:"candidate"`
	Score     float64 `json:"score"`
	Exact     bool    `json:"exact,omitempty"`
}

// New builds a Matcher from opts.
func New(opts Options) *Matcher {
	m := &Matcher{
		threshold:     opts.Threshold,
		cleaner:       opts.Cleaner,
		requireDigits: opts.RequireNumberAgreement,
	}
	if m.threshold <= 0 {
		m.threshold = DefaultThreshold
	}
	if m.cleaner == nil {
		m.cleaner = title.MustNew(title.Options{})
	}
	return m
}

// Threshold returns the configured acceptance bound.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Best returns the best candidate for source, or false when none is confident.
func (m *Matcher) Best(source string, candidates []string) (string, bool) {
	return m.Pool(candidates).Best(source)
}

// BestScored is Best with the winning score attached.
func (m *Matcher) BestScored(source string, candidates []string) (Candidate, bool) {
	return m.Pool(candidates).BestScored(source)
}

// Pool pre-cleans candidates for repeated lookups.
func (m *Matcher) Pool(candidates []string) *Pool {
	p := &Pool{matcher: m, entries: make([]poolEntry, 0, len(candidates))}
	for _, c := range candidates {
		clean := m.cleaner.MatchKey(c)
		p.entries = append(p.entries, poolEntry{
			name:   c,
			clean:  clean,
			tokens: tokenSet(clean),
			digits: digitRun.FindAllString(clean, -1),
		})
	}
	return p
}

// Pool is a candidate list prepared for matching.
type Pool struct {
	matcher *Matcher
	entries []poolEntry
}

type poolEntry struct {
	name   string
	clean  string
	tokens string
	digits []string
}

// Len returns the number of candidates in the pool.
func (p *Pool) Len() int {
	return len(p.entries)
}

// Best returns the best candidate name for source.
func (p *Pool) Best(source string) (string, bool) {
	c, ok := p.BestScored(source)
	return c.Candidate, ok
}

// BestScored returns the winning candidate and its score.
func (p *Pool) BestScored(source string) (Candidate, bool) {
	clean := p.matcher.cleaner.MatchKey(source)
	if clean == "" {
		return Candidate{}, false
	}
	for _, e := range p.entries {
		if e.clean == clean {
			return Candidate{Source: source, Candidate: e.name, Score: 1, Exact: true}, true
		}
	}

	tokens := tokenSet(clean)
	digits := digitRun.FindAllString(clean, -1)
	best := Candidate{Source: source}
	highest := p.matcher.threshold
	found := false
	for _, e := range p.entries {
		if !p.eligible(e, digits) {
			continue
		}
		score := Ratio(tokens, e.tokens)
		if score > highest {
			highest = score
			best.Candidate = e.name
			best.Score = score
			found = true
		}
	}
	return best, found
}

// Rank scores every eligible candidate and returns the top limit by score,
// keeping candidate order among equal scores. A limit <= 0 returns all.
func (p *Pool) Rank(source string, limit int) []Candidate {
	clean := p.matcher.cleaner.MatchKey(source)
	digits := digitRun.FindAllString(clean, -1)
	out := make([]Candidate, 0, len(p.entries))
	for _, e := range p.entries {
		if !p.eligible(e, digits) {
			continue
		}
		c := Candidate{Source: source, Candidate: e.name}
		if clean != "" && e.clean == clean {
			c.Score, c.Exact = 1, true
		} else {
			c.Score = TokenSetRatio(clean, e.clean)
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Exact != out[j].Exact {
			return out[i].Exact
		}
		return out[i].Score > out[j].Score
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Accepts reports whether a score clears the threshold.
func (p *Pool) Accepts(c Candidate) bool {
	return c.Exact || c.Score > p.matcher.threshold
}

func (p *Pool) eligible(e poolEntry, digits []string) bool {
	if e.clean == "" {
		return false
	}
	if !p.matcher.requireDigits {
		return true
	}
	return slices.Equal(e.digits, digits)
}
