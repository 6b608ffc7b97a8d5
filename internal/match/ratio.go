package match

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Ratio returns the Ratcliff/Obershelp similarity of a and b in [0,1],
// compared rune by rune. Two empty strings score 1.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

// TokenSetRatio scores a and b after reducing each to its sorted set of
// whitespace-delimited tokens.
func TokenSetRatio(a, b string) float64 {
	return Ratio(tokenSet(a), tokenSet(b))
}

func tokenSet(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	seen := make(map[string]struct{}, len(fields))
	unique := fields[:0]
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		unique = append(unique, f)
	}
	sort.Strings(unique)
	return strings.Join(unique, " ")
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
