package title

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxExtLen = 5

// FuzzyClean lowercases s, drops everything outside [a-z0-9 ] (keeping '-'
// when opts.PreserveHyphens is set), and collapses whitespace. Applying it to
// its own output is a no-op.
func FuzzyClean(s string, opts Options) string {
	if opts.FoldAccents {
		s = foldAccents(s)
	}
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' && opts.PreserveHyphens:
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return collapseSpaces(b.String())
}

// SplitExt separates a trailing file extension from name. Only short
// alphanumeric suffixes count, so "Dr. Mario" keeps its period.
func SplitExt(name string) (string, string) {
	ext := filepath.Ext(name)
	if len(ext) < 2 || len(ext)-1 > maxExtLen {
		return name, ""
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return name, ""
		}
	}
	if len(ext) == len(name) {
		return name, ""
	}
	return name[:len(name)-len(ext)], ext
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
