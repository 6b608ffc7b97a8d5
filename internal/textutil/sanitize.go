package textutil

import "strings"

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", " -",
	"*", "-",
	"?", "",
	"\"", "'",
	"<", "",
	">", "",
	"|", "",
	"\x00", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a base name.
// Slashes, backslashes, and asterisks become dashes, a colon becomes " -"
// so "Zelda: Link" reads "Zelda - Link", and other unsafe characters are
// removed. Runs of whitespace collapse to one space.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.Join(strings.Fields(fileNameReplacer.Replace(name)), " ")
}
