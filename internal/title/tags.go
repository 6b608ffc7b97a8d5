package title

import (
	"regexp"
	"strconv"
	"strings"
)

var discNumberPattern = regexp.MustCompile(`(?i)\b(dis[ck])\s*(\d+)`)

// Disc is the disc marker parsed out of a protected tag.
type Disc struct {
	Label  string // "Disc" or "Disk", as written
	Number int
}

// ParseDisc extracts the disc label and number from tag. Side-only tags such
// as "(Side A)" carry no disc number and report false.
func ParseDisc(tag string) (Disc, bool) {
	m := discNumberPattern.FindStringSubmatch(tag)
	if m == nil {
		return Disc{}, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n <= 0 {
		return Disc{}, false
	}
	return Disc{Label: canonicalLabel(m[1]), Number: n}, true
}

// Tag renders the disc as a parenthesized protected tag, e.g. "(Disc 2)".
func (d Disc) Tag() string {
	label := d.Label
	if label == "" {
		label = "Disc"
	}
	return "(" + label + " " + strconv.Itoa(d.Number) + ")"
}

// IsPlainDisc reports whether tag is exactly a single "(Disc N)" marker with
// no side or other qualifiers.
func IsPlainDisc(tag string) bool {
	d, ok := ParseDisc(tag)
	if !ok {
		return false
	}
	return strings.EqualFold(collapseSpaces(tag), d.Tag())
}

func canonicalLabel(label string) string {
	if strings.EqualFold(label, "disk") {
		return "Disk"
	}
	return "Disc"
}
