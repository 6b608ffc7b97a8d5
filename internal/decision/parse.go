package decision

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseIndices reads a one-based selection such as "1,3", "2 4", "1-3" or
// "all" and returns sorted, de-duplicated zero-based indices below n.
func ParseIndices(input string, n int) ([]int, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return nil, fmt.Errorf("%w: nothing selected", ErrInvalidSelection)
	}
	if input == "all" || input == "a" {
		return allIndices(n), nil
	}

	seen := map[int]struct{}{}
	fields := strings.FieldsFunc(input, func(r rune) bool { return r == ',' || r == ' ' || r == ';' })
	for _, field := range fields {
		lo, hi, err := parseRange(field)
		if err != nil {
			return nil, err
		}
		if lo < 1 || hi > n || lo > hi {
			return nil, fmt.Errorf("%w: %q is outside 1-%d", ErrInvalidSelection, field, n)
		}
		for i := lo; i <= hi; i++ {
			seen[i-1] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("%w: nothing selected", ErrInvalidSelection)
	}
	out := make([]int, 0, len(seen))
	for idx := range seen {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out, nil
}

func parseRange(field string) (int, int, error) {
	if from, to, ok := strings.Cut(field, "-"); ok {
		lo, err := strconv.Atoi(strings.TrimSpace(from))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q is not a number", ErrInvalidSelection, from)
		}
		hi, err := strconv.Atoi(strings.TrimSpace(to))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q is not a number", ErrInvalidSelection, to)
		}
		return lo, hi, nil
	}
	v, err := strconv.Atoi(field)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q is not a number", ErrInvalidSelection, field)
	}
	return v, v, nil
}
