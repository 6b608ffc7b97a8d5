package dedupe

import (
	"context"
	"fmt"
	"sort"

	"romdat/internal/decision"
	"romdat/internal/stage"
)

// Policy decides which members of a group are retained.
type Policy interface {
	Retain(ctx context.Context, group Group) ([]int, error)
}

// KeepAll retains every member.
type KeepAll struct{}

// Retain returns every index in the group.
func (KeepAll) Retain(_ context.Context, group Group) ([]int, error) {
	indices := make([]int, len(group.Members))
	for i := range indices {
		indices[i] = i
	}
	return indices, nil
}

// KeepFirst retains the first member in listing order.
type KeepFirst struct{}

// Retain returns index 0.
func (KeepFirst) Retain(context.Context, Group) ([]int, error) {
	return []int{0}, nil
}

// Interactive asks a decision source which members to keep.
type Interactive struct {
	Source decision.Source
}

// Retain lists the group's releases and returns the operator's selection
// unvalidated; Resolve checks it.
func (p Interactive) Retain(ctx context.Context, group Group) ([]int, error) {
	if p.Source == nil {
		return nil, fmt.Errorf("interactive policy: %w", stage.ErrConfiguration)
	}
	prompt := fmt.Sprintf("Duplicates of %q: select the files to keep", group.Key)
	return p.Source.ChooseIndices(ctx, prompt, group.Names())
}

// PolicyFor maps a keep rule (prompt, all, first) to a Policy.
func PolicyFor(keep string, source decision.Source) (Policy, error) {
	switch keep {
	case "all":
		return KeepAll{}, nil
	case "first":
		return KeepFirst{}, nil
	case "", "prompt":
		return Interactive{Source: source}, nil
	default:
		return nil, fmt.Errorf("unknown keep rule %q", keep)
	}
}

// Resolve asks policy for the retained indices and checks that they form a
// non-empty subset of the group. The result is sorted and deduplicated.
func Resolve(ctx context.Context, group Group, policy Policy) ([]int, error) {
	retained, err := policy.Retain(ctx, group)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]struct{}, len(retained))
	out := make([]int, 0, len(retained))
	for _, idx := range retained {
		if idx < 0 || idx >= len(group.Members) {
			return nil, stage.Wrap(stage.ErrValidation, stage.Dedupe, "resolve",
				fmt.Sprintf("index %d out of range for %q", idx, group.Key), nil)
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	if len(out) == 0 {
		return nil, stage.Wrap(stage.ErrValidation, stage.Dedupe, "resolve",
			fmt.Sprintf("no members retained for %q", group.Key), nil)
	}
	sort.Ints(out)
	return out, nil
}
