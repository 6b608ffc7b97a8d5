package decision

import (
	"context"
	"errors"
	"sync"
)

// ErrInvalidSelection reports a selection that is empty or out of range.
var ErrInvalidSelection = errors.New("invalid selection")

// Source answers operator questions.
type Source interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
	// ChooseIndices returns zero-based indices into options.
	ChooseIndices(ctx context.Context, prompt string, options []string) ([]int, error)
}

// Auto answers without asking. Confirm returns Approve; ChooseIndices keeps
// every option when KeepAll is set and only the first otherwise.
type Auto struct {
	Approve bool
	KeepAll bool
}

// Confirm returns a.Approve unless ctx is done.
func (a Auto) Confirm(ctx context.Context, _ string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return a.Approve, nil
}

// ChooseIndices keeps index 0, or every index when a.KeepAll is set.
func (a Auto) ChooseIndices(ctx context.Context, _ string, options []string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return nil, ErrInvalidSelection
	}
	if !a.KeepAll {
		return []int{0}, nil
	}
	return allIndices(len(options)), nil
}

// Scripted replays queued answers and records every prompt it receives.
// When a queue runs dry, Confirm returns DefaultConfirm and ChooseIndices
// keeps every option.
type Scripted struct {
	mu             sync.Mutex
	Confirms       []bool
	Choices        [][]int
	DefaultConfirm bool
	Prompts        []string
}

// Confirm records prompt and pops the next queued answer.
func (s *Scripted) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prompts = append(s.Prompts, prompt)
	if len(s.Confirms) == 0 {
		return s.DefaultConfirm, nil
	}
	answer := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return answer, nil
}

// ChooseIndices records prompt and pops the next queued selection.
func (s *Scripted) ChooseIndices(ctx context.Context, prompt string, options []string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prompts = append(s.Prompts, prompt)
	if len(s.Choices) == 0 {
		return allIndices(len(options)), nil
	}
	choice := s.Choices[0]
	s.Choices = s.Choices[1:]
	return append([]int(nil), choice...), nil
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
