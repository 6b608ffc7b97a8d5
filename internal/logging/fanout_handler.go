package logging

import (
	"context"
	"log/slog"
	"slices"
)

// fanoutHandler sends each record to the console handler and the run log
// file handler, each filtering by its own level.
type fanoutHandler []slog.Handler

func newFanoutHandler(handlers ...slog.Handler) slog.Handler {
	live := slices.DeleteFunc(slices.Clone(handlers), func(h slog.Handler) bool { return h == nil })
	switch len(live) {
	case 0:
		return NoopHandler{}
	case 1:
		return live[0]
	default:
		return fanoutHandler(live)
	}
}

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(f, func(h slog.Handler) bool { return h.Enabled(ctx, level) })
}

// Handle returns the first error any handler reported.
func (f fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var first error
	for _, h := range f {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f fanoutHandler) derive(fn func(slog.Handler) slog.Handler) fanoutHandler {
	next := make(fanoutHandler, len(f))
	for i, h := range f {
		next[i] = fn(h)
	}
	return next
}
