package stage

import "context"

type contextKey string

const (
	stageKey   contextKey = "stage"
	consoleKey contextKey = "console"
	runIDKey   contextKey = "run_id"
)

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(stageKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithConsole annotates context with the console profile being processed.
func WithConsole(ctx context.Context, console string) context.Context {
	if console == "" {
		return ctx
	}
	return context.WithValue(ctx, consoleKey, console)
}

// ConsoleFromContext returns the console profile name if present.
func ConsoleFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(consoleKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRunID annotates context with the run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
