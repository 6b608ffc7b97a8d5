package logging

import (
	"context"
	"log/slog"

	"romdat/internal/stage"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldStage is the standardized structured logging key for pipeline stage names.
	FieldStage = "stage"
	// FieldConsole is the standardized structured logging key for console profiles.
	FieldConsole = "console"
	// FieldRunID is the standardized structured logging key for run identifiers.
	FieldRunID = "run_id"
	// FieldEventType classifies a record for filtering, e.g. rename_collision.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to check next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldDecisionType names the decision being logged.
	FieldDecisionType = "decision_type"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if name, ok := stage.StageFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStage, name))
	}
	if console, ok := stage.ConsoleFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldConsole, console))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
