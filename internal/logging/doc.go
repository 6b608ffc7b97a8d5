// Package logging assembles structured slog loggers and formatting helpers used
// across romdat.
//
// It owns the console and JSON handlers, the per-run log file, and the
// run_id stamp every record carries. Context-aware helpers tag log lines with
// the console profile and pipeline stage, and WarnWithContext enforces the
// event_type / error_hint / impact triple on warnings. A no-op logger is
// provided for tests and wiring code that cannot fail.
package logging
