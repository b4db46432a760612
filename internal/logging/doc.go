// Package logging assembles the structured slog loggers used by docdist.
//
// It owns the console and JSON handlers, maps configuration onto levels and
// outputs, and exposes context helpers so every line emitted during one
// comparison carries the same run_id. Logs go to stderr by default; stdout is
// reserved for comparison results.
//
// A no-op logger is available for tests and for library callers that do not
// care about diagnostics.
package logging
