// Package logging assembles structured slog loggers and formatting helpers used
// across animelib.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and defines the standard field keys (component, run_id, link_key,
// mal_id) so every reconciliation log line can be correlated to a run and a
// folder. The package also provides a no-op logger for tests and wiring code
// that cannot fail.
//
// Operator-facing progress messages are not routed through here; they go to
// the console via the progress spinner. Logs are the durable record.
package logging
