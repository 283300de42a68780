// Package logging assembles structured slog loggers and formatting helpers used
// across podcastctl.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so API calls automatically tag log
// lines with podcast IDs, operation names, and request IDs. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// CLI commands write their results to stdout, so loggers built here default to
// stderr.
package logging
