// Package logging assembles structured slog loggers used across the client.
//
// It owns the configurable console/JSON handlers, routes output to stderr and
// an optional rotating log file, and exposes context-aware helpers so orchestrators
// tag log lines with lifecycle names, document filenames, and correlation
// IDs. A no-op logger is available for tests and wiring code that cannot fail.
package logging
