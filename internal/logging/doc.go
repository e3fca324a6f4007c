// Package logging assembles the structured slog loggers used across both
// binaries.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes a component helper so batch and service code tags
// log lines uniformly. A no-op logger is available for tests and wiring
// code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape and routing.
package logging
