// Package logging provides structured logging using Go's standard library log/slog.
// It writes JSON by default, or plain text for terminals, and integrates with
// Uber's Fx dependency injection framework.
package logging
