// Package logging defines the structured-logging interface used across the
// project. Implementations wrap slog for production and keep records in
// memory for tests.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// msg is the fully rendered message; the variadic args are key–value pairs:
//
//	log.Info(ctx, fmt.Sprintf("todo with ID %d retrieved successfully.", id), "todo_id", id)
type Logger interface {
	// Debug logs diagnostic detail, e.g. the start of a guarded operation.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) Logger                  { return n }
