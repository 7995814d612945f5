// Package cli implements the bigpicture command-line interface.
//
// The commands take a source directory, a hierarchy tree file or a saved
// geometry document and run as much of the extract, layout and render pipeline
// as that input needs. Results go through the shared cache (files under the
// XDG cache directory, or redis with --redis).
//
// # Commands
//
//   - extract: Walk a codebase and write its hierarchy tree
//   - layout: Compute box geometry and write a geometry document
//   - render: Generate SVG, HTML, JSON, DOT, node-link, PDF or PNG output
//   - search: List boxes whose label contains a query
//   - view: Browse and toggle boxes in the terminal
//   - serve: Serve the interactive diagram over HTTP
//   - cache: Clear the cache or print its location
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45"). At debug
// level every line is prefixed with the program name so it stands apart from
// the server's request logs.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	if level <= log.DebugLevel {
		l.SetPrefix(appName)
	}
	return l
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with keyvals and the elapsed time rounded to the millisecond.
// Example output: "Loaded 42 boxes input=./src duration=1.234s"
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "duration", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
// This ensures commands always have a valid logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
