// Package cli implements the shelfview command-line interface.
//
// The commands compute layouts of scene files, render transition frames,
// scrub through a transition in the terminal and serve the session API
// over HTTP. The CLI is built using cobra and logs via charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - layout: Compute one layout (or one transition frame) as SVG or JSON
//   - transition: Render evenly spaced frames of a transition
//   - scrub: Drive a transition interactively from the keyboard
//   - serve: Run the HTTP session API
//   - cache: Inspect and clear the snapshot cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context and retrieved with loggerFromContext.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes to w with short wall-clock timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command step. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time and any extra key/value pairs,
// e.g. "Rendered 5 frames elapsed=12ms cached=3".
func (p *progress) done(msg string, keyvals ...any) {
	kv := append([]any{"elapsed", time.Since(p.start).Round(time.Millisecond)}, keyvals...)
	p.logger.Info(msg, kv...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext falls back to log.Default when ctx carries no logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
