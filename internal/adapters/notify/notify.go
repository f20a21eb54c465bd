// Package notify provides Notifier implementations: a writer-backed one for
// the CLI, a logger-backed one for embedding, and a no-op.
package notify

import (
	"fmt"
	"io"

	"github.com/taskflow/core/internal/infrastructure/logger"
)

// Writer prints notifications as plain lines, one per message.
type Writer struct {
	out io.Writer
}

// NewWriter creates a notifier that writes to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) Success(msg string) {
	fmt.Fprintf(w.out, "✓ %s\n", msg)
}

func (w *Writer) Info(msg string) {
	fmt.Fprintf(w.out, "• %s\n", msg)
}

func (w *Writer) Warn(msg string) {
	fmt.Fprintf(w.out, "! %s\n", msg)
}

// Logger forwards notifications to the application logger.
type Logger struct {
	log *logger.Logger
}

// NewLogger creates a notifier backed by the application logger.
func NewLogger(log *logger.Logger) *Logger {
	return &Logger{log: log.WithComponent("notify")}
}

func (l *Logger) Success(msg string) { l.log.Infow(msg, "kind", "success") }
func (l *Logger) Info(msg string)    { l.log.Infow(msg, "kind", "info") }
func (l *Logger) Warn(msg string)    { l.log.Warnw(msg, "kind", "warning") }

// Noop discards all notifications.
type Noop struct{}

func (Noop) Success(string) {}
func (Noop) Info(string)    {}
func (Noop) Warn(string)    {}
