// SPDX-License-Identifier: GPL-3.0-or-later

package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
)

// Logger is a thin leveled wrapper around slog.Logger.
// A nil *Logger is valid and discards everything.
type Logger struct {
	sl *slog.Logger
}

// New returns a logger writing to stderr. A colored terminal handler is used
// when stderr is a terminal.
func New() *Logger {
	return newStderrLogger(4)
}

// NewWithWriter returns a logger that writes plain text records to w.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{sl: slog.New(newTextHandler(w))}
}

func newStderrLogger(callDepth int) *Logger {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		// skip 2 slog pkg calls plus this package's calls
		return &Logger{sl: slog.New(withCallDepth(callDepth, newTerminalHandler(os.Stderr)))}
	}
	return &Logger{sl: slog.New(newTextHandler(os.Stderr))}
}

// With returns a logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	if l.isNil() {
		return l
	}
	return &Logger{sl: l.sl.With(args...)}
}

func (l *Logger) Error(a ...any)   { l.log(slog.LevelError, fmt.Sprint(a...)) }
func (l *Logger) Warning(a ...any) { l.log(slog.LevelWarn, fmt.Sprint(a...)) }
func (l *Logger) Notice(a ...any)  { l.log(levelNotice, fmt.Sprint(a...)) }
func (l *Logger) Info(a ...any)    { l.log(slog.LevelInfo, fmt.Sprint(a...)) }
func (l *Logger) Debug(a ...any)   { l.log(slog.LevelDebug, fmt.Sprint(a...)) }

func (l *Logger) Errorf(format string, a ...any)   { l.log(slog.LevelError, fmt.Sprintf(format, a...)) }
func (l *Logger) Warningf(format string, a ...any) { l.log(slog.LevelWarn, fmt.Sprintf(format, a...)) }
func (l *Logger) Noticef(format string, a ...any)  { l.log(levelNotice, fmt.Sprintf(format, a...)) }
func (l *Logger) Infof(format string, a ...any)    { l.log(slog.LevelInfo, fmt.Sprintf(format, a...)) }
func (l *Logger) Debugf(format string, a ...any)   { l.log(slog.LevelDebug, fmt.Sprintf(format, a...)) }

// DebugEnabled reports whether debug records would be written. Callers use it
// to avoid building expensive messages.
func (l *Logger) DebugEnabled() bool {
	return !l.isNil() && Level.Enabled(slog.LevelDebug)
}

func (l *Logger) log(level slog.Level, msg string) {
	if l.isNil() {
		return
	}
	l.sl.Log(context.Background(), level, msg)
}

func (l *Logger) isNil() bool { return l == nil || l.sl == nil }
