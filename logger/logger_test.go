// SPDX-License-Identifier: GPL-3.0-or-later

package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_levels(t *testing.T) {
	defer Level.Set(Level.lvl.Level())

	tests := map[string]struct {
		level   string
		log     func(l *Logger)
		wantOut []string
		noOut   bool
	}{
		"info passes at info level": {
			level:   "info",
			log:     func(l *Logger) { l.Infof("encoded %d families", 3) },
			wantOut: []string{"level=info", `msg="encoded 3 families"`},
		},
		"debug dropped at info level": {
			level: "info",
			log:   func(l *Logger) { l.Debug("skipped") },
			noOut: true,
		},
		"notice has its own name": {
			level:   "debug",
			log:     func(l *Logger) { l.Notice("reloaded") },
			wantOut: []string{"level=notice", "msg=reloaded"},
		},
		"with adds attributes": {
			level:   "warning",
			log:     func(l *Logger) { l.With("input", "a.json").Warning("bad input") },
			wantOut: []string{"level=warn", "input=a.json"},
		},
		"off disables errors": {
			level: "off",
			log:   func(l *Logger) { l.Error("boom") },
			noOut: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			Level.SetByName(test.level)
			test.log(NewWithWriter(&buf))

			if test.noOut {
				assert.Empty(t, buf.String())
				return
			}
			for _, s := range test.wantOut {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestLogger_nilIsSafe(t *testing.T) {
	var l *Logger

	assert.NotPanics(t, func() {
		l.Infof("x %d", 1)
		l.With("k", "v").Error("y")
	})
	assert.False(t, l.DebugEnabled())
}

func TestLevel_SetByName_unknownKeepsLevel(t *testing.T) {
	defer Level.Set(Level.lvl.Level())

	Level.Set(slog.LevelWarn)
	Level.SetByName("verbose")

	assert.True(t, Level.Enabled(slog.LevelWarn))
	assert.False(t, Level.Enabled(slog.LevelInfo))
}
