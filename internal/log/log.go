// Package log configures the process-wide structured logger.
package log

import (
	"log/slog"
	"os"
)

// LevelTrace is a custom level below debug used for wire-level detail
// such as full HTTP exchanges.
const LevelTrace = slog.LevelDebug - 4

// Setup installs the default logger writing to stderr, with the level
// derived from the repeated verbosity flag: 0 shows info, 1 adds debug,
// 2 and above also trace the network layer.
func Setup(verbosity int) {
	var level slog.Level
	switch {
	case verbosity <= 0:
		level = slog.LevelInfo
	case verbosity == 1:
		level = slog.LevelDebug
	default:
		level = LevelTrace
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevelName,
	})
	slog.SetDefault(slog.New(handler))
}

// replaceLevelName renders LevelTrace as TRACE instead of DEBUG-4.
func replaceLevelName(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if level, ok := a.Value.Any().(slog.Level); ok && level == LevelTrace {
			a.Value = slog.StringValue("TRACE")
		}
	}
	return a
}
