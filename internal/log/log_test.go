package log

import (
	"context"
	"log/slog"
	"testing"
)

func TestSetup_Levels(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantInfo  bool
		wantDebug bool
		wantTrace bool
	}{
		{"default", 0, true, false, false},
		{"single -v", 1, true, true, false},
		{"double -v", 2, true, true, true},
		{"beyond double", 5, true, true, true},
		{"negative", -1, true, false, false},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Setup(tt.verbosity)

			logger := slog.Default()
			if got := logger.Enabled(ctx, slog.LevelInfo); got != tt.wantInfo {
				t.Errorf("Enabled(info) = %v, want %v", got, tt.wantInfo)
			}
			if got := logger.Enabled(ctx, slog.LevelDebug); got != tt.wantDebug {
				t.Errorf("Enabled(debug) = %v, want %v", got, tt.wantDebug)
			}
			if got := logger.Enabled(ctx, LevelTrace); got != tt.wantTrace {
				t.Errorf("Enabled(trace) = %v, want %v", got, tt.wantTrace)
			}
		})
	}
}

func TestReplaceLevelName(t *testing.T) {
	attr := replaceLevelName(nil, slog.Any(slog.LevelKey, LevelTrace))
	if attr.Value.String() != "TRACE" {
		t.Errorf("trace level renders as %q, want %q", attr.Value.String(), "TRACE")
	}

	attr = replaceLevelName(nil, slog.Any(slog.LevelKey, slog.LevelDebug))
	if attr.Value.String() == "TRACE" {
		t.Error("debug level should not render as TRACE")
	}

	attr = replaceLevelName(nil, slog.String("msg", "unrelated"))
	if attr.Value.String() != "unrelated" {
		t.Errorf("unrelated attr changed to %q", attr.Value.String())
	}
}
