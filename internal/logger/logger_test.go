package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer

	l := NewLoggerWithWriter("warn", &buf)
	l.Info("hidden")
	l.Warn("shown", "url", "https://example.com/sub")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered at warn level: %q", out)
	}

	if !strings.Contains(out, "url=https://example.com/sub") {
		t.Errorf("expected url attribute in output: %q", out)
	}
}

func TestLogger_WithSharesLevel(t *testing.T) {
	var buf bytes.Buffer

	l := NewLoggerWithWriter("error", &buf)
	child := l.With("run_id", "abc")

	l.SetLevel("debug")
	child.Debug("after level change")

	out := buf.String()
	if !strings.Contains(out, "run_id=abc") {
		t.Errorf("expected child attributes in output: %q", out)
	}
}
