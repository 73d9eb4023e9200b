package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/tailored-agentic-units/toolagents/observability"
)

func TestSlogObserver_Filtering(t *testing.T) {
	tests := []struct {
		name    string
		level   observability.Level
		handler slog.Level
		logged  bool
	}{
		{"debug handler takes verbose", observability.LevelVerbose, slog.LevelDebug, true},
		{"info handler drops verbose", observability.LevelVerbose, slog.LevelInfo, false},
		{"warn handler drops info", observability.LevelInfo, slog.LevelWarn, false},
		{"warn handler takes warning", observability.LevelWarning, slog.LevelWarn, true},
		{"error handler takes error", observability.LevelError, slog.LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: tt.handler}))

			observability.NewSlogObserver(logger).OnEvent(context.Background(),
				observability.NewEvent("kernel.iteration.start", tt.level, "kernel.Run", nil))

			if logged := buf.Len() > 0; logged != tt.logged {
				t.Errorf("logged = %v, want %v (%q)", logged, tt.logged, buf.String())
			}
		})
	}
}

func TestSlogObserver_Record(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	observability.NewSlogObserver(logger).OnEvent(context.Background(),
		observability.NewEvent("kernel.tool.complete", observability.LevelInfo, "kernel.Run", map[string]any{
			"name":      "NewsSearch",
			"iteration": 1,
			"error":     false,
		}))

	out := buf.String()
	for _, want := range []string{"msg=kernel.tool.complete", "source=kernel.Run", "name=NewsSearch"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
	e, i, n := strings.Index(out, "error="), strings.Index(out, "iteration="), strings.Index(out, "name=")
	if e < 0 || !(e < i && i < n) {
		t.Errorf("data attributes not sorted: %s", out)
	}
}

func TestSlogObserver_FollowsDefault(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	observability.NewSlogObserver(nil).OnEvent(context.Background(),
		observability.NewEvent("kernel.response", observability.LevelInfo, "kernel.Run", nil))

	if !strings.Contains(buf.String(), "kernel.response") {
		t.Errorf("event not written to the current default logger: %q", buf.String())
	}
}
