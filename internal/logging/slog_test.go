package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	return entry
}

func TestSlogLogger_Levels(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		level string
		log   func(l *SlogLogger)
	}{
		{"DEBUG", func(l *SlogLogger) { l.Debug(ctx, "msg") }},
		{"INFO", func(l *SlogLogger) { l.Info(ctx, "msg") }},
		{"WARN", func(l *SlogLogger) { l.Warn(ctx, "msg") }},
		{"ERROR", func(l *SlogLogger) { l.Error(ctx, "msg") }},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, buf := newTestLogger(t)
			tt.log(l)

			entry := lastEntry(t, buf)
			if entry["level"] != tt.level {
				t.Fatalf("expected level %s, got %v", tt.level, entry["level"])
			}
			if entry["msg"] != "msg" {
				t.Fatalf("unexpected msg: %v", entry["msg"])
			}
		})
	}
}

func TestSlogLogger_WithAddsAttrs(t *testing.T) {
	l, buf := newTestLogger(t)

	child := l.With("module", "cli")
	child.Info(context.Background(), "hello", "k", "v")

	entry := lastEntry(t, buf)
	if entry["module"] != "cli" {
		t.Fatalf("missing attr from With: %v", entry)
	}
	if entry["k"] != "v" {
		t.Fatalf("missing call attr: %v", entry)
	}
}
