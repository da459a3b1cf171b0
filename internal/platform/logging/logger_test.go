package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]Level{
		"debug":   LevelDebug,
		"":        LevelInfo,
		"WARNING": LevelWarn,
		" error ": LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q: got=%v want=%v", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLogger_WarnContextAddsTraceAndError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewJSONTo(LevelInfo, &buf)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.DebugContext(ctx, "hidden")
	logger.WarnContext(ctx, "snapshot invalidation failed", "year", 2025, "error", errors.New("store down"))
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %s", out)
	}
	for _, want := range []string{`"level":"WARN"`, `"year":2025`, `"error":"store down"`, `"trace_id":"4bf92f3577b34da6a3ce929d0e0e4736"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in %s", want, out)
		}
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	if got, err := ParseFormat(""); err != nil || got != FormatJSON {
		t.Fatalf("default format: got=%q err=%v", got, err)
	}
	if got, err := ParseFormat(" Console "); err != nil || got != FormatConsole {
		t.Fatalf("console format: got=%q err=%v", got, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestLogger_NamedChildSharesSyncAndFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	root := NewJSONTo(LevelDebug, &buf)
	child := root.Named("scheduler").With("year", 2026)

	child.Info("ranking refreshed", "took", 1500*time.Millisecond)
	if err := child.Sync(); err != nil {
		t.Fatalf("sync child: %v", err)
	}
	if err := root.Sync(); err != nil {
		t.Fatalf("second sync should be a no-op: %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"logger":"scheduler"`, `"year":2026`, `"took":"1.5s"`, `"msg":"ranking refreshed"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in %s", want, out)
		}
	}
	if !root.Enabled(LevelDebug) || NewNop().Enabled(LevelError) {
		t.Fatalf("unexpected Enabled results")
	}
}
