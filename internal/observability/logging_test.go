package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestWrapSlogHandlerAddsContextFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "debug", false)

	ctx := WithRequestMetadata(context.Background(), "req-1", "/api/v1/contacts")
	ctx = WithBatchSource(ctx, "mqtt:proxitrace/handshakes/gw-1")
	log.DebugContext(ctx, "hello")

	out := buf.String()
	for _, want := range []string{"request_id=req-1", "route=/api/v1/contacts", "batch_source=mqtt:proxitrace/handshakes/gw-1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := ParseLevel(input); got != want {
			t.Fatalf("ParseLevel(%q)=%v want=%v", input, got, want)
		}
	}
}

func TestWithBatchSourceIgnoresBlank(t *testing.T) {
	ctx := WithBatchSource(context.Background(), "  ")
	if _, ok := BatchSourceFromContext(ctx); ok {
		t.Fatal("blank source must not be stored")
	}
}

func TestNewLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "info", true)

	log.InfoContext(WithBatchSource(context.Background(), "http"), "batch stored", "contacts", 3)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "batch stored" || record["batch_source"] != "http" || record["contacts"] != float64(3) {
		t.Fatalf("unexpected record: %v", record)
	}
}
