package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSetupOpenTelemetryDisabledIsNoop(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := SetupOpenTelemetry(context.Background(), NewLogger(&buf, "info", false), OpenTelemetryConfig{})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no log output, got %q", buf.String())
	}
}

func TestShutdownChainRunsInReverseAndJoinsErrors(t *testing.T) {
	var order []string
	errFirst := errors.New("first")
	chain := shutdownChain{
		func(context.Context) error { order = append(order, "tracer"); return errFirst },
		func(context.Context) error { order = append(order, "meter"); return nil },
	}

	err := chain.shutdown(context.Background())
	if !errors.Is(err, errFirst) {
		t.Fatalf("expected joined error to wrap %v, got %v", errFirst, err)
	}
	if strings.Join(order, ",") != "meter,tracer" {
		t.Fatalf("unexpected shutdown order %v", order)
	}
}

func TestConfiguredSampler(t *testing.T) {
	cases := map[float64]string{
		1.5:  "AlwaysOnSampler",
		0:    "AlwaysOffSampler",
		-1:   "AlwaysOffSampler",
		0.25: "TraceIDRatioBased{0.25}",
	}
	for ratio, want := range cases {
		if got := configuredSampler(ratio).Description(); !strings.Contains(got, want) {
			t.Fatalf("ratio %v: expected %q in %q", ratio, want, got)
		}
	}
}

func TestTracesEnabled(t *testing.T) {
	if (OpenTelemetryConfig{}).tracesEnabled() {
		t.Fatal("expected traces disabled without endpoint or headers")
	}
	if !(OpenTelemetryConfig{OTLPTraceHeaders: map[string]string{"x": "y"}}).tracesEnabled() {
		t.Fatal("expected headers alone to enable traces")
	}
}
