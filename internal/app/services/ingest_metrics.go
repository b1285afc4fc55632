package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/fr0stylo/proxitrace/internal/app/ports"
)

type ingestMetrics struct {
	batches    metric.Int64Counter
	handshakes metric.Int64Counter
	contacts   metric.Int64Counter
	failures   metric.Int64Counter
	swept      metric.Int64Counter
}

func newIngestMetrics() ingestMetrics {
	meter := otel.Meter("github.com/fr0stylo/proxitrace/internal/app/services")
	batches, _ := meter.Int64Counter("proxitrace.ingest.batches")
	handshakes, _ := meter.Int64Counter("proxitrace.ingest.handshakes")
	contacts, _ := meter.Int64Counter("proxitrace.ingest.contacts")
	failures, _ := meter.Int64Counter("proxitrace.ingest.failures")
	swept, _ := meter.Int64Counter("proxitrace.retention.deleted")
	return ingestMetrics{
		batches:    batches,
		handshakes: handshakes,
		contacts:   contacts,
		failures:   failures,
		swept:      swept,
	}
}

func (m ingestMetrics) recordBatch(ctx context.Context, source string, handshakes int) {
	attrs := metric.WithAttributes(sourceAttr(source))
	m.batches.Add(ctx, 1, attrs)
	m.handshakes.Add(ctx, int64(handshakes), attrs)
}

func (m ingestMetrics) recordContacts(ctx context.Context, source string, result IngestResult) {
	counts := map[ports.AddOutcome]int{
		ports.AddInserted:  result.Inserted,
		ports.AddDuplicate: result.Duplicates,
		ports.AddExpired:   result.Expired,
	}
	for outcome, count := range counts {
		m.contacts.Add(ctx, int64(count), metric.WithAttributes(
			sourceAttr(source),
			attribute.String("outcome", outcome.String()),
		))
	}
}

func (m ingestMetrics) recordFailure(ctx context.Context, source string) {
	m.failures.Add(ctx, 1, metric.WithAttributes(sourceAttr(source)))
}

func (m ingestMetrics) recordSweep(ctx context.Context, deleted int64) {
	m.swept.Add(ctx, deleted)
}

func sourceAttr(source string) attribute.KeyValue {
	source = strings.TrimSpace(source)
	if source == "" {
		source = "unknown"
	}
	return attribute.String("source", source)
}
