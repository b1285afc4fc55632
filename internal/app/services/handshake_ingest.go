package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fr0stylo/proxitrace/internal/app/domain"
	"github.com/fr0stylo/proxitrace/internal/app/ports"
	"github.com/fr0stylo/proxitrace/internal/observability"
)

// IngestResult summarizes one handshake batch.
type IngestResult struct {
	Handshakes int `json:"handshakes"`
	Contacts   int `json:"contacts"`
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
	// Expired counts contacts dropped because they are older than the retention period.
	Expired int `json:"expired"`
}

// HandshakeIngestService aggregates handshake batches and stores the resulting contacts.
type HandshakeIngestService struct {
	aggregator *ContactAggregator
	store      ports.ContactStore
	metrics    ingestMetrics
	log        *slog.Logger
}

// NewHandshakeIngestService constructs an ingestion service.
func NewHandshakeIngestService(aggregator *ContactAggregator, store ports.ContactStore, log *slog.Logger) *HandshakeIngestService {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &HandshakeIngestService{
		aggregator: aggregator,
		store:      store,
		metrics:    newIngestMetrics(),
		log:        log.With("component", "handshake_ingest"),
	}
}

// Ingest aggregates the batch and adds every produced contact. Contacts already stored
// for the same bucket count as duplicates, contacts past retention as expired. The first store failure aborts the batch;
// contacts added before it stay stored.
func (s *HandshakeIngestService) Ingest(ctx context.Context, source string, handshakes []domain.Handshake) (IngestResult, error) {
	ctx, span := observability.StartIngestSpan(ctx, source, len(handshakes))
	defer span.End()

	result := IngestResult{Handshakes: len(handshakes)}
	s.metrics.recordBatch(ctx, source, len(handshakes))
	if len(handshakes) == 0 {
		return result, nil
	}

	contacts := s.aggregator.Contacts(handshakes)
	result.Contacts = len(contacts)

	for _, contact := range contacts {
		_, outcome, err := s.store.Add(ctx, contact)
		if err != nil {
			span.RecordError(err)
			s.metrics.recordFailure(ctx, source)
			s.log.ErrorContext(ctx, "store contact failed", "eph_id", contact.EphID.String(), "date", contact.Date, "error", err)
			return result, fmt.Errorf("store contact %s at %s: %w", contact.EphID, contact.Date.Format("2006-01-02T15:04:05Z07:00"), err)
		}
		switch outcome {
		case ports.AddInserted:
			result.Inserted++
		case ports.AddExpired:
			result.Expired++
		default:
			result.Duplicates++
		}
	}

	s.metrics.recordContacts(ctx, source, result)
	span.SetInt("proxitrace.contacts.inserted", int64(result.Inserted))
	span.SetInt("proxitrace.contacts.duplicates", int64(result.Duplicates))
	span.SetInt("proxitrace.contacts.expired", int64(result.Expired))
	s.log.InfoContext(ctx, "handshake batch ingested",
		"handshakes", result.Handshakes,
		"contacts", result.Contacts,
		"inserted", result.Inserted,
		"duplicates", result.Duplicates,
		"expired", result.Expired,
	)
	return result, nil
}
