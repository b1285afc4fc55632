package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fr0stylo/proxitrace/internal/app/domain"
	"github.com/fr0stylo/proxitrace/internal/app/ports"
	portmocks "github.com/fr0stylo/proxitrace/internal/app/ports/mocks"
)

func TestHandshakeIngestService_Ingest_AddsAggregatedContacts(t *testing.T) {
	store := portmocks.NewMockContactStore(t)
	svc := NewHandshakeIngestService(NewContactAggregator(testMatchingConfig(), nil), store, nil)

	store.EXPECT().Add(mock.Anything, mock.MatchedBy(func(c domain.Contact) bool {
		return string(c.EphID) == "alpha" && c.WindowCount == 1 && c.Date.Equal(epochT0)
	})).Return(int64(1), ports.AddInserted, nil).Once()
	store.EXPECT().Add(mock.Anything, mock.MatchedBy(func(c domain.Contact) bool {
		return string(c.EphID) == "bravo"
	})).Return(int64(0), ports.AddDuplicate, nil).Once()

	result, err := svc.Ingest(context.Background(), "test", []domain.Handshake{
		handshakeWithAttenuation("alpha", 0, 5),
		handshakeWithAttenuation("alpha", 30*time.Second, 6),
		handshakeWithAttenuation("bravo", 10*time.Second, 2),
		handshakeWithAttenuation("charlie", 10*time.Second, 80),
	})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if result.Handshakes != 4 || result.Contacts != 2 || result.Inserted != 1 || result.Duplicates != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestHandshakeIngestService_Ingest_CountsExpiredSeparately(t *testing.T) {
	store := portmocks.NewMockContactStore(t)
	svc := NewHandshakeIngestService(NewContactAggregator(testMatchingConfig(), nil), store, nil)

	store.EXPECT().Add(mock.Anything, mock.Anything).Return(int64(0), ports.AddExpired, nil).Once()

	result, err := svc.Ingest(context.Background(), "test", []domain.Handshake{
		handshakeWithAttenuation("alpha", 10*time.Second, 1),
	})
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if result.Contacts != 1 || result.Expired != 1 || result.Duplicates != 0 || result.Inserted != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestHandshakeIngestService_Ingest_EmptyBatch(t *testing.T) {
	store := portmocks.NewMockContactStore(t)
	svc := NewHandshakeIngestService(NewContactAggregator(testMatchingConfig(), nil), store, nil)

	result, err := svc.Ingest(context.Background(), "test", nil)
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if result != (IngestResult{}) {
		t.Fatalf("expected zero result, got %+v", result)
	}
}

func TestHandshakeIngestService_Ingest_StopsOnStoreError(t *testing.T) {
	store := portmocks.NewMockContactStore(t)
	svc := NewHandshakeIngestService(NewContactAggregator(testMatchingConfig(), nil), store, nil)
	boom := errors.New("disk full")

	store.EXPECT().Add(mock.Anything, mock.Anything).Return(int64(0), ports.AddOutcome(0), boom).Once()

	_, err := svc.Ingest(context.Background(), "test", []domain.Handshake{
		handshakeWithAttenuation("alpha", 10*time.Second, 1),
		handshakeWithAttenuation("bravo", 10*time.Second, 1),
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
