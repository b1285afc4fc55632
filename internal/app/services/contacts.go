package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fr0stylo/proxitrace/internal/app/domain"
	"github.com/fr0stylo/proxitrace/internal/app/ports"
)

// ErrInvalidInput indicates a request value the stores cannot act on.
var ErrInvalidInput = errors.New("invalid input")

// ContactService exposes contact and known case management to transports.
type ContactService struct {
	contacts   ports.ContactStore
	knownCases ports.KnownCaseStore
	metrics    ingestMetrics
	log        *slog.Logger
}

// NewContactService constructs a contact management service.
func NewContactService(contacts ports.ContactStore, knownCases ports.KnownCaseStore, log *slog.Logger) *ContactService {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ContactService{
		contacts:   contacts,
		knownCases: knownCases,
		metrics:    newIngestMetrics(),
		log:        log.With("component", "contacts"),
	}
}

func (s *ContactService) Count(ctx context.Context) (int64, error) {
	return s.contacts.Count(ctx)
}

func (s *ContactService) Contacts(ctx context.Context, query ports.ContactQuery) ([]domain.Contact, error) {
	if query.Day.IsZero() {
		return nil, fmt.Errorf("%w: day is required", ErrInvalidInput)
	}
	if query.Overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must not be negative", ErrInvalidInput)
	}
	return s.contacts.GetContacts(ctx, query)
}

func (s *ContactService) MatchedContacts(ctx context.Context) ([]domain.Contact, error) {
	return s.contacts.GetAllMatchedContacts(ctx)
}

// LinkKnownCase associates a stored contact with a known case.
func (s *ContactService) LinkKnownCase(ctx context.Context, contactID, knownCaseID int64) error {
	if contactID <= 0 || knownCaseID <= 0 {
		return fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}
	if err := s.contacts.AddKnownCase(ctx, knownCaseID, contactID); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "contact linked to known case", "contact_id", contactID, "known_case_id", knownCaseID)
	return nil
}

func (s *ContactService) AddKnownCase(ctx context.Context, knownCase domain.KnownCase) (int64, error) {
	if knownCase.Day.IsZero() || len(knownCase.Key) == 0 {
		return 0, fmt.Errorf("%w: known case needs a day and a key", ErrInvalidInput)
	}
	id, err := s.knownCases.InsertKnownCase(ctx, knownCase)
	if err != nil {
		return 0, err
	}
	s.log.InfoContext(ctx, "known case stored", "known_case_id", id, "day", knownCase.Day.String())
	return id, nil
}

func (s *ContactService) DeleteKnownCase(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}
	if err := s.knownCases.DeleteKnownCase(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "known case deleted", "known_case_id", id)
	return nil
}

// SweepExpired removes contacts past the retention horizon.
func (s *ContactService) SweepExpired(ctx context.Context) (int64, error) {
	deleted, err := s.contacts.DeleteOldContacts(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "retention sweep failed", "error", err)
		return 0, err
	}
	s.metrics.recordSweep(ctx, deleted)
	return deleted, nil
}

// Reset drops every stored contact. Known cases are kept.
func (s *ContactService) Reset(ctx context.Context) error {
	if err := s.contacts.EmptyStorage(ctx); err != nil {
		return err
	}
	s.log.WarnContext(ctx, "contact storage reset")
	return nil
}
