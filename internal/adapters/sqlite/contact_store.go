package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/fr0stylo/proxitrace/internal/app/domain"
	"github.com/fr0stylo/proxitrace/internal/app/ports"
	"github.com/fr0stylo/proxitrace/internal/db"
	"github.com/fr0stylo/proxitrace/internal/db/queries"
)

// ContactStore persists contacts and known cases in SQLite.
type ContactStore struct {
	db          contactDatabase
	closeFn     func() error
	retention   time.Duration
	calibration bool
	now         func() time.Time
	log         *slog.Logger
}

// Option configures a ContactStore.
type Option func(*ContactStore)

// WithClock overrides the time source used for retention decisions.
func WithClock(now func() time.Time) Option {
	return func(s *ContactStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCalibration persists and loads calibration diagnostics.
func WithCalibration(enabled bool) Option {
	return func(s *ContactStore) {
		s.calibration = enabled
	}
}

// WithLogger sets the store logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *ContactStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewContactStore creates a store over a shared database handle. The store does not
// close the handle.
func NewContactStore(database *db.Database, retention time.Duration, opts ...Option) *ContactStore {
	return newContactStore(database, nil, retention, opts...)
}

// OpenContactStore opens the database at path and returns a store that owns it.
func OpenContactStore(path string, retention time.Duration, opts ...Option) (*ContactStore, error) {
	database, err := db.New(path)
	if err != nil {
		return nil, err
	}
	return newContactStore(database, database.Close, retention, opts...), nil
}

func newContactStore(database contactDatabase, closeFn func() error, retention time.Duration, opts ...Option) *ContactStore {
	s := &ContactStore{
		db:        database,
		closeFn:   closeFn,
		retention: retention,
		now:       time.Now,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "contact_store")
	return s
}

// Close releases the database handle when the store owns it.
func (s *ContactStore) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// RetentionHorizon is the oldest bucket timestamp still retained at the current time.
func (s *ContactStore) RetentionHorizon() time.Time {
	return s.now().Add(-s.retention)
}

func (s *ContactStore) Add(ctx context.Context, contact domain.Contact) (int64, ports.AddOutcome, error) {
	if contact.Date.Before(s.RetentionHorizon()) {
		s.log.DebugContext(ctx, "skipping contact outside retention", "date", contact.Date)
		return 0, ports.AddExpired, nil
	}

	var id int64
	outcome := ports.AddDuplicate
	err := s.db.WithTx(ctx, func(q *queries.Queries) error {
		newID, err := q.InsertContact(ctx, queries.InsertContactParams{
			Date:                toMillis(contact.Date),
			EphID:               contact.EphID,
			WindowsCount:        int64(contact.WindowCount),
			AssociatedKnownCase: nullInt64(contact.AssociatedKnownCase),
		})
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		id, outcome = newID, ports.AddInserted

		if s.calibration && contact.Calibration != nil {
			return q.InsertContactCalibration(ctx, calibrationParams(newID, contact.Calibration))
		}
		return nil
	})
	if err != nil {
		return 0, 0, storageError("add contact", err)
	}
	return id, outcome, nil
}

func (s *ContactStore) Count(ctx context.Context) (int64, error) {
	count, err := s.db.CountContacts(ctx)
	if err != nil {
		return 0, storageError("count contacts", err)
	}
	return count, nil
}

func (s *ContactStore) AddKnownCase(ctx context.Context, knownCaseID, contactID int64) error {
	err := s.db.WithTx(ctx, func(q *queries.Queries) error {
		updated, err := q.SetContactKnownCase(ctx, queries.SetContactKnownCaseParams{
			AssociatedKnownCase: sql.NullInt64{Int64: knownCaseID, Valid: true},
			ID:                  contactID,
		})
		if err != nil {
			return err
		}
		if updated == 0 {
			return ports.ErrContactNotFound
		}
		return nil
	})
	if errors.Is(err, ports.ErrContactNotFound) {
		return fmt.Errorf("contact %d: %w", contactID, err)
	}
	if isForeignKeyViolation(err) {
		return fmt.Errorf("known case %d: %w", knownCaseID, ports.ErrKnownCaseNotFound)
	}
	if err != nil {
		return storageError("add known case", err)
	}
	return nil
}

func (s *ContactStore) GetAllMatchedContacts(ctx context.Context) ([]domain.Contact, error) {
	var contacts []domain.Contact
	err := s.db.WithReadTx(ctx, func(q *queries.Queries) error {
		rows, err := q.ListMatchedContacts(ctx)
		if err != nil {
			return err
		}
		contacts, err = s.mapContacts(ctx, q, rows)
		return err
	})
	if err != nil {
		return nil, storageError("get matched contacts", err)
	}
	return contacts, nil
}

func (s *ContactStore) GetContacts(ctx context.Context, query ports.ContactQuery) ([]domain.Contact, error) {
	if query.Day.Before(domain.DayOf(s.RetentionHorizon())) {
		return []domain.Contact{}, nil
	}

	overlap := query.Overlap
	if overlap < 0 {
		overlap = -overlap
	}
	minWindows := query.ContactThreshold
	if minWindows < 1 {
		minWindows = 1
	}

	var contacts []domain.Contact
	err := s.db.WithReadTx(ctx, func(q *queries.Queries) error {
		rows, err := q.ListUnmatchedContactsBetween(ctx, queries.ListUnmatchedContactsBetweenParams{
			FromDate:   toMillis(query.Day.Start().Add(-overlap)),
			ToDate:     toMillis(query.Day.End().Add(overlap)),
			MinWindows: int64(minWindows),
		})
		if err != nil {
			return err
		}
		contacts, err = s.mapContacts(ctx, q, rows)
		return err
	})
	if err != nil {
		return nil, storageError("get contacts", err)
	}
	return contacts, nil
}

func (s *ContactStore) DeleteOldContacts(ctx context.Context) (int64, error) {
	horizon := s.RetentionHorizon()

	var deleted int64
	err := s.db.WithTx(ctx, func(q *queries.Queries) error {
		var err error
		deleted, err = q.DeleteContactsBefore(ctx, toMillis(horizon))
		return err
	})
	if err != nil {
		return 0, storageError("delete old contacts", err)
	}
	s.log.InfoContext(ctx, "deleted old contacts", "horizon", horizon, "deleted", deleted)
	return deleted, nil
}

func (s *ContactStore) EmptyStorage(ctx context.Context) error {
	err := s.db.WithTx(ctx, func(q *queries.Queries) error {
		return q.DeleteAllContacts(ctx)
	})
	if err != nil {
		return storageError("empty storage", err)
	}
	s.log.InfoContext(ctx, "contact storage emptied")
	return nil
}

func (s *ContactStore) mapContacts(ctx context.Context, q *queries.Queries, rows []queries.Contact) ([]domain.Contact, error) {
	contacts := make([]domain.Contact, 0, len(rows))
	for _, row := range rows {
		contact := toDomainContact(row)
		if s.calibration {
			calibration, err := q.GetContactCalibration(ctx, row.ID)
			switch {
			case errors.Is(err, sql.ErrNoRows):
			case err != nil:
				return nil, err
			default:
				contact.Calibration = toDomainCalibration(calibration)
			}
		}
		contacts = append(contacts, contact)
	}
	return contacts, nil
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr *sqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}

func storageError(op string, err error) error {
	return &ports.StorageError{Op: op, Err: err}
}

var (
	_ ports.ContactStore   = (*ContactStore)(nil)
	_ ports.KnownCaseStore = (*ContactStore)(nil)
)
