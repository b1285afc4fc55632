package ports

import (
	"context"
	"errors"
	"time"

	"github.com/fr0stylo/proxitrace/internal/app/domain"
)

var (
	// ErrContactNotFound indicates the referenced contact id does not exist.
	ErrContactNotFound = errors.New("contact not found")
	// ErrKnownCaseNotFound indicates the referenced known case id does not exist.
	ErrKnownCaseNotFound = errors.New("known case not found")
)

// StorageError wraps engine or I/O failures raised by a store operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// AddOutcome reports what ContactStore.Add did with a contact.
type AddOutcome int

const (
	// AddInserted means the contact was stored as a new row.
	AddInserted AddOutcome = iota + 1
	// AddDuplicate means a contact for the same (date, ephID) pair was already stored.
	AddDuplicate
	// AddExpired means the contact is older than the retention period and was dropped.
	AddExpired
)

func (o AddOutcome) String() string {
	switch o {
	case AddInserted:
		return "inserted"
	case AddDuplicate:
		return "duplicate"
	case AddExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// ContactQuery selects unmatched contacts around one day.
type ContactQuery struct {
	Day     domain.Day
	Overlap time.Duration
	// ContactThreshold is the minimum window count a contact needs to be returned.
	// Values below one behave like one.
	ContactThreshold int
}

// ContactStore persists aggregated contacts.
//
// Each write is atomic with respect to every other store operation. Reads never observe
// a partially applied write.
type ContactStore interface {
	// Add stores a contact. A contact with the same (date, ephID) pair already stored is
	// left untouched and reported as AddDuplicate with a nil error. A contact older than
	// the retention period is dropped and reported as AddExpired. The id is only set for
	// AddInserted.
	Add(ctx context.Context, contact domain.Contact) (id int64, outcome AddOutcome, err error)
	Count(ctx context.Context) (int64, error)
	// AddKnownCase links a contact to a known case. Returns ErrContactNotFound if the
	// contact does not exist.
	AddKnownCase(ctx context.Context, knownCaseID, contactID int64) error
	GetAllMatchedContacts(ctx context.Context) ([]domain.Contact, error)
	// GetContacts returns unmatched contacts whose date falls in the query day widened by
	// the overlap on both sides.
	GetContacts(ctx context.Context, query ContactQuery) ([]domain.Contact, error)
	// DeleteOldContacts removes every contact older than the retention period and
	// returns the number of removed rows.
	DeleteOldContacts(ctx context.Context) (int64, error)
	EmptyStorage(ctx context.Context) error
}

// KnownCaseStore holds the known cases contacts can be linked to.
type KnownCaseStore interface {
	InsertKnownCase(ctx context.Context, knownCase domain.KnownCase) (int64, error)
	// DeleteKnownCase removes a known case and clears every contact link to it.
	DeleteKnownCase(ctx context.Context, id int64) error
	CountKnownCases(ctx context.Context) (int64, error)
}

// EpochOracle maps a timestamp to the start of its ephemeral id epoch.
type EpochOracle interface {
	EpochStart(t time.Time) time.Time
}

// EpochOracleFunc adapts a function to EpochOracle.
type EpochOracleFunc func(time.Time) time.Time

// EpochStart calls f(t).
func (f EpochOracleFunc) EpochStart(t time.Time) time.Time {
	return f(t)
}
