package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/fr0stylo/proxitrace/internal/db/queries"
)

func TestInsertContactIgnoresDuplicateBucket(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database := newTestDatabase(t)

	params := queries.InsertContactParams{Date: 1_700_000_000_000, EphID: []byte("eph-1"), WindowsCount: 2}
	id, err := insertContact(t, database, params)
	if err != nil {
		t.Fatalf("insert contact: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected generated id, got %d", id)
	}

	params.WindowsCount = 5
	_, err = insertContact(t, database, params)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected no returned row on conflict, got %v", err)
	}

	count, err := database.CountContacts(ctx)
	if err != nil {
		t.Fatalf("count contacts: %v", err)
	}
	if count != 1 {
		t.Fatalf("unexpected count: got=%d want=1", count)
	}

	stored, err := database.GetContactByID(ctx, id)
	if err != nil {
		t.Fatalf("get contact: %v", err)
	}
	if stored.WindowsCount != 2 {
		t.Fatalf("conflicting insert must not overwrite: got=%d", stored.WindowsCount)
	}
}

func TestContactsRejectZeroWindows(t *testing.T) {
	t.Parallel()

	database := newTestDatabase(t)

	_, err := insertContact(t, database, queries.InsertContactParams{Date: 1, EphID: []byte("eph"), WindowsCount: 0})
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected check constraint failure, got %v", err)
	}
}

func TestDeletingKnownCaseClearsContactLink(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database := newTestDatabase(t)

	var caseID int64
	err := database.WithTx(ctx, func(q *queries.Queries) error {
		var err error
		caseID, err = q.InsertKnownCase(ctx, queries.InsertKnownCaseParams{Day: 1, BatchTimestamp: 2, Key: []byte("key")})
		return err
	})
	if err != nil {
		t.Fatalf("insert known case: %v", err)
	}
	contactID, err := insertContact(t, database, queries.InsertContactParams{
		Date:                10,
		EphID:               []byte("eph"),
		WindowsCount:        1,
		AssociatedKnownCase: sql.NullInt64{Int64: caseID, Valid: true},
	})
	if err != nil {
		t.Fatalf("insert contact: %v", err)
	}

	err = database.WithTx(ctx, func(q *queries.Queries) error {
		_, err := q.DeleteKnownCase(ctx, caseID)
		return err
	})
	if err != nil {
		t.Fatalf("delete known case: %v", err)
	}

	stored, err := database.GetContactByID(ctx, contactID)
	if err != nil {
		t.Fatalf("contact must survive known case deletion: %v", err)
	}
	if stored.AssociatedKnownCase.Valid {
		t.Fatalf("expected cleared association, got %+v", stored.AssociatedKnownCase)
	}
}

func TestContactLinkRequiresExistingKnownCase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database := newTestDatabase(t)

	contactID, err := insertContact(t, database, queries.InsertContactParams{Date: 10, EphID: []byte("eph"), WindowsCount: 1})
	if err != nil {
		t.Fatalf("insert contact: %v", err)
	}

	err = database.WithTx(ctx, func(q *queries.Queries) error {
		_, err := q.SetContactKnownCase(ctx, queries.SetContactKnownCaseParams{
			AssociatedKnownCase: sql.NullInt64{Int64: 999, Valid: true},
			ID:                  contactID,
		})
		return err
	})
	if err == nil {
		t.Fatal("expected foreign key violation")
	}
}

func TestCalibrationRowsFollowContactDeletion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database := newTestDatabase(t)

	contactID, err := insertContact(t, database, queries.InsertContactParams{Date: 10, EphID: []byte("eph"), WindowsCount: 1})
	if err != nil {
		t.Fatalf("insert contact: %v", err)
	}
	err = database.WithTx(ctx, func(q *queries.Queries) error {
		return q.InsertContactCalibration(ctx, queries.InsertContactCalibrationParams{
			ContactID:       contactID,
			UserPrefix:      "user",
			StartDate:       0,
			EndDate:         60_000,
			Minutes:         1,
			MeanAttenuation: 42,
			MeanDistance:    0.12,
		})
	})
	if err != nil {
		t.Fatalf("insert calibration: %v", err)
	}

	if err := database.WithTx(ctx, func(q *queries.Queries) error { return q.DeleteAllContacts(ctx) }); err != nil {
		t.Fatalf("delete contacts: %v", err)
	}

	_, err = database.GetContactCalibration(ctx, contactID)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected calibration to cascade, got %v", err)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database := newTestDatabase(t)
	boom := errors.New("boom")

	err := database.WithTx(ctx, func(q *queries.Queries) error {
		if _, err := q.InsertContact(ctx, queries.InsertContactParams{Date: 1, EphID: []byte("a"), WindowsCount: 1}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	count, err := database.CountContacts(ctx)
	if err != nil {
		t.Fatalf("count contacts: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback, found %d contacts", count)
	}
}

func TestDatabaseWritesOnlyThroughTransactions(t *testing.T) {
	t.Parallel()

	typ := reflect.TypeOf(&Database{})
	for _, name := range []string{
		"InsertContact",
		"InsertContactCalibration",
		"SetContactKnownCase",
		"ClearKnownCaseFromContacts",
		"DeleteContactsBefore",
		"DeleteAllContacts",
		"InsertKnownCase",
		"DeleteKnownCase",
	} {
		if _, ok := typ.MethodByName(name); ok {
			t.Fatalf("Database must not expose %s outside WithTx", name)
		}
	}
}

func TestQueryLatencyStatsTrackNamedQueries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	database := newTestDatabase(t)

	for i := 0; i < 3; i++ {
		if _, err := database.CountContacts(ctx); err != nil {
			t.Fatalf("count contacts: %v", err)
		}
	}

	found := false
	for _, stat := range database.QueryLatencyStats() {
		if stat.Name == "CountContacts" {
			found = true
			if stat.Count != 3 {
				t.Fatalf("unexpected sample count: %d", stat.Count)
			}
			if stat.Max < stat.P50 || stat.Max < time.Duration(0) {
				t.Fatalf("inconsistent stats: %+v", stat)
			}
		}
	}
	if !found {
		t.Fatal("expected CountContacts stats")
	}
}

func TestQueryName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"-- name: CountContacts :one\nSELECT 1": "CountContacts",
		"SELECT 1":                              "unknown",
		"-- name:":                              "unknown",
	}
	for query, want := range cases {
		if got := queryName(query); got != want {
			t.Fatalf("queryName(%q)=%q want=%q", query, got, want)
		}
	}
}

func insertContact(t *testing.T, database *Database, params queries.InsertContactParams) (int64, error) {
	t.Helper()

	var id int64
	err := database.WithTx(context.Background(), func(q *queries.Queries) error {
		var err error
		id, err = q.InsertContact(context.Background(), params)
		return err
	})
	return id, err
}

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	database, err := New(filepath.Join(t.TempDir(), "contacts"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}
