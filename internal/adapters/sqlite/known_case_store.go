package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fr0stylo/proxitrace/internal/app/domain"
	"github.com/fr0stylo/proxitrace/internal/app/ports"
	"github.com/fr0stylo/proxitrace/internal/db/queries"
)

func (s *ContactStore) InsertKnownCase(ctx context.Context, knownCase domain.KnownCase) (int64, error) {
	var id int64
	err := s.db.WithTx(ctx, func(q *queries.Queries) error {
		var err error
		id, err = q.InsertKnownCase(ctx, queries.InsertKnownCaseParams{
			Day:            toMillis(knownCase.Day.Start()),
			Onset:          nullMillis(knownCase.OnsetDate),
			BatchTimestamp: toMillis(knownCase.BatchTimestamp),
			Key:            knownCase.Key,
		})
		return err
	})
	if err != nil {
		return 0, storageError("insert known case", err)
	}
	return id, nil
}

// DeleteKnownCase clears the links first so contacts outlive the case even when the
// connection runs without foreign key enforcement.
func (s *ContactStore) DeleteKnownCase(ctx context.Context, id int64) error {
	err := s.db.WithTx(ctx, func(q *queries.Queries) error {
		if err := q.ClearKnownCaseFromContacts(ctx, sql.NullInt64{Int64: id, Valid: true}); err != nil {
			return err
		}
		deleted, err := q.DeleteKnownCase(ctx, id)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return ports.ErrKnownCaseNotFound
		}
		return nil
	})
	if errors.Is(err, ports.ErrKnownCaseNotFound) {
		return fmt.Errorf("known case %d: %w", id, err)
	}
	if err != nil {
		return storageError("delete known case", err)
	}
	return nil
}

func (s *ContactStore) CountKnownCases(ctx context.Context) (int64, error) {
	count, err := s.db.CountKnownCases(ctx)
	if err != nil {
		return 0, storageError("count known cases", err)
	}
	return count, nil
}
