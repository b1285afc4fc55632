package sqlite

import (
	"context"

	"github.com/fr0stylo/proxitrace/internal/db/queries"
)

type contactDatabase interface {
	CountContacts(ctx context.Context) (int64, error)
	CountKnownCases(ctx context.Context) (int64, error)

	WithTx(ctx context.Context, fn func(*queries.Queries) error) error
	WithReadTx(ctx context.Context, fn func(*queries.Queries) error) error
}
