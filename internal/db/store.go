package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fr0stylo/proxitrace/internal/db/queries"
)

// CountContacts returns the number of stored contacts.
func (c *Database) CountContacts(ctx context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.queries.CountContacts(ctx)
}

// GetContactByID fetches one contact.
func (c *Database) GetContactByID(ctx context.Context, id int64) (queries.Contact, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.queries.GetContactByID(ctx, id)
}

// ListMatchedContacts returns contacts linked to a known case.
func (c *Database) ListMatchedContacts(ctx context.Context) ([]queries.Contact, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.queries.ListMatchedContacts(ctx)
}

// ListUnmatchedContactsBetween returns unlinked contacts in an inclusive date range.
func (c *Database) ListUnmatchedContactsBetween(ctx context.Context, params queries.ListUnmatchedContactsBetweenParams) ([]queries.Contact, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.queries.ListUnmatchedContactsBetween(ctx, params)
}

// GetContactCalibration fetches diagnostics for one contact.
func (c *Database) GetContactCalibration(ctx context.Context, contactID int64) (queries.ContactCalibration, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.queries.GetContactCalibration(ctx, contactID)
}

// CountKnownCases returns the number of stored known cases.
func (c *Database) CountKnownCases(ctx context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.queries.CountKnownCases(ctx)
}

// WithTx runs a function within a write transaction. Writers never overlap.
func (c *Database) WithTx(ctx context.Context, fn func(*queries.Queries) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inTx(ctx, &sql.TxOptions{}, fn)
}

// WithReadTx runs a function within a shared-lock transaction so that multiple reads
// observe one snapshot.
func (c *Database) WithReadTx(ctx context.Context, fn func(*queries.Queries) error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inTx(ctx, &sql.TxOptions{}, fn)
}

func (c *Database) inTx(ctx context.Context, opts *sql.TxOptions, fn func(*queries.Queries) error) error {
	tx, err := c.db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}
	if err := fn(queries.New(newInstrumentedDBTX(tx, c.tracker))); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return errors.Join(err, rollbackErr)
		}
		return err
	}
	return tx.Commit()
}
