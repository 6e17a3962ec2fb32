package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campusopoly/platform/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// maxTxAttempts bounds the automatic conflict retry of WithinTx.
const maxTxAttempts = 3

// WithinTx runs fn inside a single database transaction: all reads see one
// consistent snapshot (row locks via SELECT FOR UPDATE) and all writes commit
// indivisibly. If fn returns an error the transaction rolls back with zero
// side effects. Serialization failures and deadlocks from concurrent writers
// retry the whole closure up to maxTxAttempts times before surfacing a
// TX_CONFLICT error. fn must be safe to re-execute: all its state must derive
// from reads inside the transaction plus its own parameters.
func WithinTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var lastErr error

	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err := runOnce(ctx, pool, fn)
		if err == nil {
			return nil
		}
		if !IsRetryableTxError(err) {
			return err
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 25 * time.Millisecond):
		}
	}

	return domain.ErrTxConflict(lastErr)
}

func runOnce(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// IsRetryableTxError reports whether err is a transient conflict with a
// concurrent transaction: serialization failure (40001) or deadlock (40P01).
func IsRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
