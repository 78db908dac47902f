package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estatedesk/backoffice/internal/apperrors"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// defaultTxMaxRetries bounds how often a transient transaction conflict is
// re-attempted before the whole operation fails with apperrors.ErrConflict.
const defaultTxMaxRetries = 3

// isRetryableTxError reports whether the error is a transient Postgres
// conflict worth re-running the whole transaction for: serialization
// failures (40001) and deadlocks (40P01).
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

// RunInTx runs fn inside one database transaction and commits it on success.
// Transient conflicts roll back and re-run fn from scratch up to maxRetries
// times; fn must therefore be a pure function of its reads within the
// transaction. Business errors from fn abort immediately and are returned
// unchanged. When retries are exhausted the call fails with an error matching
// apperrors.ErrConflict so the caller knows the operation may be re-submitted.
func (r *BaseRepository) RunInTx(ctx context.Context, maxRetries int, fn func(ctx context.Context, tx pgx.Tx) error) error {
	if maxRetries <= 0 {
		maxRetries = defaultTxMaxRetries
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		tx, err := r.Begin(ctx)
		if err != nil {
			return err
		}

		err = fn(ctx, tx)
		if err == nil {
			err = tx.Commit(ctx)
			if err == nil {
				return nil
			}
		}

		_ = r.Rollback(ctx, tx)

		if !isRetryableTxError(err) {
			return err
		}
		lastErr = err

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return fmt.Errorf("%w: transaction retries exhausted after %d attempts: %v", apperrors.ErrConflict, maxRetries, lastErr)
}
