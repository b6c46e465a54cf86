package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/bskpay/bsk_ledger_app/internal/apperrors"
	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	portsrepo "github.com/bskpay/bsk_ledger_app/internal/core/ports/repositories"
	"github.com/bskpay/bsk_ledger_app/internal/models"
	"github.com/jackc/pgx/v5"
)

type PgxIdempotencyRepository struct {
	pool PgxPool
}

// newPgxIdempotencyRepository creates a new repository for idempotency keys.
func newPgxIdempotencyRepository(pool PgxPool) portsrepo.IdempotencyRepository {
	return &PgxIdempotencyRepository{pool: pool}
}

// Ensure PgxIdempotencyRepository implements portsrepo.IdempotencyRepository
var _ portsrepo.IdempotencyRepository = (*PgxIdempotencyRepository)(nil)

// TryBegin claims the key for first execution. The insert either wins the
// race (nil, true) or loses it, in which case the existing record is returned
// so the caller can distinguish a replay from a duplicate in flight.
func (r *PgxIdempotencyRepository) TryBegin(ctx context.Context, key string, operation string, now time.Time) (*domain.IdempotencyRecord, bool, error) {
	insertQuery := `
		INSERT INTO idempotency_keys (key, operation, status, result_snapshot, created_at)
		VALUES ($1, $2, $3, NULL, $4)
		ON CONFLICT (key) DO NOTHING;
	`
	cmdTag, err := r.pool.Exec(ctx, insertQuery, key, operation, domain.IdempotencyInFlight, now)
	if err != nil {
		return nil, false, apperrors.NewAppError(500, "failed to claim idempotency key "+key, err)
	}
	if cmdTag.RowsAffected() == 1 {
		return nil, true, nil
	}

	selectQuery := `
		SELECT key, operation, status, result_snapshot, created_at
		FROM idempotency_keys
		WHERE key = $1;
	`
	var m models.IdempotencyKey
	err = r.pool.QueryRow(ctx, selectQuery, key).Scan(&m.Key, &m.Operation, &m.Status, &m.ResultSnapshot, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The competing row was removed between insert and select (failed
			// execution cleanup). Treat as in flight; the client retry will win.
			return nil, false, domain.ErrDuplicateInFlight
		}
		return nil, false, apperrors.NewAppError(500, "failed to read idempotency key "+key, err)
	}

	record := &domain.IdempotencyRecord{
		Key:            m.Key,
		Operation:      m.Operation,
		Status:         domain.IdempotencyStatus(m.Status),
		ResultSnapshot: m.ResultSnapshot,
		CreatedAt:      m.CreatedAt,
	}
	return record, false, nil
}

// Complete stores the result snapshot and marks the key replayable.
func (r *PgxIdempotencyRepository) Complete(ctx context.Context, key string, snapshot []byte) error {
	query := `
		UPDATE idempotency_keys
		SET status = $2, result_snapshot = $3
		WHERE key = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, key, domain.IdempotencyCompleted, snapshot)
	if err != nil {
		return apperrors.NewAppError(500, "failed to complete idempotency key "+key, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("idempotency key " + key + " not found for completion")
	}
	return nil
}

// Remove deletes an in-flight key after a failed execution so a client retry
// can run again. Completed keys are never removed here.
func (r *PgxIdempotencyRepository) Remove(ctx context.Context, key string) error {
	query := `DELETE FROM idempotency_keys WHERE key = $1 AND status = $2;`
	if _, err := r.pool.Exec(ctx, query, key, domain.IdempotencyInFlight); err != nil {
		return apperrors.NewAppError(500, "failed to remove idempotency key "+key, err)
	}
	return nil
}

// DeleteExpired garbage-collects keys older than the retention window.
func (r *PgxIdempotencyRepository) DeleteExpired(ctx context.Context, createdBefore time.Time) (int64, error) {
	query := `DELETE FROM idempotency_keys WHERE created_at < $1;`
	cmdTag, err := r.pool.Exec(ctx, query, createdBefore)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete expired idempotency keys", err)
	}
	return cmdTag.RowsAffected(), nil
}
