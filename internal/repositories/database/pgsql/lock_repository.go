package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bskpay/bsk_ledger_app/internal/apperrors"
	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	portsrepo "github.com/bskpay/bsk_ledger_app/internal/core/ports/repositories"
	"github.com/bskpay/bsk_ledger_app/internal/models"
	"github.com/bskpay/bsk_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxLockRepository struct {
	BaseRepository
	balanceRepo portsrepo.BalanceRepository
}

// newPgxLockRepository creates a new repository for balance locks.
func newPgxLockRepository(pool PgxPool, balanceRepo portsrepo.BalanceRepository) portsrepo.LockRepository {
	return &PgxLockRepository{
		BaseRepository: BaseRepository{Pool: pool},
		balanceRepo:    balanceRepo,
	}
}

// Ensure PgxLockRepository implements portsrepo.LockRepository
var _ portsrepo.LockRepository = (*PgxLockRepository)(nil)

const lockSelectColumns = `lock_id, account_id, balance_type, amount, purpose, reference_id, released_at, created_at, created_by, last_updated_at, last_updated_by`

// CreateLock moves amount from available to locked and inserts the lock row,
// all in one transaction.
func (r *PgxLockRepository) CreateLock(ctx context.Context, lock domain.BalanceLock) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	adjustment := domain.BalanceAdjustment{
		AccountID:      lock.AccountID,
		BalanceType:    lock.BalanceType,
		AvailableDelta: lock.Amount.Neg(),
		LockedDelta:    lock.Amount,
	}

	lockedBalances, err := r.balanceRepo.FindBalancesForUpdate(ctx, tx, []domain.BalanceAdjustment{adjustment})
	if err != nil {
		return err
	}
	bal, ok := lockedBalances[adjustment.BalanceKey()]
	if !ok {
		return apperrors.NewAppError(500, "internal error: balance "+adjustment.BalanceKey()+" missing after lock", nil)
	}
	if bal.Available.LessThan(lock.Amount) {
		return fmt.Errorf("%w: balance %s has %s available, lock needs %s",
			domain.ErrInsufficientFunds, adjustment.BalanceKey(), bal.Available.String(), lock.Amount.String())
	}

	if err := r.balanceRepo.ApplyAdjustmentsInTx(ctx, tx, []domain.BalanceAdjustment{adjustment}, lock.CreatedBy, lock.CreatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to move available to locked", err)
	}

	m := mapping.ToModelBalanceLock(lock)
	insertQuery := `
		INSERT INTO balance_locks (lock_id, account_id, balance_type, amount, purpose, reference_id, released_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	if _, err := tx.Exec(ctx, insertQuery,
		m.LockID,
		m.AccountID,
		m.BalanceType,
		m.Amount,
		m.Purpose,
		m.ReferenceID,
		m.ReleasedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: lock %s already exists", apperrors.ErrDuplicate, m.LockID)
		}
		return apperrors.NewAppError(500, "failed to insert lock "+m.LockID, err)
	}

	return r.Commit(ctx, tx)
}

// FindLockByID retrieves a lock by its ID.
func (r *PgxLockRepository) FindLockByID(ctx context.Context, lockID string) (*domain.BalanceLock, error) {
	query := `SELECT ` + lockSelectColumns + ` FROM balance_locks WHERE lock_id = $1;`
	m, err := r.scanLockRow(r.Pool.QueryRow(ctx, query, lockID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find lock "+lockID, err)
	}
	d := mapping.ToDomainBalanceLock(*m)
	return &d, nil
}

// ReleaseLock reverses the reservation. Releasing an already-released lock is
// a no-op (false, nil) because reconciliation may race with normal completion.
func (r *PgxLockRepository) ReleaseLock(ctx context.Context, lockID string, releasedBy string, now time.Time) (bool, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer r.Rollback(ctx, tx)

	lock, err := r.lockRowForUpdate(ctx, tx, lockID)
	if err != nil {
		return false, err
	}
	if lock.Released() {
		return false, nil
	}

	if err := r.releaseInTx(ctx, tx, lock, releasedBy, now); err != nil {
		return false, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return false, err
	}
	return true, nil
}

// FindGhostCandidates lists unreleased locks created before the cutoff.
// Candidacy is a hint only; ReleaseIfGhost re-checks everything in its own
// transaction.
func (r *PgxLockRepository) FindGhostCandidates(ctx context.Context, createdBefore time.Time, limit int) ([]domain.BalanceLock, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT ` + lockSelectColumns + `
		FROM balance_locks
		WHERE released_at IS NULL AND created_at < $1
		ORDER BY created_at
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, createdBefore, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ghost lock candidates", err)
	}
	defer rows.Close()

	locks := []domain.BalanceLock{}
	for rows.Next() {
		var m models.BalanceLock
		if err := rows.Scan(
			&m.LockID,
			&m.AccountID,
			&m.BalanceType,
			&m.Amount,
			&m.Purpose,
			&m.ReferenceID,
			&m.ReleasedAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ghost candidate row", err)
		}
		locks = append(locks, mapping.ToDomainBalanceLock(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ghost candidate rows", err)
	}
	return locks, nil
}

// ReleaseIfGhost releases the lock only when its reference is terminal or
// missing and the lock is older than the cutoff. The reference status is
// re-read inside the same transaction as the release, so a concurrently
// completing order cannot lose its reservation.
func (r *PgxLockRepository) ReleaseIfGhost(ctx context.Context, lockID string, createdBefore time.Time, releasedBy string, now time.Time) (domain.GhostLockReport, error) {
	report := domain.GhostLockReport{LockID: lockID}

	tx, err := r.Begin(ctx)
	if err != nil {
		return report, err
	}
	defer r.Rollback(ctx, tx)

	lock, err := r.lockRowForUpdate(ctx, tx, lockID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			report.Reason = "lock not found"
			return report, nil
		}
		return report, err
	}
	if lock.Released() {
		report.Reason = "already released"
		return report, nil
	}
	if !lock.CreatedAt.Before(createdBefore) {
		report.Reason = "younger than safety window"
		return report, nil
	}

	status, err := r.resolveReferenceStatus(ctx, tx, lock.Purpose, lock.ReferenceID)
	if err != nil {
		return report, err
	}
	if !status.Terminal() {
		report.Reason = "reference still " + string(status)
		return report, nil
	}

	if err := r.releaseInTx(ctx, tx, lock, releasedBy, now); err != nil {
		return report, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return report, err
	}

	report.Released = true
	report.Reason = "reference " + string(status)
	return report, nil
}

// lockRowForUpdate fetches and row-locks one balance_locks row.
func (r *PgxLockRepository) lockRowForUpdate(ctx context.Context, tx pgx.Tx, lockID string) (*domain.BalanceLock, error) {
	query := `SELECT ` + lockSelectColumns + ` FROM balance_locks WHERE lock_id = $1 FOR UPDATE;`
	m, err := r.scanLockRow(tx.QueryRow(ctx, query, lockID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapLockError(err)
	}
	d := mapping.ToDomainBalanceLock(*m)
	return &d, nil
}

// releaseInTx stamps released_at and moves locked back to available.
func (r *PgxLockRepository) releaseInTx(ctx context.Context, tx pgx.Tx, lock *domain.BalanceLock, releasedBy string, now time.Time) error {
	updateQuery := `
		UPDATE balance_locks
		SET released_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE lock_id = $1 AND released_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, updateQuery, lock.LockID, now, releasedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to stamp lock "+lock.LockID+" released", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Row-locked above, so this indicates a logic error rather than a race.
		return apperrors.NewAppError(500, "lock "+lock.LockID+" vanished during release", nil)
	}

	adjustment := domain.BalanceAdjustment{
		AccountID:      lock.AccountID,
		BalanceType:    lock.BalanceType,
		AvailableDelta: lock.Amount,
		LockedDelta:    lock.Amount.Neg(),
	}
	if _, err := r.balanceRepo.FindBalancesForUpdate(ctx, tx, []domain.BalanceAdjustment{adjustment}); err != nil {
		return err
	}
	if err := r.balanceRepo.ApplyAdjustmentsInTx(ctx, tx, []domain.BalanceAdjustment{adjustment}, releasedBy, now); err != nil {
		return apperrors.NewAppError(500, "failed to move locked back to available", err)
	}
	return nil
}

// resolveReferenceStatus reads the current status of the order or withdrawal a
// lock points at. A missing row maps to ReferenceMissing.
func (r *PgxLockRepository) resolveReferenceStatus(ctx context.Context, tx pgx.Tx, purpose domain.LockPurpose, referenceID string) (domain.ReferenceStatus, error) {
	var table string
	switch purpose {
	case domain.LockPurposeOrder:
		table = "orders"
	case domain.LockPurposeWithdrawal:
		table = "withdrawals"
	default:
		return "", apperrors.NewAppError(500, "unknown lock purpose "+string(purpose), nil)
	}

	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM `+table+` WHERE reference_id = $1;`, referenceID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ReferenceMissing, nil
		}
		return "", apperrors.NewAppError(500, "failed to resolve reference "+referenceID, err)
	}
	return domain.ReferenceStatus(status), nil
}

func (r *PgxLockRepository) scanLockRow(row pgx.Row) (*models.BalanceLock, error) {
	var m models.BalanceLock
	err := row.Scan(
		&m.LockID,
		&m.AccountID,
		&m.BalanceType,
		&m.Amount,
		&m.Purpose,
		&m.ReferenceID,
		&m.ReleasedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
