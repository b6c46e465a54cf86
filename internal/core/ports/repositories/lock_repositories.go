package repositories

import (
	"context"
	"time"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
)

// LockRepository manages balance locks. Creating a lock moves the amount from
// available to locked atomically with the lock row insert; releasing reverses
// it. Release is idempotent because reconciliation can race with normal
// completion.
type LockRepository interface {
	// CreateLock inserts the lock and moves available -> locked in one
	// transaction. Fails with domain.ErrInsufficientFunds when available is
	// short.
	CreateLock(ctx context.Context, lock domain.BalanceLock) error

	FindLockByID(ctx context.Context, lockID string) (*domain.BalanceLock, error)

	// ReleaseLock moves locked -> available and stamps released_at. Returns
	// false with no error when the lock was already released (no-op).
	ReleaseLock(ctx context.Context, lockID string, releasedBy string, now time.Time) (bool, error)

	// FindGhostCandidates lists unreleased locks created before the cutoff.
	// Candidacy is only a hint; ReleaseIfGhost re-checks inside its transaction.
	FindGhostCandidates(ctx context.Context, createdBefore time.Time, limit int) ([]domain.BalanceLock, error)

	// ReleaseIfGhost releases the lock only if, inside the same transaction,
	// its reference resolves to a terminal or missing order/withdrawal and the
	// lock is older than the cutoff. A still-active reference is reported, not
	// released.
	ReleaseIfGhost(ctx context.Context, lockID string, createdBefore time.Time, releasedBy string, now time.Time) (domain.GhostLockReport, error)
}
