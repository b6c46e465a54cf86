package repositories

import (
	"context"
	"time"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	UpdateBadgeTier(ctx context.Context, accountID string, tier domain.BadgeTier, updatedBy string, now time.Time) error
}

// BalanceRepository defines persistence operations for balance rows. The
// ForUpdate/InTx methods participate in a caller-owned transaction so balance
// mutations commit together with their ledger entries or lock rows.
type BalanceRepository interface {
	FindBalance(ctx context.Context, accountID string, balanceType domain.BalanceType) (*domain.Balance, error)
	FindBalancesByAccount(ctx context.Context, accountID string) ([]domain.Balance, error)

	// EnsureBalancesInTx inserts missing balance rows for the given adjustments
	// (balances are created on first credit, never deleted).
	EnsureBalancesInTx(ctx context.Context, tx pgx.Tx, adjustments []domain.BalanceAdjustment, userID string, now time.Time) error

	// FindBalancesForUpdate locks the balance rows touched by the adjustments,
	// in canonical order, and returns them keyed by BalanceKey.
	FindBalancesForUpdate(ctx context.Context, tx pgx.Tx, adjustments []domain.BalanceAdjustment) (map[string]domain.Balance, error)

	// ApplyAdjustmentsInTx applies available/locked deltas to already-locked rows.
	ApplyAdjustmentsInTx(ctx context.Context, tx pgx.Tx, adjustments []domain.BalanceAdjustment, userID string, now time.Time) error
}
