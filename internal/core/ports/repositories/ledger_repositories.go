package repositories

import (
	"context"
	"time"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerRepository appends immutable ledger entries and applies the balance
// adjustments that produced them in one database transaction: either both
// persist or neither does.
type LedgerRepository interface {
	// RecordEntries writes all entries and adjustments atomically. Balance rows
	// are locked in canonical order; an adjustment that would take available or
	// locked below zero fails the whole batch with domain.ErrInsufficientFunds.
	// On success it returns the post-adjustment balances keyed by BalanceKey,
	// computed from the row-locked state inside the same transaction.
	RecordEntries(ctx context.Context, entries []domain.LedgerEntry, adjustments []domain.BalanceAdjustment) (map[string]domain.Balance, error)

	// FindEntriesByIdempotencyKey returns the entries written under a key, used
	// by audits and the fan-out correctness checks.
	FindEntriesByIdempotencyKey(ctx context.Context, key string) ([]domain.LedgerEntry, error)

	// ListEntriesByAccount returns a page of entries for one account ordered by
	// creation time descending, with a token for the next page.
	ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// SumDeltasByReasonSince totals the deltas an account accrued under one
	// reason code since a cutoff; the transfer daily cap is computed from it.
	SumDeltasByReasonSince(ctx context.Context, accountID string, reason domain.ReasonCode, since time.Time) (decimal.Decimal, error)
}
