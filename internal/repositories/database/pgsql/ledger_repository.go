package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bskpay/bsk_ledger_app/internal/apperrors"
	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	portsrepo "github.com/bskpay/bsk_ledger_app/internal/core/ports/repositories"
	"github.com/bskpay/bsk_ledger_app/internal/models"
	"github.com/bskpay/bsk_ledger_app/internal/utils/mapping"
	"github.com/bskpay/bsk_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
	balanceRepo portsrepo.BalanceRepository
}

// newPgxLedgerRepository creates a new repository for ledger entries.
func newPgxLedgerRepository(pool PgxPool, balanceRepo portsrepo.BalanceRepository) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		balanceRepo:    balanceRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepository
var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// RecordEntries appends ledger entries and applies the balance adjustments
// that produced them in one database transaction. Balance rows are locked in
// canonical order; a sufficiency check over the locked state happens before
// any update is sent, so a short balance fails the whole batch and nothing
// persists. The returned balances reflect the state the transaction committed,
// not a later re-read that a concurrent operation could have moved.
func (r *PgxLedgerRepository) RecordEntries(ctx context.Context, entries []domain.LedgerEntry, adjustments []domain.BalanceAdjustment) (map[string]domain.Balance, error) {
	if len(entries) == 0 {
		return map[string]domain.Balance{}, nil
	}

	// Last-line imbalance guard. The service validates before calling, but this
	// must never reach the database silently.
	if err := domain.ValidateBalanced(entries); err != nil {
		return nil, err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction commits

	now := entries[0].CreatedAt // Use consistent time from the operation
	userID := entries[0].CreatedBy

	// 1. Make sure every touched balance row exists (created on first credit).
	if err := r.balanceRepo.EnsureBalancesInTx(ctx, tx, adjustments, userID, now); err != nil {
		return nil, err
	}

	// 2. Lock rows in canonical order and read current state.
	lockedBalances, err := r.balanceRepo.FindBalancesForUpdate(ctx, tx, adjustments)
	if err != nil {
		return nil, err
	}

	// 3. Sufficiency check against the net effect per balance row.
	netAvailable := make(map[string]decimal.Decimal)
	netLocked := make(map[string]decimal.Decimal)
	for _, adj := range adjustments {
		k := adj.BalanceKey()
		netAvailable[k] = netAvailable[k].Add(adj.AvailableDelta)
		netLocked[k] = netLocked[k].Add(adj.LockedDelta)
	}
	updated := make(map[string]domain.Balance, len(lockedBalances))
	for k, deltaAvail := range netAvailable {
		bal, ok := lockedBalances[k]
		if !ok {
			return nil, apperrors.NewAppError(500, "internal error: locked balance "+k+" missing during sufficiency check", nil)
		}
		if bal.Available.Add(deltaAvail).IsNegative() {
			return nil, fmt.Errorf("%w: balance %s has %s available", domain.ErrInsufficientFunds, k, bal.Available.String())
		}
		if bal.Locked.Add(netLocked[k]).IsNegative() {
			return nil, fmt.Errorf("%w: balance %s has %s locked", domain.ErrInsufficientFunds, k, bal.Locked.String())
		}
		bal.Available = bal.Available.Add(deltaAvail)
		bal.Locked = bal.Locked.Add(netLocked[k])
		updated[k] = bal
	}

	// 4. Apply the adjustments to the locked rows.
	if err := r.balanceRepo.ApplyAdjustmentsInTx(ctx, tx, adjustments, userID, now); err != nil {
		return nil, apperrors.NewAppError(500, "failed to apply balance adjustments", err)
	}

	// 5. Insert the immutable entries.
	entryQuery := `
		INSERT INTO ledger_entries (entry_id, account_id, balance_type, delta, reason_code, reference_id, idempotency_key, note, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	batch := &pgx.Batch{}
	for _, entry := range entries {
		m := mapping.ToModelLedgerEntry(entry)
		m.CreatedAt = now
		m.LastUpdatedAt = now
		m.CreatedBy = userID
		m.LastUpdatedBy = userID
		batch.Queue(entryQuery,
			m.EntryID,
			m.AccountID,
			m.BalanceType,
			m.Delta,
			m.ReasonCode,
			m.ReferenceID,
			m.IdempotencyKey,
			m.Note,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to execute ledger entry batch", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return updated, nil
}

// FindEntriesByIdempotencyKey retrieves all entries written under one key.
func (r *PgxLedgerRepository) FindEntriesByIdempotencyKey(ctx context.Context, key string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, account_id, balance_type, delta, reason_code, reference_id, idempotency_key, note, created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_entries
		WHERE idempotency_key = $1
		ORDER BY entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, key)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries for key "+key, err)
	}
	defer rows.Close()

	return scanLedgerEntries(rows)
}

// ListEntriesByAccount retrieves a paginated list of entries for one account
// using token-based pagination ordered by created_at DESC, entry_id DESC.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT entry_id, account_id, balance_type, delta, reason_code, reference_id, idempotency_key, note, created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_entries
		WHERE account_id = $1
	`
	orderByClause := `ORDER BY created_at DESC, entry_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastEntryID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `AND (created_at, entry_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastEntryID)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger entries for account "+accountID, err)
	}
	defer rows.Close()

	entries, err := scanLedgerEntries(rows)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(entries) > limit {
		lastEntry := entries[limit-1]
		token := pagination.EncodeToken(lastEntry.CreatedAt, lastEntry.EntryID)
		nextTokenVal = &token
		entries = entries[:limit]
	}
	return entries, nextTokenVal, nil
}

// SumDeltasByReasonSince totals the deltas an account has accrued under one
// reason code since the cutoff. Used for the per-day transfer cap.
func (r *PgxLedgerRepository) SumDeltasByReasonSince(ctx context.Context, accountID string, reason domain.ReasonCode, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(delta), 0)
		FROM ledger_entries
		WHERE account_id = $1 AND reason_code = $2 AND created_at >= $3;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, reason, since).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum ledger deltas for account "+accountID, err)
	}
	return sum, nil
}

func scanLedgerEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	modelEntries := []models.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.AccountID,
			&m.BalanceType,
			&m.Delta,
			&m.ReasonCode,
			&m.ReferenceID,
			&m.IdempotencyKey,
			&m.Note,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return mapping.ToDomainLedgerEntrySlice(modelEntries), nil
}
