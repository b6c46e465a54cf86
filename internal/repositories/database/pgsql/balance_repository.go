package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bskpay/bsk_ledger_app/internal/apperrors"
	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	portsrepo "github.com/bskpay/bsk_ledger_app/internal/core/ports/repositories"
	"github.com/bskpay/bsk_ledger_app/internal/models"
	"github.com/bskpay/bsk_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates a new repository for balance rows.
func newPgxBalanceRepository(pool PgxPool) portsrepo.BalanceRepository {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBalanceRepository implements portsrepo.BalanceRepository
var _ portsrepo.BalanceRepository = (*PgxBalanceRepository)(nil)

// FindBalance retrieves a single balance row.
func (r *PgxBalanceRepository) FindBalance(ctx context.Context, accountID string, balanceType domain.BalanceType) (*domain.Balance, error) {
	query := `
		SELECT account_id, balance_type, available, locked, created_at, created_by, last_updated_at, last_updated_by
		FROM balances
		WHERE account_id = $1 AND balance_type = $2;
	`
	var m models.Balance
	err := r.Pool.QueryRow(ctx, query, accountID, balanceType).Scan(
		&m.AccountID,
		&m.BalanceType,
		&m.Available,
		&m.Locked,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find balance for account "+accountID, err)
	}
	d := mapping.ToDomainBalance(m)
	return &d, nil
}

// FindBalancesByAccount retrieves all balance rows an account owns.
func (r *PgxBalanceRepository) FindBalancesByAccount(ctx context.Context, accountID string) ([]domain.Balance, error) {
	query := `
		SELECT account_id, balance_type, available, locked, created_at, created_by, last_updated_at, last_updated_by
		FROM balances
		WHERE account_id = $1
		ORDER BY balance_type;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query balances for account "+accountID, err)
	}
	defer rows.Close()

	balances := []domain.Balance{}
	for rows.Next() {
		var m models.Balance
		if err := rows.Scan(
			&m.AccountID,
			&m.BalanceType,
			&m.Available,
			&m.Locked,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan balance row for account "+accountID, err)
		}
		balances = append(balances, mapping.ToDomainBalance(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating balance rows for account "+accountID, err)
	}
	return balances, nil
}

// EnsureBalancesInTx inserts zero-valued rows for any balance the adjustments
// touch that does not exist yet. Balances are created on first credit and never
// deleted, so ON CONFLICT DO NOTHING is sufficient.
func (r *PgxBalanceRepository) EnsureBalancesInTx(ctx context.Context, tx pgx.Tx, adjustments []domain.BalanceAdjustment, userID string, now time.Time) error {
	if len(adjustments) == 0 {
		return nil
	}

	query := `
		INSERT INTO balances (account_id, balance_type, available, locked, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, 0, 0, $3, $4, $3, $4)
		ON CONFLICT (account_id, balance_type) DO NOTHING;
	`
	batch := &pgx.Batch{}
	seen := make(map[string]struct{}, len(adjustments))
	for _, adj := range adjustments {
		if _, ok := seen[adj.BalanceKey()]; ok {
			continue
		}
		seen[adj.BalanceKey()] = struct{}{}
		batch.Queue(query, adj.AccountID, adj.BalanceType, now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to ensure balance rows", err)
	}
	return nil
}

// FindBalancesForUpdate locks the balance rows the adjustments touch and
// returns current state keyed by BalanceKey. Rows are locked in canonical
// order (account ID, then balance type) to prevent deadlock between two
// operations touching the same accounts in opposite order.
func (r *PgxBalanceRepository) FindBalancesForUpdate(ctx context.Context, tx pgx.Tx, adjustments []domain.BalanceAdjustment) (map[string]domain.Balance, error) {
	if len(adjustments) == 0 {
		return map[string]domain.Balance{}, nil
	}

	// Deduplicate and sort keys so every caller acquires locks in the same order.
	type key struct {
		accountID   string
		balanceType domain.BalanceType
	}
	seen := make(map[key]struct{}, len(adjustments))
	keys := make([]key, 0, len(adjustments))
	for _, adj := range adjustments {
		k := key{adj.AccountID, adj.BalanceType}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].accountID != keys[j].accountID {
			return keys[i].accountID < keys[j].accountID
		}
		return keys[i].balanceType < keys[j].balanceType
	})

	query := `
		SELECT account_id, balance_type, available, locked, created_at, created_by, last_updated_at, last_updated_by
		FROM balances
		WHERE account_id = $1 AND balance_type = $2
		FOR UPDATE;
	`

	balancesMap := make(map[string]domain.Balance, len(keys))
	for _, k := range keys {
		var m models.Balance
		err := tx.QueryRow(ctx, query, k.accountID, k.balanceType).Scan(
			&m.AccountID,
			&m.BalanceType,
			&m.Available,
			&m.Locked,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: balance %s/%s", apperrors.ErrNotFound, k.accountID, k.balanceType)
			}
			return nil, mapLockError(err)
		}
		d := mapping.ToDomainBalance(m)
		balancesMap[d.AccountID+"/"+string(d.BalanceType)] = d
	}
	return balancesMap, nil
}

// ApplyAdjustmentsInTx applies available/locked deltas to rows that were
// locked by FindBalancesForUpdate in the same transaction. The negative-value
// guard lives in the CHECK constraints and in the caller's precheck; this
// method only moves numbers.
func (r *PgxBalanceRepository) ApplyAdjustmentsInTx(ctx context.Context, tx pgx.Tx, adjustments []domain.BalanceAdjustment, userID string, now time.Time) error {
	if len(adjustments) == 0 {
		return nil
	}

	query := `
		UPDATE balances
		SET available = available + $3, locked = locked + $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1 AND balance_type = $2;
	`

	batch := &pgx.Batch{}
	queued := make([]domain.BalanceAdjustment, 0, len(adjustments))
	for _, adj := range adjustments {
		if adj.AvailableDelta.IsZero() && adj.LockedDelta.IsZero() {
			continue
		}
		batch.Queue(query, adj.AccountID, adj.BalanceType, adj.AvailableDelta, adj.LockedDelta, now, userID)
		queued = append(queued, adj)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to adjust balance %s: %w", queued[i].BalanceKey(), err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: balance %s not found during adjustment", apperrors.ErrNotFound, queued[i].BalanceKey())
			}
		}
	}
	if closeErr := br.Close(); closeErr != nil && batchErr == nil {
		batchErr = closeErr
	}
	return batchErr
}
