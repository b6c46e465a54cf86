package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bskpay/bsk_ledger_app/internal/apperrors"
	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	portsrepo "github.com/bskpay/bsk_ledger_app/internal/core/ports/repositories"
	"github.com/bskpay/bsk_ledger_app/internal/models"
	"github.com/bskpay/bsk_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxReferralRepository struct {
	pool PgxPool
}

// newPgxReferralRepository creates a new repository for the referral tree.
func newPgxReferralRepository(pool PgxPool) portsrepo.ReferralRepository {
	return &PgxReferralRepository{pool: pool}
}

// Ensure PgxReferralRepository implements portsrepo.ReferralRepository
var _ portsrepo.ReferralRepository = (*PgxReferralRepository)(nil)

// CreateEdge binds a child to its sponsor. The unique constraint on
// child_account_id makes the binding write-once: a second insert for the same
// child fails with ErrDuplicate and the sponsor is never reassigned.
func (r *PgxReferralRepository) CreateEdge(ctx context.Context, edge domain.ReferralEdge) error {
	query := `
		INSERT INTO referral_edges (child_account_id, parent_account_id, locked_at)
		VALUES ($1, $2, $3);
	`
	_, err := r.pool.Exec(ctx, query, edge.ChildAccountID, edge.ParentAccountID, edge.LockedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account %s already has a sponsor", apperrors.ErrDuplicate, edge.ChildAccountID)
		}
		return apperrors.NewAppError(500, "failed to create referral edge for "+edge.ChildAccountID, err)
	}
	return nil
}

// FindEdgeByChild retrieves the sponsor binding for one account.
func (r *PgxReferralRepository) FindEdgeByChild(ctx context.Context, childAccountID string) (*domain.ReferralEdge, error) {
	query := `
		SELECT child_account_id, parent_account_id, locked_at
		FROM referral_edges
		WHERE child_account_id = $1;
	`
	var m models.ReferralEdge
	err := r.pool.QueryRow(ctx, query, childAccountID).Scan(&m.ChildAccountID, &m.ParentAccountID, &m.LockedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find referral edge for "+childAccountID, err)
	}
	d := mapping.ToDomainReferralEdge(m)
	return &d, nil
}

// FindAncestorChain walks parent edges upward from the account via a bounded
// recursive CTE, returning each ancestor with its depth and current badge
// tier in ascending depth order. The depth bound is enforced in SQL so a
// corrupted tree can never produce an unbounded traversal.
func (r *PgxReferralRepository) FindAncestorChain(ctx context.Context, accountID string, maxDepth int) ([]domain.ReferralAncestor, error) {
	if maxDepth <= 0 || maxDepth > domain.MaxCommissionDepth {
		maxDepth = domain.MaxCommissionDepth
	}

	query := `
		WITH RECURSIVE ancestors AS (
			SELECT e.parent_account_id AS account_id, 1 AS depth
			FROM referral_edges e
			WHERE e.child_account_id = $1
			UNION ALL
			SELECT e.parent_account_id, a.depth + 1
			FROM referral_edges e
			JOIN ancestors a ON e.child_account_id = a.account_id
			WHERE a.depth < $2
		)
		SELECT a.account_id, a.depth, acc.badge_tier
		FROM ancestors a
		JOIN accounts acc ON acc.account_id = a.account_id
		ORDER BY a.depth;
	`
	rows, err := r.pool.Query(ctx, query, accountID, maxDepth)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to walk referral chain for "+accountID, err)
	}
	defer rows.Close()

	chain := []domain.ReferralAncestor{}
	for rows.Next() {
		var a domain.ReferralAncestor
		var tier string
		if err := rows.Scan(&a.AccountID, &a.Depth, &tier); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan referral ancestor row", err)
		}
		a.BadgeTier = domain.BadgeTier(tier)
		chain = append(chain, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating referral ancestor rows", err)
	}
	return chain, nil
}

type PgxCommissionRuleRepository struct {
	pool PgxPool
}

// newPgxCommissionRuleRepository creates a new repository for the badge-tier
// gating table.
func newPgxCommissionRuleRepository(pool PgxPool) portsrepo.CommissionRuleRepository {
	return &PgxCommissionRuleRepository{pool: pool}
}

// Ensure PgxCommissionRuleRepository implements portsrepo.CommissionRuleRepository
var _ portsrepo.CommissionRuleRepository = (*PgxCommissionRuleRepository)(nil)

// ListRules retrieves the full gating table.
func (r *PgxCommissionRuleRepository) ListRules(ctx context.Context) ([]domain.CommissionRule, error) {
	query := `
		SELECT badge_tier, level, percent, created_at, created_by, last_updated_at, last_updated_by
		FROM commission_rules
		ORDER BY badge_tier, level;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query commission rules", err)
	}
	defer rows.Close()

	rules := []domain.CommissionRule{}
	for rows.Next() {
		var m models.CommissionRule
		if err := rows.Scan(
			&m.BadgeTier,
			&m.Level,
			&m.Percent,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan commission rule row", err)
		}
		rules = append(rules, mapping.ToDomainCommissionRule(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating commission rule rows", err)
	}
	return rules, nil
}

// UpsertRule inserts or replaces one (badge_tier, level) row.
func (r *PgxCommissionRuleRepository) UpsertRule(ctx context.Context, rule domain.CommissionRule) error {
	query := `
		INSERT INTO commission_rules (badge_tier, level, percent, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (badge_tier, level)
		DO UPDATE SET percent = EXCLUDED.percent, last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		rule.BadgeTier,
		rule.Level,
		rule.Percent,
		rule.CreatedAt,
		rule.CreatedBy,
		rule.LastUpdatedAt,
		rule.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert commission rule", err)
	}
	return nil
}
