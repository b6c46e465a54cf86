package repositories

import (
	"context"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
)

// ReferralRepository persists the write-once referral tree.
type ReferralRepository interface {
	// CreateEdge binds a child to its sponsor. A second edge for the same child
	// fails with apperrors.ErrDuplicate; the sponsor is never reassigned.
	CreateEdge(ctx context.Context, edge domain.ReferralEdge) error

	FindEdgeByChild(ctx context.Context, childAccountID string) (*domain.ReferralEdge, error)

	// FindAncestorChain walks parent edges upward from the account, at most
	// maxDepth hops, returning each ancestor with its depth and badge tier in
	// ascending depth order.
	FindAncestorChain(ctx context.Context, accountID string, maxDepth int) ([]domain.ReferralAncestor, error)
}

// CommissionRuleRepository persists the badge-tier gating table.
type CommissionRuleRepository interface {
	ListRules(ctx context.Context) ([]domain.CommissionRule, error)
	UpsertRule(ctx context.Context, rule domain.CommissionRule) error
}
