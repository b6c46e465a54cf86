package services

import (
	"context"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	"github.com/bskpay/bsk_ledger_app/internal/dto"
)

// BalanceSvcFacade exposes the read-only balance projection.
type BalanceSvcFacade interface {
	GetBalances(ctx context.Context, accountID string) ([]domain.Balance, error)
}

// LockSvcFacade is the lock manager: reservation and release of balance
// portions for in-flight orders and withdrawals.
type LockSvcFacade interface {
	Reserve(ctx context.Context, req dto.ReserveLockRequest, requestedBy string) (*domain.BalanceLock, error)
	// Release is idempotent: releasing an already-released lock is a no-op and
	// reports released=false.
	Release(ctx context.Context, lockID string, releasedBy string) (bool, error)
}

// ReferralSvcFacade manages the write-once sponsor tree and the commission
// rule table.
type ReferralSvcFacade interface {
	BindSponsor(ctx context.Context, req dto.BindSponsorRequest, requestedBy string) (*domain.ReferralEdge, error)
	ListRules(ctx context.Context) ([]domain.CommissionRule, error)
	UpsertRule(ctx context.Context, req dto.CommissionRuleRequest, adminID string) error
}
