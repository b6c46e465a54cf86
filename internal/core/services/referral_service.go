package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	portsrepo "github.com/bskpay/bsk_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bskpay/bsk_ledger_app/internal/core/ports/services"
	"github.com/bskpay/bsk_ledger_app/internal/dto"
	"github.com/bskpay/bsk_ledger_app/internal/middleware"
)

var (
	ErrSelfReferral     = errors.New("account cannot sponsor itself")
	ErrRuleLevelInvalid = errors.New("rule level must be between 1 and the maximum referral depth")
)

// referralService manages the write-once sponsor tree and the commission rule
// table. Sponsor bindings are immutable, which is what keeps the tree acyclic
// without runtime cycle detection.
type referralService struct {
	referralRepo portsrepo.ReferralRepository
	ruleRepo     portsrepo.CommissionRuleRepository
	accountRepo  portsrepo.AccountRepository
}

// NewReferralService creates a new ReferralService.
func NewReferralService(
	referralRepo portsrepo.ReferralRepository,
	ruleRepo portsrepo.CommissionRuleRepository,
	accountRepo portsrepo.AccountRepository,
) portssvc.ReferralSvcFacade {
	return &referralService{
		referralRepo: referralRepo,
		ruleRepo:     ruleRepo,
		accountRepo:  accountRepo,
	}
}

// Ensure referralService implements the portssvc.ReferralSvcFacade interface
var _ portssvc.ReferralSvcFacade = (*referralService)(nil)

func (s *referralService) BindSponsor(ctx context.Context, req dto.BindSponsorRequest, requestedBy string) (*domain.ReferralEdge, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ChildAccountID == req.ParentAccountID {
		return nil, ErrSelfReferral
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{req.ChildAccountID, req.ParentAccountID})
	if err != nil {
		return nil, err
	}
	for _, id := range []string{req.ChildAccountID, req.ParentAccountID} {
		if _, found := accounts[id]; !found {
			return nil, fmt.Errorf("account %s: %w", id, ErrAccountNotFound)
		}
	}

	edge := domain.ReferralEdge{
		ChildAccountID:  req.ChildAccountID,
		ParentAccountID: req.ParentAccountID,
		LockedAt:        time.Now(),
	}
	if err := s.referralRepo.CreateEdge(ctx, edge); err != nil {
		return nil, err
	}

	logger.Info("Sponsor bound",
		slog.String("child_account_id", edge.ChildAccountID),
		slog.String("parent_account_id", edge.ParentAccountID),
	)
	return &edge, nil
}

func (s *referralService) ListRules(ctx context.Context) ([]domain.CommissionRule, error) {
	return s.ruleRepo.ListRules(ctx)
}

func (s *referralService) UpsertRule(ctx context.Context, req dto.CommissionRuleRequest, adminID string) error {
	if req.Level < 1 || req.Level > domain.MaxCommissionDepth {
		return fmt.Errorf("level %d: %w", req.Level, ErrRuleLevelInvalid)
	}
	if !req.Percent.IsPositive() {
		return ErrAmountNotPositive
	}

	now := time.Now()
	rule := domain.CommissionRule{
		BadgeTier: domain.BadgeTier(req.BadgeTier),
		Level:     req.Level,
		Percent:   req.Percent,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     adminID,
			LastUpdatedAt: now,
			LastUpdatedBy: adminID,
		},
	}
	if err := s.ruleRepo.UpsertRule(ctx, rule); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Commission rule upserted",
		slog.String("badge_tier", req.BadgeTier),
		slog.Int("level", req.Level),
		slog.String("percent", req.Percent.String()),
	)
	return nil
}
