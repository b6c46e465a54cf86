package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	portsrepo "github.com/bskpay/bsk_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bskpay/bsk_ledger_app/internal/core/ports/services"
	"github.com/bskpay/bsk_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// ErrReferralCycle flags a payer appearing in its own ancestor chain. The
// write-once edge rule makes this impossible by construction, so hitting it
// means corrupted referral data; the fan-out aborts and is never retried.
var ErrReferralCycle = errors.New("payer appears in its own referral chain")

const commissionOperation = "commission"

// commissionService walks the referral chain upward from a payer and credits
// every ancestor whose badge tier unlocks its depth, as one atomic ledger
// write per triggering event.
type commissionService struct {
	referralRepo portsrepo.ReferralRepository
	ruleRepo     portsrepo.CommissionRuleRepository
	ledgerRepo   portsrepo.LedgerRepository
	guard        *idempotencyGuard
	notifier     portssvc.TransactionNotifier

	roundPlaces   int32
	retryAttempts int
	retryBackoff  time.Duration
}

// NewCommissionService creates a new CommissionService.
func NewCommissionService(
	referralRepo portsrepo.ReferralRepository,
	ruleRepo portsrepo.CommissionRuleRepository,
	ledgerRepo portsrepo.LedgerRepository,
	idempotencyRepo portsrepo.IdempotencyRepository,
	notifier portssvc.TransactionNotifier,
	roundPlaces int32,
	retryAttempts int,
	retryBackoff time.Duration,
) portssvc.CommissionSvcFacade {
	return &commissionService{
		referralRepo:  referralRepo,
		ruleRepo:      ruleRepo,
		ledgerRepo:    ledgerRepo,
		guard:         newIdempotencyGuard(idempotencyRepo),
		notifier:      notifier,
		roundPlaces:   roundPlaces,
		retryAttempts: retryAttempts,
		retryBackoff:  retryBackoff,
	}
}

// Ensure commissionService implements the portssvc.CommissionSvcFacade interface
var _ portssvc.CommissionSvcFacade = (*commissionService)(nil)

func (s *commissionService) Distribute(ctx context.Context, event domain.CommissionEvent) (*domain.CommissionResult, bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	if !event.BaseAmount.IsPositive() {
		return nil, false, ErrAmountNotPositive
	}

	snapshot, replay, err := s.guard.Begin(ctx, event.IdempotencyKey, commissionOperation, now)
	if err != nil {
		return nil, false, err
	}
	if replay {
		var result domain.CommissionResult
		if err := json.Unmarshal(snapshot, &result); err != nil {
			return nil, false, fmt.Errorf("failed to decode stored fan-out result for key %s: %w", event.IdempotencyKey, err)
		}
		logger.Info("Commission fan-out replayed from idempotency snapshot", slog.String("event_key", result.EventKey))
		return &result, true, nil
	}

	result, err := s.execute(ctx, event, now)
	if err != nil {
		s.guard.Abort(ctx, event.IdempotencyKey)
		return nil, false, err
	}

	if err := s.guard.Commit(ctx, event.IdempotencyKey, result); err != nil {
		logger.Error("Failed to store fan-out idempotency snapshot",
			slog.String("key", event.IdempotencyKey), slog.String("error", err.Error()))
	}

	if s.notifier != nil {
		s.notifier.CommissionSettled(ctx, *result)
	}

	logger.Info("Commission fan-out settled",
		slog.String("event_key", result.EventKey),
		slog.String("payer_id", event.PayerAccountID),
		slog.Int("payout_count", len(result.Payouts)),
		slog.String("total_paid", result.TotalPaid.String()),
	)
	return result, false, nil
}

func (s *commissionService) execute(ctx context.Context, event domain.CommissionEvent, now time.Time) (*domain.CommissionResult, error) {
	ancestors, err := s.referralRepo.FindAncestorChain(ctx, event.PayerAccountID, domain.MaxCommissionDepth)
	if err != nil {
		return nil, err
	}
	for _, ancestor := range ancestors {
		if ancestor.AccountID == event.PayerAccountID {
			return nil, fmt.Errorf("account %s at depth %d: %w", event.PayerAccountID, ancestor.Depth, ErrReferralCycle)
		}
	}

	rules, err := s.ruleRepo.ListRules(ctx)
	if err != nil {
		return nil, err
	}
	percentByTierLevel := make(map[domain.BadgeTier]map[int]decimal.Decimal, len(rules))
	for _, rule := range rules {
		if percentByTierLevel[rule.BadgeTier] == nil {
			percentByTierLevel[rule.BadgeTier] = make(map[int]decimal.Decimal)
		}
		percentByTierLevel[rule.BadgeTier][rule.Level] = rule.Percent
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     event.PayerAccountID,
		LastUpdatedAt: now,
		LastUpdatedBy: event.PayerAccountID,
	}
	reference := uuid.NewString()
	hundred := decimal.NewFromInt(100)

	var entries []domain.LedgerEntry
	var adjustments []domain.BalanceAdjustment
	var payouts []domain.CommissionPayout
	totalPaid := decimal.Zero

	for _, ancestor := range ancestors {
		percent, unlocked := percentByTierLevel[ancestor.BadgeTier][ancestor.Depth]
		if !unlocked {
			continue
		}
		amount := event.BaseAmount.Mul(percent).Div(hundred).Round(s.roundPlaces)
		if !amount.IsPositive() {
			continue
		}
		entries = append(entries, domain.LedgerEntry{
			EntryID:        uuid.NewString(),
			AccountID:      ancestor.AccountID,
			BalanceType:    domain.Withdrawable,
			Delta:          amount,
			ReasonCode:     domain.CommissionReason(ancestor.Depth, event.EventType),
			ReferenceID:    reference,
			IdempotencyKey: event.IdempotencyKey,
			AuditFields:    audit,
		})
		adjustments = append(adjustments, domain.BalanceAdjustment{
			AccountID:      ancestor.AccountID,
			BalanceType:    domain.Withdrawable,
			AvailableDelta: amount,
		})
		payouts = append(payouts, domain.CommissionPayout{
			AccountID: ancestor.AccountID,
			Depth:     ancestor.Depth,
			Amount:    amount,
		})
		totalPaid = totalPaid.Add(amount)
	}

	// A chain with no unlocked depths still settles: the event key commits
	// with an empty payout list so retries stay no-ops.
	if len(entries) > 0 {
		err = withLockRetry(ctx, s.retryAttempts, s.retryBackoff, func() error {
			_, recordErr := s.ledgerRepo.RecordEntries(ctx, entries, adjustments)
			return recordErr
		})
		if err != nil {
			return nil, err
		}
	}

	return &domain.CommissionResult{
		EventKey:   event.IdempotencyKey,
		Payouts:    payouts,
		TotalPaid:  totalPaid,
		DepthsSeen: len(ancestors),
	}, nil
}
