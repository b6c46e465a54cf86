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
	"github.com/bskpay/bsk_ledger_app/internal/dto"
	"github.com/bskpay/bsk_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	ErrSelfTransfer      = errors.New("sender and recipient must differ")
	ErrTransferDisabled  = errors.New("transfers are currently disabled")
	ErrDailyCapExceeded  = errors.New("daily transfer cap exceeded")
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountInactive   = errors.New("account is not active")
	ErrAmountNotPositive = errors.New("amount must be positive")
)

const transferOperation = "transfer"

// transferService implements the atomic user-to-user transfer.
type transferService struct {
	accountRepo  portsrepo.AccountRepository
	ledgerRepo   portsrepo.LedgerRepository
	settingsRepo portsrepo.SettingsRepository
	guard        *idempotencyGuard
	notifier     portssvc.TransactionNotifier

	dailyCap      decimal.Decimal
	retryAttempts int
	retryBackoff  time.Duration
}

// NewTransferService creates a new TransferService.
func NewTransferService(
	accountRepo portsrepo.AccountRepository,
	ledgerRepo portsrepo.LedgerRepository,
	settingsRepo portsrepo.SettingsRepository,
	idempotencyRepo portsrepo.IdempotencyRepository,
	notifier portssvc.TransactionNotifier,
	dailyCap decimal.Decimal,
	retryAttempts int,
	retryBackoff time.Duration,
) portssvc.TransferSvcFacade {
	return &transferService{
		accountRepo:   accountRepo,
		ledgerRepo:    ledgerRepo,
		settingsRepo:  settingsRepo,
		guard:         newIdempotencyGuard(idempotencyRepo),
		notifier:      notifier,
		dailyCap:      dailyCap,
		retryAttempts: retryAttempts,
		retryBackoff:  retryBackoff,
	}
}

// Ensure transferService implements the portssvc.TransferSvcFacade interface
var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// Transfer moves withdrawable BSK from sender to recipient. All checks and
// mutations for one call commit or roll back together; the idempotency key is
// claimed before execution and released again when the execution fails.
func (s *transferService) Transfer(ctx context.Context, req dto.TransferRequest, callerID string) (*domain.TransferResult, bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	if !req.Amount.IsPositive() {
		return nil, false, ErrAmountNotPositive
	}
	if req.SenderID == req.RecipientID {
		return nil, false, ErrSelfTransfer
	}

	enabled, err := s.settingsRepo.IsTransferEnabled(ctx)
	if err != nil {
		return nil, false, err
	}
	if !enabled {
		logger.Warn("Transfer rejected: transfers disabled", slog.String("sender_id", req.SenderID))
		return nil, false, ErrTransferDisabled
	}

	snapshot, replay, err := s.guard.Begin(ctx, req.IdempotencyKey, transferOperation, now)
	if err != nil {
		return nil, false, err
	}
	if replay {
		var result domain.TransferResult
		if err := json.Unmarshal(snapshot, &result); err != nil {
			return nil, false, fmt.Errorf("failed to decode stored transfer result for key %s: %w", req.IdempotencyKey, err)
		}
		logger.Info("Transfer replayed from idempotency snapshot", slog.String("reference", result.Reference))
		return &result, true, nil
	}

	result, err := s.execute(ctx, req, callerID, now)
	if err != nil {
		s.guard.Abort(ctx, req.IdempotencyKey)
		return nil, false, err
	}

	if err := s.guard.Commit(ctx, req.IdempotencyKey, result); err != nil {
		// The ledger write is already durable; a failed snapshot store only
		// degrades a future replay into a duplicate-in-flight error.
		logger.Error("Failed to store transfer idempotency snapshot",
			slog.String("key", req.IdempotencyKey), slog.String("error", err.Error()))
	}

	if s.notifier != nil {
		s.notifier.TransferCommitted(ctx, *result)
	}

	logger.Info("Transfer committed",
		slog.String("reference", result.Reference),
		slog.String("sender_id", req.SenderID),
		slog.String("recipient_id", req.RecipientID),
		slog.String("amount", req.Amount.String()),
	)
	return result, false, nil
}

func (s *transferService) execute(ctx context.Context, req dto.TransferRequest, callerID string, now time.Time) (*domain.TransferResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{req.SenderID, req.RecipientID})
	if err != nil {
		return nil, err
	}
	for _, id := range []string{req.SenderID, req.RecipientID} {
		account, found := accounts[id]
		if !found {
			return nil, fmt.Errorf("account %s: %w", id, ErrAccountNotFound)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("account %s: %w", id, ErrAccountInactive)
		}
	}

	if err := s.checkDailyCap(ctx, req.SenderID, req.Amount, now); err != nil {
		return nil, err
	}

	reference := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     callerID,
		LastUpdatedAt: now,
		LastUpdatedBy: callerID,
	}
	entries := []domain.LedgerEntry{
		{
			EntryID:        uuid.NewString(),
			AccountID:      req.SenderID,
			BalanceType:    domain.Withdrawable,
			Delta:          req.Amount.Neg(),
			ReasonCode:     domain.ReasonTransferDebit,
			ReferenceID:    reference,
			IdempotencyKey: req.IdempotencyKey,
			AuditFields:    audit,
		},
		{
			EntryID:        uuid.NewString(),
			AccountID:      req.RecipientID,
			BalanceType:    domain.Withdrawable,
			Delta:          req.Amount,
			ReasonCode:     domain.ReasonTransferCredit,
			ReferenceID:    reference,
			IdempotencyKey: req.IdempotencyKey,
			AuditFields:    audit,
		},
	}
	adjustments := []domain.BalanceAdjustment{
		{AccountID: req.SenderID, BalanceType: domain.Withdrawable, AvailableDelta: req.Amount.Neg()},
		{AccountID: req.RecipientID, BalanceType: domain.Withdrawable, AvailableDelta: req.Amount},
	}

	// Balance-after values come out of the ledger write's own transaction. A
	// separate read here could see the effect of a concurrent operation that
	// committed in between.
	var balances map[string]domain.Balance
	err = withLockRetry(ctx, s.retryAttempts, s.retryBackoff, func() error {
		var recordErr error
		balances, recordErr = s.ledgerRepo.RecordEntries(ctx, entries, adjustments)
		return recordErr
	})
	if err != nil {
		logger.Warn("Transfer ledger write failed", slog.String("reference", reference), slog.String("error", err.Error()))
		return nil, err
	}

	return &domain.TransferResult{
		Reference:             reference,
		SenderBalanceAfter:    balances[adjustments[0].BalanceKey()].Total(),
		RecipientBalanceAfter: balances[adjustments[1].BalanceKey()].Total(),
	}, nil
}

// checkDailyCap totals what the sender already sent in the rolling 24h window.
// Transfer debits are negative deltas, so the accrued total is the negated sum.
func (s *transferService) checkDailyCap(ctx context.Context, senderID string, amount decimal.Decimal, now time.Time) error {
	if !s.dailyCap.IsPositive() {
		return nil
	}
	sum, err := s.ledgerRepo.SumDeltasByReasonSince(ctx, senderID, domain.ReasonTransferDebit, now.Add(-24*time.Hour))
	if err != nil {
		return err
	}
	sentToday := sum.Neg()
	if sentToday.Add(amount).GreaterThan(s.dailyCap) {
		return fmt.Errorf("%w: %s sent in the last 24h, cap is %s", ErrDailyCapExceeded, sentToday.String(), s.dailyCap.String())
	}
	return nil
}
