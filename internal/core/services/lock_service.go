package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	portsrepo "github.com/bskpay/bsk_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bskpay/bsk_ledger_app/internal/core/ports/services"
	"github.com/bskpay/bsk_ledger_app/internal/dto"
	"github.com/bskpay/bsk_ledger_app/internal/middleware"
)

// lockService reserves and releases balance portions for in-flight orders and
// withdrawals. The repository moves available <-> locked atomically with the
// lock row, so the service adds only validation and audit stamping.
type lockService struct {
	lockRepo    portsrepo.LockRepository
	accountRepo portsrepo.AccountRepository
}

// NewLockService creates a new LockService.
func NewLockService(lockRepo portsrepo.LockRepository, accountRepo portsrepo.AccountRepository) portssvc.LockSvcFacade {
	return &lockService{lockRepo: lockRepo, accountRepo: accountRepo}
}

// Ensure lockService implements the portssvc.LockSvcFacade interface
var _ portssvc.LockSvcFacade = (*lockService)(nil)

func (s *lockService) Reserve(ctx context.Context, req dto.ReserveLockRequest, requestedBy string) (*domain.BalanceLock, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	if !req.Amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, ErrAccountInactive
	}

	lock := domain.BalanceLock{
		LockID:      uuid.NewString(),
		AccountID:   req.AccountID,
		BalanceType: domain.BalanceType(req.BalanceType),
		Amount:      req.Amount,
		Purpose:     domain.LockPurpose(req.Purpose),
		ReferenceID: req.ReferenceID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: requestedBy,
		},
	}

	if err := s.lockRepo.CreateLock(ctx, lock); err != nil {
		return nil, err
	}

	logger.Info("Balance lock reserved",
		slog.String("lock_id", lock.LockID),
		slog.String("account_id", lock.AccountID),
		slog.String("purpose", string(lock.Purpose)),
		slog.String("amount", lock.Amount.String()),
	)
	return &lock, nil
}

func (s *lockService) Release(ctx context.Context, lockID string, releasedBy string) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	released, err := s.lockRepo.ReleaseLock(ctx, lockID, releasedBy, time.Now())
	if err != nil {
		return false, err
	}
	if !released {
		logger.Info("Lock release was a no-op, already released", slog.String("lock_id", lockID))
		return false, nil
	}

	logger.Info("Balance lock released", slog.String("lock_id", lockID))
	return true, nil
}
