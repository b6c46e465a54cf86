package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	portsrepo "github.com/bskpay/bsk_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bskpay/bsk_ledger_app/internal/core/ports/services"
	"github.com/bskpay/bsk_ledger_app/internal/dto"
	"github.com/bskpay/bsk_ledger_app/internal/middleware"
)

const adminAdjustOperation = "admin_adjust"

// adminService implements one-sided mint/burn adjustments. These entries are
// exempt from the double-entry check and separately audited via their
// ADMIN_* reason codes.
type adminService struct {
	accountRepo     portsrepo.AccountRepository
	ledgerRepo      portsrepo.LedgerRepository
	settingsRepo    portsrepo.SettingsRepository
	idempotencyRepo portsrepo.IdempotencyRepository
	guard           *idempotencyGuard

	idempotencyRetention time.Duration
	retryAttempts        int
	retryBackoff         time.Duration
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	accountRepo portsrepo.AccountRepository,
	ledgerRepo portsrepo.LedgerRepository,
	settingsRepo portsrepo.SettingsRepository,
	idempotencyRepo portsrepo.IdempotencyRepository,
	idempotencyRetention time.Duration,
	retryAttempts int,
	retryBackoff time.Duration,
) portssvc.AdminSvcFacade {
	return &adminService{
		accountRepo:          accountRepo,
		ledgerRepo:           ledgerRepo,
		settingsRepo:         settingsRepo,
		idempotencyRepo:      idempotencyRepo,
		guard:                newIdempotencyGuard(idempotencyRepo),
		idempotencyRetention: idempotencyRetention,
		retryAttempts:        retryAttempts,
		retryBackoff:         retryBackoff,
	}
}

// Ensure adminService implements the portssvc.AdminSvcFacade interface
var _ portssvc.AdminSvcFacade = (*adminService)(nil)

func (s *adminService) Adjust(ctx context.Context, req dto.AdminAdjustRequest, adminID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	if !req.Amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}

	snapshot, replay, err := s.guard.Begin(ctx, req.IdempotencyKey, adminAdjustOperation, now)
	if err != nil {
		return nil, err
	}
	if replay {
		var entry domain.LedgerEntry
		if err := json.Unmarshal(snapshot, &entry); err != nil {
			return nil, fmt.Errorf("failed to decode stored adjustment for key %s: %w", req.IdempotencyKey, err)
		}
		return &entry, nil
	}

	entry, err := s.execute(ctx, req, adminID, now)
	if err != nil {
		s.guard.Abort(ctx, req.IdempotencyKey)
		return nil, err
	}

	if err := s.guard.Commit(ctx, req.IdempotencyKey, entry); err != nil {
		logger.Error("Failed to store adjustment idempotency snapshot",
			slog.String("key", req.IdempotencyKey), slog.String("error", err.Error()))
	}

	logger.Info("Admin adjustment committed",
		slog.String("entry_id", entry.EntryID),
		slog.String("account_id", req.AccountID),
		slog.String("direction", req.Direction),
		slog.String("amount", req.Amount.String()),
	)
	return entry, nil
}

// CreateAccount registers a new active account. Accounts start at tier NONE
// and own no balance rows until their first credit.
func (s *adminService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, adminID string) (*domain.Account, error) {
	now := time.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		DisplayName: req.DisplayName,
		BadgeTier:   domain.TierNone,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     adminID,
			LastUpdatedAt: now,
			LastUpdatedBy: adminID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Account created",
		slog.String("account_id", account.AccountID), slog.String("admin_id", adminID))
	return &account, nil
}

// SetBadgeTier moves an account to the given tier. The fan-out reads each
// ancestor's current tier, so the change gates future commissions immediately.
func (s *adminService) SetBadgeTier(ctx context.Context, accountID string, tier domain.BadgeTier, adminID string) error {
	if err := s.accountRepo.UpdateBadgeTier(ctx, accountID, tier, adminID, time.Now()); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Badge tier updated",
		slog.String("account_id", accountID),
		slog.String("badge_tier", string(tier)),
		slog.String("admin_id", adminID))
	return nil
}

// PurgeIdempotencyKeys garbage-collects records older than the retention
// window. The delete is status-agnostic, so a key left IN_FLIGHT by a crash
// between the ledger write and the snapshot store becomes retryable again once
// it ages out.
func (s *adminService) PurgeIdempotencyKeys(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.idempotencyRetention)
	purged, err := s.idempotencyRepo.DeleteExpired(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Idempotency keys purged",
		slog.Int64("purged", purged), slog.Time("cutoff", cutoff))
	return purged, nil
}

func (s *adminService) SetTransferEnabled(ctx context.Context, enabled bool, adminID string) error {
	if err := s.settingsRepo.SetTransferEnabled(ctx, enabled, adminID); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Transfer policy updated",
		slog.Bool("enabled", enabled), slog.String("admin_id", adminID))
	return nil
}

func (s *adminService) execute(ctx context.Context, req dto.AdminAdjustRequest, adminID string, now time.Time) (*domain.LedgerEntry, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("account %s: %w", req.AccountID, ErrAccountInactive)
	}

	delta := req.Amount
	reason := domain.ReasonAdminCredit
	if req.Direction == "DEBIT" {
		delta = delta.Neg()
		reason = domain.ReasonAdminDebit
	}

	entry := domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		AccountID:      req.AccountID,
		BalanceType:    domain.BalanceType(req.BalanceType),
		Delta:          delta,
		ReasonCode:     reason,
		ReferenceID:    uuid.NewString(),
		IdempotencyKey: req.IdempotencyKey,
		Note:           req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     adminID,
			LastUpdatedAt: now,
			LastUpdatedBy: adminID,
		},
	}
	adjustments := []domain.BalanceAdjustment{
		{AccountID: req.AccountID, BalanceType: entry.BalanceType, AvailableDelta: delta},
	}

	err = withLockRetry(ctx, s.retryAttempts, s.retryBackoff, func() error {
		_, recordErr := s.ledgerRepo.RecordEntries(ctx, []domain.LedgerEntry{entry}, adjustments)
		return recordErr
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
