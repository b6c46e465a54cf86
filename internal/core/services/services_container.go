package services

import (
	portsrepo "github.com/bskpay/bsk_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bskpay/bsk_ledger_app/internal/core/ports/services"
	"github.com/bskpay/bsk_ledger_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.TransactionNotifier) *portssvc.ServiceContainer {
	if notifier == nil {
		notifier = NewLogNotifier()
	}

	container := &portssvc.ServiceContainer{}

	container.Transfer = NewTransferService(
		repos.AccountRepo,
		repos.LedgerRepo,
		repos.SettingsRepo,
		repos.IdempotencyRepo,
		notifier,
		cfg.DailyTransferCap,
		cfg.LockRetryAttempts,
		cfg.LockRetryBackoff,
	)
	container.Admin = NewAdminService(
		repos.AccountRepo,
		repos.LedgerRepo,
		repos.SettingsRepo,
		repos.IdempotencyRepo,
		cfg.IdempotencyRetention,
		cfg.LockRetryAttempts,
		cfg.LockRetryBackoff,
	)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.AccountRepo)
	container.Balance = NewBalanceService(repos.BalanceRepo, repos.AccountRepo)
	container.Lock = NewLockService(repos.LockRepo, repos.AccountRepo)
	container.Referral = NewReferralService(repos.ReferralRepo, repos.RuleRepo, repos.AccountRepo)
	container.Commission = NewCommissionService(
		repos.ReferralRepo,
		repos.RuleRepo,
		repos.LedgerRepo,
		repos.IdempotencyRepo,
		notifier,
		cfg.CommissionRoundPlaces,
		cfg.LockRetryAttempts,
		cfg.LockRetryBackoff,
	)
	container.Reconciler = NewReconcilerService(repos.LockRepo, cfg.GhostLockMaxAge, cfg.GhostLockBatchSize)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TransferSvcFacade   = (*transferService)(nil)
	_ portssvc.CommissionSvcFacade = (*commissionService)(nil)
	_ portssvc.ReconcilerSvcFacade = (*reconcilerService)(nil)
)
