package pgsql

import (
	portsrepo "github.com/bskpay/bsk_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	balanceRepo := newPgxBalanceRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, balanceRepo)
	lockRepo := newPgxLockRepository(dbPool, balanceRepo)
	referralRepo := newPgxReferralRepository(dbPool)
	ruleRepo := newPgxCommissionRuleRepository(dbPool)
	idempotencyRepo := newPgxIdempotencyRepository(dbPool)
	settingsRepo := newPgxSettingsRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		BalanceRepo:     balanceRepo,
		LedgerRepo:      ledgerRepo,
		LockRepo:        lockRepo,
		ReferralRepo:    referralRepo,
		RuleRepo:        ruleRepo,
		IdempotencyRepo: idempotencyRepo,
		SettingsRepo:    settingsRepo,
	}
}
