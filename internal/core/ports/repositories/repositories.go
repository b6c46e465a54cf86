package repositories

// RepositoryProvider aggregates every repository implementation for wiring.
type RepositoryProvider struct {
	AccountRepo     AccountRepository
	BalanceRepo     BalanceRepository
	LedgerRepo      LedgerRepository
	LockRepo        LockRepository
	ReferralRepo    ReferralRepository
	RuleRepo        CommissionRuleRepository
	IdempotencyRepo IdempotencyRepository
	SettingsRepo    SettingsRepository
}
