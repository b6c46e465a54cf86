package services

// ServiceContainer aggregates every service facade for route registration.
type ServiceContainer struct {
	Transfer   TransferSvcFacade
	Admin      AdminSvcFacade
	Ledger     LedgerSvcFacade
	Balance    BalanceSvcFacade
	Lock       LockSvcFacade
	Referral   ReferralSvcFacade
	Commission CommissionSvcFacade
	Reconciler ReconcilerSvcFacade
}
