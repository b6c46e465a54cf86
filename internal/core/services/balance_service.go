package services

import (
	"context"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	portsrepo "github.com/bskpay/bsk_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bskpay/bsk_ledger_app/internal/core/ports/services"
)

// balanceService is the read-only balance projection. Balance rows are created
// lazily on first credit, so an account with no rows simply returns an empty
// slice.
type balanceService struct {
	balanceRepo portsrepo.BalanceRepository
	accountRepo portsrepo.AccountRepository
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(balanceRepo portsrepo.BalanceRepository, accountRepo portsrepo.AccountRepository) portssvc.BalanceSvcFacade {
	return &balanceService{balanceRepo: balanceRepo, accountRepo: accountRepo}
}

// Ensure balanceService implements the portssvc.BalanceSvcFacade interface
var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

func (s *balanceService) GetBalances(ctx context.Context, accountID string) ([]domain.Balance, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.balanceRepo.FindBalancesByAccount(ctx, accountID)
}
