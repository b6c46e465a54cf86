package services

import (
	"context"

	portsrepo "github.com/bskpay/bsk_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bskpay/bsk_ledger_app/internal/core/ports/services"
	"github.com/bskpay/bsk_ledger_app/internal/dto"
)

const (
	defaultEntriesPageSize = 20
	maxEntriesPageSize     = 100
)

// ledgerService exposes read-only paginated ledger projections.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepository
	accountRepo portsrepo.AccountRepository
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, accountRepo portsrepo.AccountRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo, accountRepo: accountRepo}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) ListEntriesByAccount(ctx context.Context, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultEntriesPageSize
	}
	if limit > maxEntriesPageSize {
		limit = maxEntriesPageSize
	}

	entries, nextToken, err := s.ledgerRepo.ListEntriesByAccount(ctx, accountID, limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}
