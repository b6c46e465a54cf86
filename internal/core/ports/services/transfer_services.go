package services

import (
	"context"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	"github.com/bskpay/bsk_ledger_app/internal/dto"
)

// TransferSvcFacade is the public atomic transfer operation. Every failure
// mode rolls back entirely; no call leaves partial state.
type TransferSvcFacade interface {
	// Transfer moves withdrawable BSK from sender to recipient under the
	// caller-supplied idempotency key. A replay with the same key returns the
	// stored snapshot without re-executing side effects.
	Transfer(ctx context.Context, req dto.TransferRequest, callerID string) (*domain.TransferResult, bool, error)
}

// AdminSvcFacade covers the one-sided, separately audited system operations.
type AdminSvcFacade interface {
	// Adjust mints or burns BSK on a single balance with an ADMIN_* reason.
	Adjust(ctx context.Context, req dto.AdminAdjustRequest, adminID string) (*domain.LedgerEntry, error)

	// CreateAccount registers a new active account at tier NONE.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, adminID string) (*domain.Account, error)

	// SetBadgeTier moves an account to the given tier. The change is read by
	// the next commission fan-out that visits the account.
	SetBadgeTier(ctx context.Context, accountID string, tier domain.BadgeTier, adminID string) error

	// SetTransferEnabled toggles the platform-wide transfer policy gate.
	SetTransferEnabled(ctx context.Context, enabled bool, adminID string) error

	// PurgeIdempotencyKeys deletes idempotency records older than the retention
	// window, including keys stranded in flight by a crash mid-operation.
	PurgeIdempotencyKeys(ctx context.Context) (int64, error)
}

// LedgerSvcFacade exposes read-only ledger projections.
type LedgerSvcFacade interface {
	ListEntriesByAccount(ctx context.Context, accountID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}
