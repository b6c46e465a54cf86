package services

import (
	"context"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
)

// CommissionSvcFacade is the fan-out engine. Distribution is a separately
// idempotent follow-up to the triggering commercial event: at-least-once
// delivery with the event's own idempotency key makes retries safe.
type CommissionSvcFacade interface {
	// Distribute walks the referral chain upward from the payer and credits
	// every ancestor whose badge tier unlocks its depth, all in one ledger
	// write. The bool reports an idempotent replay.
	Distribute(ctx context.Context, event domain.CommissionEvent) (*domain.CommissionResult, bool, error)
}

// ReconcilerSvcFacade is the ghost-lock repair job, callable on demand or on
// schedule, and safe to run concurrently with live order completion.
type ReconcilerSvcFacade interface {
	FixGhostLocks(ctx context.Context, triggeredBy string) ([]domain.GhostLockReport, error)
}
