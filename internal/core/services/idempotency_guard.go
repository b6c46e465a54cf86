package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	portsrepo "github.com/bskpay/bsk_ledger_app/internal/core/ports/repositories"
	"github.com/bskpay/bsk_ledger_app/internal/middleware"
)

// idempotencyGuard wraps the durable key store with the begin/commit/abort
// protocol every idempotent operation follows. Claiming the key is the very
// first step of an execution, committing the snapshot is the last, and an
// aborted execution removes the claim so the client retry can run fresh.
type idempotencyGuard struct {
	repo portsrepo.IdempotencyRepository
}

func newIdempotencyGuard(repo portsrepo.IdempotencyRepository) *idempotencyGuard {
	return &idempotencyGuard{repo: repo}
}

// Begin claims the key for a first execution. It returns (nil, false, nil)
// when the caller should execute, or (snapshot, true, nil) when a completed
// execution already holds the key. A concurrent in-flight execution fails
// with domain.ErrDuplicateInFlight.
func (g *idempotencyGuard) Begin(ctx context.Context, key string, operation string, now time.Time) ([]byte, bool, error) {
	record, isNew, err := g.repo.TryBegin(ctx, key, operation, now)
	if err != nil {
		return nil, false, err
	}
	if isNew {
		return nil, false, nil
	}
	if record.Operation != operation {
		return nil, false, fmt.Errorf("idempotency key %s already used by operation %s: %w", key, record.Operation, domain.ErrDuplicateInFlight)
	}
	if record.Status == domain.IdempotencyCompleted {
		return record.ResultSnapshot, true, nil
	}
	return nil, false, domain.ErrDuplicateInFlight
}

// Commit marshals the result and marks the key replayable.
func (g *idempotencyGuard) Commit(ctx context.Context, key string, result any) error {
	snapshot, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result snapshot for key %s: %w", key, err)
	}
	return g.repo.Complete(ctx, key, snapshot)
}

// Abort releases a claimed key after a failed execution. A failure to release
// is logged and swallowed; the key expires with the retention window anyway.
func (g *idempotencyGuard) Abort(ctx context.Context, key string) {
	if err := g.repo.Remove(ctx, key); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to release idempotency key after aborted execution",
			slog.String("key", key), slog.String("error", err.Error()))
	}
}
