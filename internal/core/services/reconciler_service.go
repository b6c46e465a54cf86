package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	portsrepo "github.com/bskpay/bsk_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/bskpay/bsk_ledger_app/internal/core/ports/services"
	"github.com/bskpay/bsk_ledger_app/internal/middleware"
)

// reconcilerService finds and releases ghost locks: unreleased locks whose
// order or withdrawal already reached a terminal state. Candidate listing is
// only a hint; the release decision is re-checked row by row inside each
// release transaction, so the job can run concurrently with live completion.
type reconcilerService struct {
	lockRepo portsrepo.LockRepository

	maxAge    time.Duration
	batchSize int
}

// NewReconcilerService creates a new ReconcilerService.
func NewReconcilerService(lockRepo portsrepo.LockRepository, maxAge time.Duration, batchSize int) portssvc.ReconcilerSvcFacade {
	return &reconcilerService{
		lockRepo:  lockRepo,
		maxAge:    maxAge,
		batchSize: batchSize,
	}
}

// Ensure reconcilerService implements the portssvc.ReconcilerSvcFacade interface
var _ portssvc.ReconcilerSvcFacade = (*reconcilerService)(nil)

func (s *reconcilerService) FixGhostLocks(ctx context.Context, triggeredBy string) ([]domain.GhostLockReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()
	cutoff := now.Add(-s.maxAge)

	candidates, err := s.lockRepo.FindGhostCandidates(ctx, cutoff, s.batchSize)
	if err != nil {
		return nil, err
	}

	reports := make([]domain.GhostLockReport, 0, len(candidates))
	released := 0
	for _, candidate := range candidates {
		report, err := s.lockRepo.ReleaseIfGhost(ctx, candidate.LockID, cutoff, triggeredBy, now)
		if err != nil {
			// One stuck lock must not abort the sweep; record it and move on.
			logger.Error("Ghost lock check failed",
				slog.String("lock_id", candidate.LockID), slog.String("error", err.Error()))
			reports = append(reports, domain.GhostLockReport{
				LockID:   candidate.LockID,
				Released: false,
				Reason:   "check failed: " + err.Error(),
			})
			continue
		}
		if report.Released {
			released++
		}
		reports = append(reports, report)
	}

	logger.Info("Ghost lock reconciliation completed",
		slog.Int("candidates", len(candidates)),
		slog.Int("released", released),
		slog.String("triggered_by", triggeredBy),
	)
	return reports, nil
}
