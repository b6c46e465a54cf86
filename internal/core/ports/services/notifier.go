package services

import (
	"context"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
)

// TransactionNotifier is told about committed transactions so outer layers can
// refresh projections or push notifications. The ledger core never depends on
// any pub/sub mechanism for correctness: a notifier failure is logged, not
// propagated.
type TransactionNotifier interface {
	TransferCommitted(ctx context.Context, result domain.TransferResult)
	CommissionSettled(ctx context.Context, result domain.CommissionResult)
}
