package domain

import "errors"

// ErrInsufficientFunds is returned when an adjustment would take an available
// or locked balance below zero. Balances are never silently clamped.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrLedgerImbalance is an invariant-violation-class error: a batch of ledger
// entries failed the double-entry check. It is never retried automatically and
// must be escalated for investigation.
var ErrLedgerImbalance = errors.New("ledger entries do not balance")

// ErrDuplicateInFlight is returned when a second request arrives for an
// idempotency key whose first execution has not yet committed.
var ErrDuplicateInFlight = errors.New("duplicate request in flight")
