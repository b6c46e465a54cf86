package services_test

import (
	"context"
	"time"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateBadgeTier(ctx context.Context, accountID string, tier domain.BadgeTier, updatedBy string, now time.Time) error {
	args := m.Called(ctx, accountID, tier, updatedBy, now)
	return args.Error(0)
}

// --- Mock BalanceRepository ---
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) FindBalance(ctx context.Context, accountID string, balanceType domain.BalanceType) (*domain.Balance, error) {
	args := m.Called(ctx, accountID, balanceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) FindBalancesByAccount(ctx context.Context, accountID string) ([]domain.Balance, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) EnsureBalancesInTx(ctx context.Context, tx pgx.Tx, adjustments []domain.BalanceAdjustment, userID string, now time.Time) error {
	args := m.Called(ctx, tx, adjustments, userID, now)
	return args.Error(0)
}

func (m *MockBalanceRepository) FindBalancesForUpdate(ctx context.Context, tx pgx.Tx, adjustments []domain.BalanceAdjustment) (map[string]domain.Balance, error) {
	args := m.Called(ctx, tx, adjustments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) ApplyAdjustmentsInTx(ctx context.Context, tx pgx.Tx, adjustments []domain.BalanceAdjustment, userID string, now time.Time) error {
	args := m.Called(ctx, tx, adjustments, userID, now)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) RecordEntries(ctx context.Context, entries []domain.LedgerEntry, adjustments []domain.BalanceAdjustment) (map[string]domain.Balance, error) {
	args := m.Called(ctx, entries, adjustments)
	var balances map[string]domain.Balance
	if args.Get(0) != nil {
		balances = args.Get(0).(map[string]domain.Balance)
	}
	return balances, args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesByIdempotencyKey(ctx context.Context, key string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockLedgerRepository) SumDeltasByReasonSince(ctx context.Context, accountID string, reason domain.ReasonCode, since time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, reason, since)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock LockRepository ---
type MockLockRepository struct {
	mock.Mock
}

func (m *MockLockRepository) CreateLock(ctx context.Context, lock domain.BalanceLock) error {
	args := m.Called(ctx, lock)
	return args.Error(0)
}

func (m *MockLockRepository) FindLockByID(ctx context.Context, lockID string) (*domain.BalanceLock, error) {
	args := m.Called(ctx, lockID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceLock), args.Error(1)
}

func (m *MockLockRepository) ReleaseLock(ctx context.Context, lockID string, releasedBy string, now time.Time) (bool, error) {
	args := m.Called(ctx, lockID, releasedBy, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockLockRepository) FindGhostCandidates(ctx context.Context, createdBefore time.Time, limit int) ([]domain.BalanceLock, error) {
	args := m.Called(ctx, createdBefore, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceLock), args.Error(1)
}

func (m *MockLockRepository) ReleaseIfGhost(ctx context.Context, lockID string, createdBefore time.Time, releasedBy string, now time.Time) (domain.GhostLockReport, error) {
	args := m.Called(ctx, lockID, createdBefore, releasedBy, now)
	return args.Get(0).(domain.GhostLockReport), args.Error(1)
}

// --- Mock ReferralRepository ---
type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) CreateEdge(ctx context.Context, edge domain.ReferralEdge) error {
	args := m.Called(ctx, edge)
	return args.Error(0)
}

func (m *MockReferralRepository) FindEdgeByChild(ctx context.Context, childAccountID string) (*domain.ReferralEdge, error) {
	args := m.Called(ctx, childAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReferralEdge), args.Error(1)
}

func (m *MockReferralRepository) FindAncestorChain(ctx context.Context, accountID string, maxDepth int) ([]domain.ReferralAncestor, error) {
	args := m.Called(ctx, accountID, maxDepth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReferralAncestor), args.Error(1)
}

// --- Mock CommissionRuleRepository ---
type MockCommissionRuleRepository struct {
	mock.Mock
}

func (m *MockCommissionRuleRepository) ListRules(ctx context.Context) ([]domain.CommissionRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CommissionRule), args.Error(1)
}

func (m *MockCommissionRuleRepository) UpsertRule(ctx context.Context, rule domain.CommissionRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

// --- Mock IdempotencyRepository ---
type MockIdempotencyRepository struct {
	mock.Mock
}

func (m *MockIdempotencyRepository) TryBegin(ctx context.Context, key string, operation string, now time.Time) (*domain.IdempotencyRecord, bool, error) {
	args := m.Called(ctx, key, operation, now)
	var record *domain.IdempotencyRecord
	if args.Get(0) != nil {
		record = args.Get(0).(*domain.IdempotencyRecord)
	}
	return record, args.Bool(1), args.Error(2)
}

func (m *MockIdempotencyRepository) Complete(ctx context.Context, key string, snapshot []byte) error {
	args := m.Called(ctx, key, snapshot)
	return args.Error(0)
}

func (m *MockIdempotencyRepository) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockIdempotencyRepository) DeleteExpired(ctx context.Context, createdBefore time.Time) (int64, error) {
	args := m.Called(ctx, createdBefore)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock SettingsRepository ---
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) IsTransferEnabled(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockSettingsRepository) SetTransferEnabled(ctx context.Context, enabled bool, updatedBy string) error {
	args := m.Called(ctx, enabled, updatedBy)
	return args.Error(0)
}

// --- Mock TransactionNotifier ---
type MockTransactionNotifier struct {
	mock.Mock
}

func (m *MockTransactionNotifier) TransferCommitted(ctx context.Context, result domain.TransferResult) {
	m.Called(ctx, result)
}

func (m *MockTransactionNotifier) CommissionSettled(ctx context.Context, result domain.CommissionResult) {
	m.Called(ctx, result)
}
