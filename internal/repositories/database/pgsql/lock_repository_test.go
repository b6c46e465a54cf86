package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	"github.com/bskpay/bsk_ledger_app/internal/models"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const (
	balanceForUpdateSQL = `SELECT account_id, balance_type, available, locked, created_at, created_by, last_updated_at, last_updated_by\s+FROM balances\s+WHERE account_id = \$1 AND balance_type = \$2\s+FOR UPDATE`
	lockForUpdateSQL    = `SELECT lock_id, account_id, balance_type, amount, purpose, reference_id, released_at, created_at, created_by, last_updated_at, last_updated_by FROM balance_locks WHERE lock_id = \$1 FOR UPDATE`
	applyAdjustmentSQL  = `UPDATE balances\s+SET available = available \+ \$3, locked = locked \+ \$4`
	stampReleasedSQL    = `UPDATE balance_locks\s+SET released_at = \$2`
	insertLockSQL       = `INSERT INTO balance_locks`
	setLockTimeoutSQL   = `SET LOCAL lock_timeout`
)

// LockRepositoryTestSuite drives PgxLockRepository against a mock pgx
// connection so the reserve/release arithmetic is checked at the SQL level,
// with the real balance repository handling the row locking inside the same
// transaction.
type LockRepositoryTestSuite struct {
	suite.Suite
	mockPool pgxmock.PgxPoolIface
	repo     *PgxLockRepository

	accountID string
	now       time.Time
}

func (suite *LockRepositoryTestSuite) SetupTest() {
	pool, err := pgxmock.NewPool()
	suite.Require().NoError(err)
	suite.mockPool = pool
	suite.repo = newPgxLockRepository(pool, newPgxBalanceRepository(pool)).(*PgxLockRepository)
	suite.accountID = uuid.NewString()
	suite.now = time.Now()
}

func (suite *LockRepositoryTestSuite) TearDownTest() {
	suite.NoError(suite.mockPool.ExpectationsWereMet())
	suite.mockPool.Close()
}

func (suite *LockRepositoryTestSuite) balanceRows(available, locked int64) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"account_id", "balance_type", "available", "locked", "created_at", "created_by", "last_updated_at", "last_updated_by"}).
		AddRow(suite.accountID, models.BalanceType("WITHDRAWABLE"), decimal.NewFromInt(available), decimal.NewFromInt(locked), suite.now, "system", suite.now, "system")
}

func (suite *LockRepositoryTestSuite) lockRows(lockID string, amount int64, releasedAt *time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"lock_id", "account_id", "balance_type", "amount", "purpose", "reference_id", "released_at", "created_at", "created_by", "last_updated_at", "last_updated_by"}).
		AddRow(lockID, suite.accountID, models.BalanceType("WITHDRAWABLE"), decimal.NewFromInt(amount), "ORDER", uuid.NewString(), releasedAt, suite.now, suite.accountID, suite.now, suite.accountID)
}

func (suite *LockRepositoryTestSuite) newLock(amount int64) domain.BalanceLock {
	return domain.BalanceLock{
		LockID:      uuid.NewString(),
		AccountID:   suite.accountID,
		BalanceType: domain.Withdrawable,
		Amount:      decimal.NewFromInt(amount),
		Purpose:     domain.LockPurposeOrder,
		ReferenceID: uuid.NewString(),
		AuditFields: domain.AuditFields{
			CreatedAt:     suite.now,
			CreatedBy:     suite.accountID,
			LastUpdatedAt: suite.now,
			LastUpdatedBy: suite.accountID,
		},
	}
}

func (suite *LockRepositoryTestSuite) TestCreateLock_MovesAvailableToLocked() {
	ctx := context.Background()
	lock := suite.newLock(100)

	suite.mockPool.ExpectBegin()
	suite.mockPool.ExpectExec(setLockTimeoutSQL).WillReturnResult(pgxmock.NewResult("SET", 0))
	suite.mockPool.ExpectQuery(balanceForUpdateSQL).
		WithArgs(suite.accountID, domain.Withdrawable).
		WillReturnRows(suite.balanceRows(500, 0))
	// The reservation moves exactly the lock amount out of available.
	batch := suite.mockPool.ExpectBatch()
	batch.ExpectExec(applyAdjustmentSQL).
		WithArgs(suite.accountID, domain.Withdrawable, decimal.NewFromInt(-100), decimal.NewFromInt(100), suite.now, suite.accountID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mockPool.ExpectExec(insertLockSQL).
		WithArgs(lock.LockID, suite.accountID, models.BalanceType("WITHDRAWABLE"), decimal.NewFromInt(100), "ORDER", lock.ReferenceID,
			(*time.Time)(nil), suite.now, suite.accountID, suite.now, suite.accountID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mockPool.ExpectCommit()
	suite.mockPool.ExpectRollback()

	err := suite.repo.CreateLock(ctx, lock)

	suite.Require().NoError(err)
}

func (suite *LockRepositoryTestSuite) TestCreateLock_InsufficientAvailableWritesNothing() {
	ctx := context.Background()
	lock := suite.newLock(100)

	suite.mockPool.ExpectBegin()
	suite.mockPool.ExpectExec(setLockTimeoutSQL).WillReturnResult(pgxmock.NewResult("SET", 0))
	// 40 available cannot cover a 100 lock; no adjustment or insert follows.
	suite.mockPool.ExpectQuery(balanceForUpdateSQL).
		WithArgs(suite.accountID, domain.Withdrawable).
		WillReturnRows(suite.balanceRows(40, 0))
	suite.mockPool.ExpectRollback()

	err := suite.repo.CreateLock(ctx, lock)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrInsufficientFunds)
}

func (suite *LockRepositoryTestSuite) TestCreateLock_BoundaryAmountSucceeds() {
	ctx := context.Background()
	lock := suite.newLock(500)

	suite.mockPool.ExpectBegin()
	suite.mockPool.ExpectExec(setLockTimeoutSQL).WillReturnResult(pgxmock.NewResult("SET", 0))
	// Locking the entire available amount is allowed; only going below zero fails.
	suite.mockPool.ExpectQuery(balanceForUpdateSQL).
		WithArgs(suite.accountID, domain.Withdrawable).
		WillReturnRows(suite.balanceRows(500, 0))
	batch := suite.mockPool.ExpectBatch()
	batch.ExpectExec(applyAdjustmentSQL).
		WithArgs(suite.accountID, domain.Withdrawable, decimal.NewFromInt(-500), decimal.NewFromInt(500), suite.now, suite.accountID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mockPool.ExpectExec(insertLockSQL).
		WithArgs(lock.LockID, suite.accountID, models.BalanceType("WITHDRAWABLE"), decimal.NewFromInt(500), "ORDER", lock.ReferenceID,
			(*time.Time)(nil), suite.now, suite.accountID, suite.now, suite.accountID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mockPool.ExpectCommit()
	suite.mockPool.ExpectRollback()

	err := suite.repo.CreateLock(ctx, lock)

	suite.Require().NoError(err)
}

func (suite *LockRepositoryTestSuite) TestReleaseLock_RestoresExactReservedAmount() {
	ctx := context.Background()
	lockID := uuid.NewString()
	releasedBy := uuid.NewString()

	suite.mockPool.ExpectBegin()
	suite.mockPool.ExpectExec(setLockTimeoutSQL).WillReturnResult(pgxmock.NewResult("SET", 0))
	suite.mockPool.ExpectQuery(lockForUpdateSQL).
		WithArgs(lockID).
		WillReturnRows(suite.lockRows(lockID, 100, nil))
	suite.mockPool.ExpectExec(stampReleasedSQL).
		WithArgs(lockID, suite.now, releasedBy).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mockPool.ExpectQuery(balanceForUpdateSQL).
		WithArgs(suite.accountID, domain.Withdrawable).
		WillReturnRows(suite.balanceRows(400, 100))
	// Release applies the exact inverse of the reservation.
	batch := suite.mockPool.ExpectBatch()
	batch.ExpectExec(applyAdjustmentSQL).
		WithArgs(suite.accountID, domain.Withdrawable, decimal.NewFromInt(100), decimal.NewFromInt(-100), suite.now, releasedBy).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mockPool.ExpectCommit()
	suite.mockPool.ExpectRollback()

	released, err := suite.repo.ReleaseLock(ctx, lockID, releasedBy, suite.now)

	suite.Require().NoError(err)
	suite.True(released)
}

func (suite *LockRepositoryTestSuite) TestReleaseLock_AlreadyReleasedIsNoOp() {
	ctx := context.Background()
	lockID := uuid.NewString()
	releasedAt := suite.now.Add(-time.Hour)

	suite.mockPool.ExpectBegin()
	suite.mockPool.ExpectExec(setLockTimeoutSQL).WillReturnResult(pgxmock.NewResult("SET", 0))
	// A second release must not touch the balance row again.
	suite.mockPool.ExpectQuery(lockForUpdateSQL).
		WithArgs(lockID).
		WillReturnRows(suite.lockRows(lockID, 100, &releasedAt))
	suite.mockPool.ExpectRollback()

	released, err := suite.repo.ReleaseLock(ctx, lockID, suite.accountID, suite.now)

	suite.Require().NoError(err)
	suite.False(released)
}

func TestLockRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(LockRepositoryTestSuite))
}
