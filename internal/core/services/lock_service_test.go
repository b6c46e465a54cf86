package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bskpay/bsk_ledger_app/internal/apperrors"
	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	portssvc "github.com/bskpay/bsk_ledger_app/internal/core/ports/services"
	"github.com/bskpay/bsk_ledger_app/internal/core/services"
	"github.com/bskpay/bsk_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LockServiceTestSuite struct {
	suite.Suite
	mockLockRepo    *MockLockRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.LockSvcFacade
}

func (suite *LockServiceTestSuite) SetupTest() {
	suite.mockLockRepo = new(MockLockRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewLockService(suite.mockLockRepo, suite.mockAccountRepo)
}

func reserveRequest(accountID string) dto.ReserveLockRequest {
	return dto.ReserveLockRequest{
		AccountID:   accountID,
		BalanceType: string(domain.Withdrawable),
		Amount:      decimal.NewFromInt(75),
		Purpose:     string(domain.LockPurposeWithdrawal),
		ReferenceID: uuid.NewString(),
	}
}

func (suite *LockServiceTestSuite) TestReserve_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	requestedBy := uuid.NewString()
	req := reserveRequest(accountID)

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, IsActive: true}, nil).Once()

	var created domain.BalanceLock
	suite.mockLockRepo.On("CreateLock", ctx, mock.AnythingOfType("domain.BalanceLock")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(domain.BalanceLock)
		}).Return(nil).Once()

	lock, err := suite.service.Reserve(ctx, req, requestedBy)

	suite.Require().NoError(err)
	suite.Require().NotNil(lock)
	suite.Equal(accountID, created.AccountID)
	suite.Equal(domain.Withdrawable, created.BalanceType)
	suite.Equal(domain.LockPurposeWithdrawal, created.Purpose)
	suite.Equal(req.ReferenceID, created.ReferenceID)
	suite.True(created.Amount.Equal(req.Amount))
	suite.Equal(requestedBy, created.CreatedBy)
	suite.False(created.Released())
	suite.mockLockRepo.AssertExpectations(suite.T())
}

func (suite *LockServiceTestSuite) TestReserve_InsufficientAvailable() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := reserveRequest(accountID)

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, IsActive: true}, nil).Once()
	suite.mockLockRepo.On("CreateLock", ctx, mock.AnythingOfType("domain.BalanceLock")).
		Return(domain.ErrInsufficientFunds).Once()

	lock, err := suite.service.Reserve(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrInsufficientFunds)
	suite.Nil(lock)
}

func (suite *LockServiceTestSuite) TestReserve_InactiveAccountRejected() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := reserveRequest(accountID)

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, IsActive: false}, nil).Once()

	lock, err := suite.service.Reserve(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInactive)
	suite.Nil(lock)
	suite.mockLockRepo.AssertNotCalled(suite.T(), "CreateLock", mock.Anything, mock.Anything)
}

func (suite *LockServiceTestSuite) TestReserve_NonPositiveAmountRejected() {
	ctx := context.Background()
	req := reserveRequest(uuid.NewString())
	req.Amount = decimal.Zero

	lock, err := suite.service.Reserve(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAmountNotPositive)
	suite.Nil(lock)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *LockServiceTestSuite) TestReserve_AccountNotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := reserveRequest(accountID)

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	lock, err := suite.service.Reserve(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(lock)
}

func (suite *LockServiceTestSuite) TestRelease_Success() {
	ctx := context.Background()
	lockID := uuid.NewString()
	releasedBy := uuid.NewString()

	suite.mockLockRepo.On("ReleaseLock", ctx, lockID, releasedBy, mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()

	released, err := suite.service.Release(ctx, lockID, releasedBy)

	suite.Require().NoError(err)
	suite.True(released)
}

func (suite *LockServiceTestSuite) TestRelease_AlreadyReleasedIsNoOp() {
	ctx := context.Background()
	lockID := uuid.NewString()

	suite.mockLockRepo.On("ReleaseLock", ctx, lockID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(false, nil).Once()

	released, err := suite.service.Release(ctx, lockID, uuid.NewString())

	suite.Require().NoError(err)
	suite.False(released)
}

func (suite *LockServiceTestSuite) TestRelease_RepoErrorPropagates() {
	ctx := context.Background()
	lockID := uuid.NewString()
	repoErr := errors.New("connection reset")

	suite.mockLockRepo.On("ReleaseLock", ctx, lockID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(false, repoErr).Once()

	released, err := suite.service.Release(ctx, lockID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, repoErr)
	suite.False(released)
}

func TestLockServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LockServiceTestSuite))
}
