package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

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

type AdminServiceTestSuite struct {
	suite.Suite
	mockAccountRepo     *MockAccountRepository
	mockLedgerRepo      *MockLedgerRepository
	mockSettingsRepo    *MockSettingsRepository
	mockIdempotencyRepo *MockIdempotencyRepository
	service             portssvc.AdminSvcFacade

	adminID   string
	retention time.Duration
}

func (suite *AdminServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockSettingsRepo = new(MockSettingsRepository)
	suite.mockIdempotencyRepo = new(MockIdempotencyRepository)
	suite.retention = 7 * 24 * time.Hour
	suite.service = services.NewAdminService(
		suite.mockAccountRepo,
		suite.mockLedgerRepo,
		suite.mockSettingsRepo,
		suite.mockIdempotencyRepo,
		suite.retention,
		1,
		time.Millisecond,
	)
	suite.adminID = uuid.NewString()
}

func adjustRequest(accountID, direction string) dto.AdminAdjustRequest {
	return dto.AdminAdjustRequest{
		AccountID:      accountID,
		BalanceType:    string(domain.Withdrawable),
		Amount:         decimal.NewFromInt(40),
		Direction:      direction,
		Note:           "manual correction per support ticket",
		IdempotencyKey: "adjust_" + uuid.NewString(),
	}
}

func (suite *AdminServiceTestSuite) expectGuardPassThrough(ctx context.Context, key string) {
	suite.mockIdempotencyRepo.On("TryBegin", ctx, key, "admin_adjust", mock.AnythingOfType("time.Time")).
		Return(nil, true, nil).Once()
	suite.mockIdempotencyRepo.On("Complete", ctx, key, mock.AnythingOfType("[]uint8")).Return(nil).Once()
}

func (suite *AdminServiceTestSuite) TestAdjust_CreditIsOneSidedPositive() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := adjustRequest(accountID, "CREDIT")

	suite.expectGuardPassThrough(ctx, req.IdempotencyKey)
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, IsActive: true}, nil).Once()

	var recorded []domain.LedgerEntry
	suite.mockLedgerRepo.On("RecordEntries", ctx, mock.AnythingOfType("[]domain.LedgerEntry"), mock.AnythingOfType("[]domain.BalanceAdjustment")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).([]domain.LedgerEntry)
		}).Return(map[string]domain.Balance{}, nil).Once()

	entry, err := suite.service.Adjust(ctx, req, suite.adminID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.ReasonAdminCredit, entry.ReasonCode)
	suite.True(entry.Delta.Equal(decimal.NewFromInt(40)))
	suite.Equal(suite.adminID, entry.CreatedBy)

	suite.Require().Len(recorded, 1)
	suite.True(recorded[0].ReasonCode.OneSided())
	// The audit note travels with the persisted entry, not just the request.
	suite.Equal(req.Note, recorded[0].Note)
	suite.Equal(req.Note, entry.Note)
	suite.NoError(domain.ValidateBalanced(recorded))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestAdjust_DebitNegatesDelta() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := adjustRequest(accountID, "DEBIT")

	suite.expectGuardPassThrough(ctx, req.IdempotencyKey)
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, IsActive: true}, nil).Once()
	suite.mockLedgerRepo.On("RecordEntries", ctx, mock.AnythingOfType("[]domain.LedgerEntry"), mock.AnythingOfType("[]domain.BalanceAdjustment")).
		Return(map[string]domain.Balance{}, nil).Once()

	entry, err := suite.service.Adjust(ctx, req, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReasonAdminDebit, entry.ReasonCode)
	suite.True(entry.Delta.Equal(decimal.NewFromInt(-40)))
}

func (suite *AdminServiceTestSuite) TestAdjust_ReplayReturnsStoredEntry() {
	ctx := context.Background()
	req := adjustRequest(uuid.NewString(), "CREDIT")

	stored := domain.LedgerEntry{
		EntryID:    uuid.NewString(),
		AccountID:  req.AccountID,
		Delta:      decimal.NewFromInt(40),
		ReasonCode: domain.ReasonAdminCredit,
	}
	snapshot, err := json.Marshal(stored)
	suite.Require().NoError(err)

	suite.mockIdempotencyRepo.On("TryBegin", ctx, req.IdempotencyKey, "admin_adjust", mock.AnythingOfType("time.Time")).
		Return(&domain.IdempotencyRecord{
			Key:            req.IdempotencyKey,
			Operation:      "admin_adjust",
			Status:         domain.IdempotencyCompleted,
			ResultSnapshot: snapshot,
		}, false, nil).Once()

	entry, err := suite.service.Adjust(ctx, req, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal(stored.EntryID, entry.EntryID)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "RecordEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdminServiceTestSuite) TestAdjust_InactiveAccountReleasesKey() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := adjustRequest(accountID, "CREDIT")

	suite.mockIdempotencyRepo.On("TryBegin", ctx, req.IdempotencyKey, "admin_adjust", mock.AnythingOfType("time.Time")).
		Return(nil, true, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).
		Return(&domain.Account{AccountID: accountID, IsActive: false}, nil).Once()
	suite.mockIdempotencyRepo.On("Remove", ctx, req.IdempotencyKey).Return(nil).Once()

	entry, err := suite.service.Adjust(ctx, req, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountInactive)
	suite.Nil(entry)
	suite.mockIdempotencyRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestAdjust_NonPositiveAmountRejected() {
	ctx := context.Background()
	req := adjustRequest(uuid.NewString(), "CREDIT")
	req.Amount = decimal.NewFromInt(-5)

	entry, err := suite.service.Adjust(ctx, req, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAmountNotPositive)
	suite.Nil(entry)
	suite.mockIdempotencyRepo.AssertNotCalled(suite.T(), "TryBegin", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdminServiceTestSuite) TestCreateAccount_StartsAtTierNone() {
	ctx := context.Background()

	var saved domain.Account
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Account)
		}).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{DisplayName: "Asha"}, suite.adminID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal("Asha", account.DisplayName)
	suite.Equal(domain.TierNone, account.BadgeTier)
	suite.True(account.IsActive)
	suite.Equal(suite.adminID, account.CreatedBy)

	suite.Equal(account.AccountID, saved.AccountID)
	suite.Equal(domain.TierNone, saved.BadgeTier)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestCreateAccount_DuplicatePropagates() {
	ctx := context.Background()

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()

	account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{DisplayName: "Asha"}, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(account)
}

func (suite *AdminServiceTestSuite) TestSetBadgeTier_Delegates() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("UpdateBadgeTier", ctx, accountID, domain.TierGold, suite.adminID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.SetBadgeTier(ctx, accountID, domain.TierGold, suite.adminID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestSetBadgeTier_UnknownAccountPropagates() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("UpdateBadgeTier", ctx, accountID, domain.TierDiamond, suite.adminID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrNotFound).Once()

	err := suite.service.SetBadgeTier(ctx, accountID, domain.TierDiamond, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AdminServiceTestSuite) TestPurgeIdempotencyKeys_CutoffUsesRetention() {
	ctx := context.Background()

	suite.mockIdempotencyRepo.On("DeleteExpired", ctx, mock.MatchedBy(func(cutoff time.Time) bool {
		expected := time.Now().Add(-suite.retention)
		return cutoff.Sub(expected).Abs() < time.Minute
	})).Return(int64(3), nil).Once()

	purged, err := suite.service.PurgeIdempotencyKeys(ctx)

	suite.Require().NoError(err)
	suite.Equal(int64(3), purged)
	suite.mockIdempotencyRepo.AssertExpectations(suite.T())
}

func (suite *AdminServiceTestSuite) TestSetTransferEnabled_Delegates() {
	ctx := context.Background()

	suite.mockSettingsRepo.On("SetTransferEnabled", ctx, false, suite.adminID).Return(nil).Once()

	err := suite.service.SetTransferEnabled(ctx, false, suite.adminID)

	suite.Require().NoError(err)
	suite.mockSettingsRepo.AssertExpectations(suite.T())
}

func TestAdminServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceTestSuite))
}
