package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/bskpay/bsk_ledger_app/internal/core/domain"
	portssvc "github.com/bskpay/bsk_ledger_app/internal/core/ports/services"
	"github.com/bskpay/bsk_ledger_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CommissionServiceTestSuite struct {
	suite.Suite
	mockReferralRepo    *MockReferralRepository
	mockRuleRepo        *MockCommissionRuleRepository
	mockLedgerRepo      *MockLedgerRepository
	mockIdempotencyRepo *MockIdempotencyRepository
	mockNotifier        *MockTransactionNotifier
	service             portssvc.CommissionSvcFacade

	payerID string
}

func (suite *CommissionServiceTestSuite) SetupTest() {
	suite.mockReferralRepo = new(MockReferralRepository)
	suite.mockRuleRepo = new(MockCommissionRuleRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockIdempotencyRepo = new(MockIdempotencyRepository)
	suite.mockNotifier = new(MockTransactionNotifier)
	suite.service = services.NewCommissionService(
		suite.mockReferralRepo,
		suite.mockRuleRepo,
		suite.mockLedgerRepo,
		suite.mockIdempotencyRepo,
		suite.mockNotifier,
		8,
		1,
		time.Millisecond,
	)
	suite.payerID = uuid.NewString()
}

// Default gating table: SILVER unlocks depth 1, GOLD 1-2, PLATINUM 1-3,
// DIAMOND 1-5, with percents 10/5/3/2/1.
func defaultRules() []domain.CommissionRule {
	percents := map[int]int64{1: 10, 2: 5, 3: 3, 4: 2, 5: 1}
	tierMax := map[domain.BadgeTier]int{
		domain.TierSilver:   1,
		domain.TierGold:     2,
		domain.TierPlatinum: 3,
		domain.TierDiamond:  5,
	}
	var rules []domain.CommissionRule
	for tier, max := range tierMax {
		for level := 1; level <= max; level++ {
			rules = append(rules, domain.CommissionRule{
				BadgeTier: tier,
				Level:     level,
				Percent:   decimal.NewFromInt(percents[level]),
			})
		}
	}
	return rules
}

func (suite *CommissionServiceTestSuite) event(base int64) domain.CommissionEvent {
	return domain.CommissionEvent{
		PayerAccountID: suite.payerID,
		BaseAmount:     decimal.NewFromInt(base),
		EventType:      domain.EventPurchase,
		IdempotencyKey: "commission_" + uuid.NewString(),
	}
}

func (suite *CommissionServiceTestSuite) TestDistribute_BadgeGatedChain() {
	ctx := context.Background()
	event := suite.event(1000)

	// Five ancestors; the SILVER one at depth 4 has not unlocked its depth,
	// so credits land at depths 1, 2, 3 and 5 only.
	ancestors := []domain.ReferralAncestor{
		{AccountID: uuid.NewString(), Depth: 1, BadgeTier: domain.TierSilver},
		{AccountID: uuid.NewString(), Depth: 2, BadgeTier: domain.TierGold},
		{AccountID: uuid.NewString(), Depth: 3, BadgeTier: domain.TierPlatinum},
		{AccountID: uuid.NewString(), Depth: 4, BadgeTier: domain.TierSilver},
		{AccountID: uuid.NewString(), Depth: 5, BadgeTier: domain.TierDiamond},
	}

	suite.mockIdempotencyRepo.On("TryBegin", ctx, event.IdempotencyKey, "commission", mock.AnythingOfType("time.Time")).
		Return(nil, true, nil).Once()
	suite.mockReferralRepo.On("FindAncestorChain", ctx, suite.payerID, domain.MaxCommissionDepth).
		Return(ancestors, nil).Once()
	suite.mockRuleRepo.On("ListRules", ctx).Return(defaultRules(), nil).Once()

	var recorded []domain.LedgerEntry
	suite.mockLedgerRepo.On("RecordEntries", ctx, mock.AnythingOfType("[]domain.LedgerEntry"), mock.AnythingOfType("[]domain.BalanceAdjustment")).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).([]domain.LedgerEntry)
		}).Return(map[string]domain.Balance{}, nil).Once()
	suite.mockIdempotencyRepo.On("Complete", ctx, event.IdempotencyKey, mock.AnythingOfType("[]uint8")).Return(nil).Once()
	suite.mockNotifier.On("CommissionSettled", ctx, mock.AnythingOfType("domain.CommissionResult")).Once()

	result, replayed, err := suite.service.Distribute(ctx, event)

	suite.Require().NoError(err)
	suite.False(replayed)
	suite.Require().NotNil(result)
	suite.Equal(5, result.DepthsSeen)
	suite.Require().Len(result.Payouts, 4)

	suite.Equal(1, result.Payouts[0].Depth)
	suite.True(result.Payouts[0].Amount.Equal(decimal.NewFromInt(100)))
	suite.Equal(2, result.Payouts[1].Depth)
	suite.True(result.Payouts[1].Amount.Equal(decimal.NewFromInt(50)))
	suite.Equal(3, result.Payouts[2].Depth)
	suite.True(result.Payouts[2].Amount.Equal(decimal.NewFromInt(30)))
	suite.Equal(5, result.Payouts[3].Depth)
	suite.True(result.Payouts[3].Amount.Equal(decimal.NewFromInt(10)))
	suite.True(result.TotalPaid.Equal(decimal.NewFromInt(190)))

	// All payouts are one-sided credits sharing the event's idempotency key.
	suite.Require().Len(recorded, 4)
	for _, entry := range recorded {
		suite.True(entry.ReasonCode.OneSided())
		suite.True(entry.Delta.IsPositive())
		suite.Equal(event.IdempotencyKey, entry.IdempotencyKey)
	}
	suite.Equal(domain.CommissionReason(1, domain.EventPurchase), recorded[0].ReasonCode)
	suite.NoError(domain.ValidateBalanced(recorded))

	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *CommissionServiceTestSuite) TestDistribute_ReplayIsNoOp() {
	ctx := context.Background()
	event := suite.event(1000)

	stored := domain.CommissionResult{
		EventKey:   event.IdempotencyKey,
		TotalPaid:  decimal.NewFromInt(190),
		DepthsSeen: 5,
	}
	snapshot, err := json.Marshal(stored)
	suite.Require().NoError(err)

	suite.mockIdempotencyRepo.On("TryBegin", ctx, event.IdempotencyKey, "commission", mock.AnythingOfType("time.Time")).
		Return(&domain.IdempotencyRecord{
			Key:            event.IdempotencyKey,
			Operation:      "commission",
			Status:         domain.IdempotencyCompleted,
			ResultSnapshot: snapshot,
		}, false, nil).Once()

	result, replayed, err := suite.service.Distribute(ctx, event)

	suite.Require().NoError(err)
	suite.True(replayed)
	suite.True(result.TotalPaid.Equal(stored.TotalPaid))
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "RecordEntries", mock.Anything, mock.Anything, mock.Anything)
	suite.mockReferralRepo.AssertNotCalled(suite.T(), "FindAncestorChain", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CommissionServiceTestSuite) TestDistribute_NoUnlockedDepthsStillSettles() {
	ctx := context.Background()
	event := suite.event(1000)

	ancestors := []domain.ReferralAncestor{
		{AccountID: uuid.NewString(), Depth: 1, BadgeTier: domain.TierNone},
		{AccountID: uuid.NewString(), Depth: 2, BadgeTier: domain.TierNone},
	}

	suite.mockIdempotencyRepo.On("TryBegin", ctx, event.IdempotencyKey, "commission", mock.AnythingOfType("time.Time")).
		Return(nil, true, nil).Once()
	suite.mockReferralRepo.On("FindAncestorChain", ctx, suite.payerID, domain.MaxCommissionDepth).
		Return(ancestors, nil).Once()
	suite.mockRuleRepo.On("ListRules", ctx).Return(defaultRules(), nil).Once()
	suite.mockIdempotencyRepo.On("Complete", ctx, event.IdempotencyKey, mock.AnythingOfType("[]uint8")).Return(nil).Once()
	suite.mockNotifier.On("CommissionSettled", ctx, mock.AnythingOfType("domain.CommissionResult")).Once()

	result, replayed, err := suite.service.Distribute(ctx, event)

	suite.Require().NoError(err)
	suite.False(replayed)
	suite.Empty(result.Payouts)
	suite.True(result.TotalPaid.IsZero())
	suite.Equal(2, result.DepthsSeen)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "RecordEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CommissionServiceTestSuite) TestDistribute_PayerInOwnChainAborts() {
	ctx := context.Background()
	event := suite.event(1000)

	ancestors := []domain.ReferralAncestor{
		{AccountID: uuid.NewString(), Depth: 1, BadgeTier: domain.TierDiamond},
		{AccountID: suite.payerID, Depth: 2, BadgeTier: domain.TierDiamond},
	}

	suite.mockIdempotencyRepo.On("TryBegin", ctx, event.IdempotencyKey, "commission", mock.AnythingOfType("time.Time")).
		Return(nil, true, nil).Once()
	suite.mockReferralRepo.On("FindAncestorChain", ctx, suite.payerID, domain.MaxCommissionDepth).
		Return(ancestors, nil).Once()
	suite.mockIdempotencyRepo.On("Remove", ctx, event.IdempotencyKey).Return(nil).Once()

	result, _, err := suite.service.Distribute(ctx, event)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrReferralCycle)
	suite.Nil(result)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "RecordEntries", mock.Anything, mock.Anything, mock.Anything)
	suite.mockNotifier.AssertNotCalled(suite.T(), "CommissionSettled", mock.Anything, mock.Anything)
}

func (suite *CommissionServiceTestSuite) TestDistribute_RoundingSkipsDustPayouts() {
	ctx := context.Background()
	event := suite.event(1000)

	// Round to integers: a 0.0001% rule on 1000 rounds to zero and is skipped.
	service := services.NewCommissionService(
		suite.mockReferralRepo,
		suite.mockRuleRepo,
		suite.mockLedgerRepo,
		suite.mockIdempotencyRepo,
		suite.mockNotifier,
		0,
		1,
		time.Millisecond,
	)

	ancestor := domain.ReferralAncestor{AccountID: uuid.NewString(), Depth: 1, BadgeTier: domain.TierSilver}
	dustRule := []domain.CommissionRule{
		{BadgeTier: domain.TierSilver, Level: 1, Percent: decimal.RequireFromString("0.0001")},
	}

	suite.mockIdempotencyRepo.On("TryBegin", ctx, event.IdempotencyKey, "commission", mock.AnythingOfType("time.Time")).
		Return(nil, true, nil).Once()
	suite.mockReferralRepo.On("FindAncestorChain", ctx, suite.payerID, domain.MaxCommissionDepth).
		Return([]domain.ReferralAncestor{ancestor}, nil).Once()
	suite.mockRuleRepo.On("ListRules", ctx).Return(dustRule, nil).Once()
	suite.mockIdempotencyRepo.On("Complete", ctx, event.IdempotencyKey, mock.AnythingOfType("[]uint8")).Return(nil).Once()
	suite.mockNotifier.On("CommissionSettled", ctx, mock.AnythingOfType("domain.CommissionResult")).Once()

	result, _, err := service.Distribute(ctx, event)

	suite.Require().NoError(err)
	suite.Empty(result.Payouts)
	suite.True(result.TotalPaid.IsZero())
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "RecordEntries", mock.Anything, mock.Anything, mock.Anything)
}

func TestCommissionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CommissionServiceTestSuite))
}
