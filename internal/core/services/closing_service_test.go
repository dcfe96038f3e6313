package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerline/ledgerline_backend/internal/apperrors"
	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline_backend/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_backend/internal/core/services"
)

type ClosingServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockAccountRepo  *MockAccountRepository
	service          portssvc.ClosingSvcFacade
	retainedEarnings domain.Account
}

func (suite *ClosingServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewClosingService(suite.mockJournalRepo, suite.mockAccountRepo)

	suite.retainedEarnings = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        domain.CodeRetainedEarnings,
		Name:        "Retained Earnings",
		AccountType: domain.Equity,
		IsActive:    true,
	}
}

func (suite *ClosingServiceTestSuite) revenueAccount(balance int64) domain.Account {
	return domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "4000",
		Name:        "Sales Revenue",
		AccountType: domain.Revenue,
		Balance:     decimal.NewFromInt(balance),
		IsActive:    true,
	}
}

func (suite *ClosingServiceTestSuite) expenseAccount(balance int64) domain.Account {
	return domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "5000",
		Name:        "Cost of Goods Sold",
		AccountType: domain.Expense,
		Balance:     decimal.NewFromInt(balance),
		IsActive:    true,
	}
}

// entryLinesBalance checks every closing entry's lines net to zero.
func entryLinesBalance(lines []domain.EntryLine) bool {
	debit := decimal.Zero
	credit := decimal.Zero
	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return false
		}
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}
	return debit.Equal(credit)
}

func (suite *ClosingServiceTestSuite) TestClosePeriod_NetIncomeToRetainedEarnings() {
	ctx := context.Background()
	revenue := suite.revenueAccount(1000)
	expense := suite.expenseAccount(400)
	closeDate := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("ListAccountsByType", ctx, domain.Revenue, true).
		Return([]domain.Account{revenue}, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByType", ctx, domain.Expense, true).
		Return([]domain.Account{expense}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, domain.CodeRetainedEarnings).
		Return(&suite.retainedEarnings, nil).Once()

	suite.mockJournalRepo.On("SaveClosingEntries", ctx, mock.MatchedBy(func(batch portsrepo.ClosingBatch) bool {
		if !batch.NetIncome.Equal(decimal.NewFromInt(600)) {
			return false
		}
		if batch.RetainedEarningsID != suite.retainedEarnings.AccountID {
			return false
		}
		if len(batch.Entries) != 2 || len(batch.ResetAccountIDs) != 2 {
			return false
		}
		for _, entry := range batch.Entries {
			if entry.Reference != domain.ClosingReference || !entry.EntryDate.Equal(closeDate) {
				return false
			}
			if !entryLinesBalance(batch.Lines[entry.EntryID]) {
				return false
			}
		}
		// Revenue is drained with a debit, retained earnings credited 1000.
		revLines := batch.Lines[batch.Entries[0].EntryID]
		if !revLines[0].Debit.Equal(decimal.NewFromInt(1000)) || !revLines[1].Credit.Equal(decimal.NewFromInt(1000)) {
			return false
		}
		// Expense is drained with a credit, retained earnings debited 400.
		expLines := batch.Lines[batch.Entries[1].EntryID]
		return expLines[0].Credit.Equal(decimal.NewFromInt(400)) && expLines[1].Debit.Equal(decimal.NewFromInt(400))
	})).Return(nil).Once()

	result, err := suite.service.ClosePeriod(ctx, closeDate)

	suite.Require().NoError(err)
	suite.True(result.NetIncome.Equal(decimal.NewFromInt(600)))
	suite.Len(result.ClosingEntries, 2)
	suite.NotEmpty(result.ClosingEntries[0].Lines)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestClosePeriod_AbnormalBalanceFlipsSide() {
	ctx := context.Background()
	// Contra scenario: revenue carrying a negative (debit) balance.
	abnormal := suite.revenueAccount(-50)
	closeDate := time.Now()

	suite.mockAccountRepo.On("ListAccountsByType", ctx, domain.Revenue, true).
		Return([]domain.Account{abnormal}, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByType", ctx, domain.Expense, true).
		Return([]domain.Account{}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, domain.CodeRetainedEarnings).
		Return(&suite.retainedEarnings, nil).Once()

	suite.mockJournalRepo.On("SaveClosingEntries", ctx, mock.MatchedBy(func(batch portsrepo.ClosingBatch) bool {
		if !batch.NetIncome.Equal(decimal.NewFromInt(-50)) {
			return false
		}
		lines := batch.Lines[batch.Entries[0].EntryID]
		// The abnormal revenue balance is credited back; retained earnings
		// takes the debit. Lines stay non-negative.
		return len(lines) == 2 &&
			lines[0].Credit.Equal(decimal.NewFromInt(50)) &&
			lines[1].Debit.Equal(decimal.NewFromInt(50)) &&
			entryLinesBalance(lines)
	})).Return(nil).Once()

	result, err := suite.service.ClosePeriod(ctx, closeDate)

	suite.Require().NoError(err)
	suite.True(result.NetIncome.Equal(decimal.NewFromInt(-50)))
}

func (suite *ClosingServiceTestSuite) TestClosePeriod_NothingToClose() {
	ctx := context.Background()

	suite.mockAccountRepo.On("ListAccountsByType", ctx, domain.Revenue, true).
		Return([]domain.Account{}, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByType", ctx, domain.Expense, true).
		Return([]domain.Account{}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, domain.CodeRetainedEarnings).
		Return(&suite.retainedEarnings, nil).Once()

	result, err := suite.service.ClosePeriod(ctx, time.Now())

	suite.Require().NoError(err)
	suite.True(result.NetIncome.IsZero())
	suite.Empty(result.ClosingEntries)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveClosingEntries", mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestClosePeriod_MissingRetainedEarnings() {
	ctx := context.Background()

	suite.mockAccountRepo.On("ListAccountsByType", ctx, domain.Revenue, true).
		Return([]domain.Account{suite.revenueAccount(100)}, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByType", ctx, domain.Expense, true).
		Return([]domain.Account{}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, domain.CodeRetainedEarnings).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ClosePeriod(ctx, time.Now())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConfiguration)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveClosingEntries", mock.Anything, mock.Anything)
}

func TestClosingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClosingServiceTestSuite))
}
