package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	portssvc "github.com/ledgerline/ledgerline_backend/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_backend/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountRepo   *MockAccountRepository
	mockJournalRepo   *MockJournalRepository
	service           portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAccountRepo, suite.mockJournalRepo)
}

func (suite *ReportingServiceTestSuite) account(code string, accType domain.AccountType, balance string) domain.Account {
	return domain.Account{
		AccountID:   uuid.NewString(),
		Code:        code,
		Name:        code,
		AccountType: accType,
		Balance:     decimal.RequireFromString(balance),
		IsActive:    true,
	}
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_NormalSidePresentation() {
	ctx := context.Background()
	cash := suite.account("1000", domain.Asset, "150")
	payable := suite.account("2000", domain.Liability, "150")

	suite.mockReportingRepo.On("ListAccountsWithActivity", ctx).
		Return([]domain.Account{cash, payable}, nil).Once()

	report, err := suite.service.TrialBalance(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)
	suite.True(report.Rows[0].Debit.Equal(decimal.NewFromInt(150)))
	suite.True(report.Rows[0].Credit.IsZero())
	suite.True(report.Rows[1].Credit.Equal(decimal.NewFromInt(150)))
	suite.True(report.Rows[1].Debit.IsZero())
	suite.True(report.TotalDebit.Equal(report.TotalCredit))
	suite.True(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_AbnormalBalanceFlipsColumn() {
	ctx := context.Background()
	// An asset driven negative shows up in the credit column as an absolute value.
	overdrawn := suite.account("1000", domain.Asset, "-30")
	equity := suite.account("3000", domain.Equity, "-30")

	suite.mockReportingRepo.On("ListAccountsWithActivity", ctx).
		Return([]domain.Account{overdrawn, equity}, nil).Once()

	report, err := suite.service.TrialBalance(ctx)

	suite.Require().NoError(err)
	suite.True(report.Rows[0].Debit.IsZero())
	suite.True(report.Rows[0].Credit.Equal(decimal.NewFromInt(30)))
	suite.True(report.Rows[1].Debit.Equal(decimal.NewFromInt(30)))
	suite.True(report.Rows[1].Credit.IsZero())
	suite.True(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestAdjustedTrialBalance_OverlaysAdjustments() {
	ctx := context.Background()
	supplies := suite.account("1300", domain.Asset, "200")
	expense := suite.account("5300", domain.Expense, "0")
	equity := suite.account("3000", domain.Equity, "200")

	suite.mockReportingRepo.On("ListAccountsWithActivity", ctx).
		Return([]domain.Account{supplies, expense, equity}, nil).Once()
	// An adjustment credited supplies 80 and debited supplies expense 80;
	// equity carries the other side of the original supplies purchase.
	suite.mockJournalRepo.On("AdjustmentTotalsByAccount", ctx).
		Return(map[string]domain.AdjustmentTotals{
			supplies.AccountID: {Debit: decimal.Zero, Credit: decimal.NewFromInt(80)},
			expense.AccountID:  {Debit: decimal.NewFromInt(80), Credit: decimal.Zero},
		}, nil).Once()

	report, err := suite.service.AdjustedTrialBalance(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 3)
	suite.True(report.Rows[0].Debit.Equal(decimal.NewFromInt(120)), "supplies should show 200 - 80")
	suite.True(report.Rows[1].Debit.Equal(decimal.NewFromInt(80)), "expense should show 0 + 80")
	suite.True(report.Rows[2].Credit.Equal(decimal.NewFromInt(200)), "equity is untouched by the adjustment")
	suite.True(report.TotalDebit.Equal(decimal.NewFromInt(200)))
	suite.True(report.TotalCredit.Equal(decimal.NewFromInt(200)))
	suite.True(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestLedgerAccount_RunningBalance() {
	ctx := context.Background()
	cash := suite.account("1000", domain.Asset, "70")
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	lines := []domain.PostedLine{
		{AccountID: cash.AccountID, Date: day, Description: "Opening deposit", Debit: decimal.NewFromInt(100)},
		{AccountID: cash.AccountID, Date: day.AddDate(0, 0, 1), Description: "Paid supplier", Credit: decimal.NewFromInt(30)},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, cash.AccountID).Return(&cash, nil).Once()
	suite.mockJournalRepo.On("ListPostedLines", ctx, &cash.AccountID, (*time.Time)(nil), (*time.Time)(nil)).
		Return(lines, nil).Once()

	ledger, err := suite.service.LedgerAccount(ctx, cash.AccountID, nil, nil)

	suite.Require().NoError(err)
	suite.Require().Len(ledger.Lines, 2)
	suite.True(ledger.Lines[0].RunningBalance.Equal(decimal.NewFromInt(100)))
	suite.True(ledger.Lines[1].RunningBalance.Equal(decimal.NewFromInt(70)))
	suite.True(ledger.TotalDebit.Equal(decimal.NewFromInt(100)))
	suite.True(ledger.TotalCredit.Equal(decimal.NewFromInt(30)))
	// Unfiltered replay lands exactly on the stored balance.
	suite.True(ledger.Balance.Equal(cash.Balance))
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_GroupsLinesByAccount() {
	ctx := context.Background()
	cash := suite.account("1000", domain.Asset, "100")
	revenue := suite.account("4000", domain.Revenue, "100")
	day := time.Now()
	lines := []domain.PostedLine{
		{AccountID: cash.AccountID, Date: day, Debit: decimal.NewFromInt(100)},
		{AccountID: revenue.AccountID, Date: day, Credit: decimal.NewFromInt(100)},
	}

	suite.mockReportingRepo.On("ListAccountsWithActivity", ctx).
		Return([]domain.Account{cash, revenue}, nil).Once()
	suite.mockJournalRepo.On("ListPostedLines", ctx, (*string)(nil), (*time.Time)(nil), (*time.Time)(nil)).
		Return(lines, nil).Once()

	ledgers, err := suite.service.GeneralLedger(ctx, nil, nil)

	suite.Require().NoError(err)
	suite.Require().Len(ledgers, 2)
	suite.Len(ledgers[0].Lines, 1)
	suite.Len(ledgers[1].Lines, 1)
	suite.True(ledgers[0].Balance.Equal(decimal.NewFromInt(100)))
	suite.True(ledgers[1].Balance.Equal(decimal.NewFromInt(100)))
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement() {
	ctx := context.Background()
	revenue := suite.account("4000", domain.Revenue, "1000")
	cogs := suite.account("5000", domain.Expense, "400")
	freight := suite.account("5200", domain.Expense, "50")

	suite.mockAccountRepo.On("ListAccountsByType", ctx, domain.Revenue, false).
		Return([]domain.Account{revenue}, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByType", ctx, domain.Expense, false).
		Return([]domain.Account{cogs, freight}, nil).Once()

	report, err := suite.service.IncomeStatement(ctx, nil, nil)

	suite.Require().NoError(err)
	suite.True(report.TotalRevenue.Equal(decimal.NewFromInt(1000)))
	suite.True(report.TotalExpenses.Equal(decimal.NewFromInt(450)))
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(550)))
	suite.Len(report.Revenue, 1)
	suite.Len(report.Expenses, 2)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_Balanced() {
	ctx := context.Background()
	cash := suite.account("1000", domain.Asset, "700")
	payable := suite.account("2000", domain.Liability, "200")
	equity := suite.account("3000", domain.Equity, "500")

	suite.mockAccountRepo.On("ListAccountsByType", ctx, domain.Asset, false).
		Return([]domain.Account{cash}, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByType", ctx, domain.Liability, false).
		Return([]domain.Account{payable}, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByType", ctx, domain.Equity, false).
		Return([]domain.Account{equity}, nil).Once()
	suite.mockReportingRepo.On("SumBalancesByType", ctx).
		Return(map[domain.AccountType]decimal.Decimal{
			domain.Asset:     decimal.NewFromInt(700),
			domain.Liability: decimal.NewFromInt(200),
			domain.Equity:    decimal.NewFromInt(500),
		}, nil).Once()

	report, err := suite.service.BalanceSheet(ctx)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(700)))
	suite.True(report.TotalLiabilitiesAndEquity.Equal(decimal.NewFromInt(700)))
	suite.True(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_Unbalanced() {
	ctx := context.Background()
	cash := suite.account("1000", domain.Asset, "700")

	suite.mockAccountRepo.On("ListAccountsByType", ctx, domain.Asset, false).
		Return([]domain.Account{cash}, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByType", ctx, domain.Liability, false).
		Return([]domain.Account{}, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByType", ctx, domain.Equity, false).
		Return([]domain.Account{}, nil).Once()
	suite.mockReportingRepo.On("SumBalancesByType", ctx).
		Return(map[domain.AccountType]decimal.Decimal{
			domain.Asset: decimal.NewFromInt(700),
		}, nil).Once()

	report, err := suite.service.BalanceSheet(ctx)

	suite.Require().NoError(err)
	suite.False(report.IsBalanced)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
