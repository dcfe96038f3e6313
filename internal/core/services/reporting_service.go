package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline_backend/internal/apperrors"
	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline_backend/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_backend/internal/utils/accounting"
)

// reportingService builds the financial reports from current ledger state.
// Everything is a pure read; balances are point-in-time aggregates.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepository
	journalRepo   portsrepo.JournalRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepository, journalRepo portsrepo.JournalRepository) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		journalRepo:   journalRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func accountRef(acc domain.Account) domain.AccountRef {
	return domain.AccountRef{
		AccountID:   acc.AccountID,
		Code:        acc.Code,
		Name:        acc.Name,
		AccountType: acc.AccountType,
	}
}

// buildTrialBalance presents each account's balance on its normal side and
// totals the columns. balanceOf lets the adjusted variant substitute an
// overlaid figure per account.
func buildTrialBalance(accounts []domain.Account, balanceOf func(domain.Account) decimal.Decimal) *domain.TrialBalanceReport {
	report := &domain.TrialBalanceReport{
		Rows:        make([]domain.TrialBalanceRow, 0, len(accounts)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, acc := range accounts {
		debit, credit := accounting.PresentOnNormalSide(balanceOf(acc), acc.AccountType)
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			Account: accountRef(acc),
			Debit:   debit,
			Credit:  credit,
		})
		report.TotalDebit = report.TotalDebit.Add(debit)
		report.TotalCredit = report.TotalCredit.Add(credit)
	}
	report.IsBalanced = accounting.IsBalanced(report.TotalDebit, report.TotalCredit)
	return report
}

func (s *reportingService) TrialBalance(ctx context.Context) (*domain.TrialBalanceReport, error) {
	accounts, err := s.reportingRepo.ListAccountsWithActivity(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for trial balance")
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	report := buildTrialBalance(accounts, func(acc domain.Account) decimal.Decimal {
		return acc.Balance
	})
	s.LogDebug(ctx, "Trial balance generated", slog.Int("row_count", len(report.Rows)), slog.Bool("is_balanced", report.IsBalanced))
	return report, nil
}

func (s *reportingService) AdjustedTrialBalance(ctx context.Context) (*domain.TrialBalanceReport, error) {
	accounts, err := s.reportingRepo.ListAccountsWithActivity(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for adjusted trial balance")
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	adjustments, err := s.journalRepo.AdjustmentTotalsByAccount(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load adjustment totals")
		return nil, fmt.Errorf("failed to load adjustment totals: %w", err)
	}

	report := buildTrialBalance(accounts, func(acc domain.Account) decimal.Decimal {
		totals, ok := adjustments[acc.AccountID]
		if !ok {
			return acc.Balance
		}
		if acc.AccountType.IsDebitNormal() {
			return acc.Balance.Add(totals.Debit).Sub(totals.Credit)
		}
		return acc.Balance.Add(totals.Credit).Sub(totals.Debit)
	})
	s.LogDebug(ctx, "Adjusted trial balance generated", slog.Int("row_count", len(report.Rows)), slog.Bool("is_balanced", report.IsBalanced))
	return report, nil
}

// buildLedgerAccount replays an account's posted lines chronologically,
// accumulating the running balance with the type-based sign convention. With
// no date filter the final balance equals the account's stored balance.
func buildLedgerAccount(acc domain.Account, lines []domain.PostedLine) domain.LedgerAccount {
	ledger := domain.LedgerAccount{
		Account:     accountRef(acc),
		Lines:       make([]domain.LedgerLine, 0, len(lines)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Balance:     decimal.Zero,
	}
	running := decimal.Zero
	for _, line := range lines {
		if acc.AccountType.IsDebitNormal() {
			running = running.Add(line.Debit).Sub(line.Credit)
		} else {
			running = running.Add(line.Credit).Sub(line.Debit)
		}
		ledger.Lines = append(ledger.Lines, domain.LedgerLine{
			Date:           line.Date,
			Description:    line.Description,
			Reference:      line.Reference,
			Debit:          line.Debit,
			Credit:         line.Credit,
			RunningBalance: running,
		})
		ledger.TotalDebit = ledger.TotalDebit.Add(line.Debit)
		ledger.TotalCredit = ledger.TotalCredit.Add(line.Credit)
	}
	ledger.Balance = running
	return ledger
}

func (s *reportingService) GeneralLedger(ctx context.Context, from, to *time.Time) ([]domain.LedgerAccount, error) {
	accounts, err := s.reportingRepo.ListAccountsWithActivity(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for general ledger")
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	lines, err := s.journalRepo.ListPostedLines(ctx, nil, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load posted lines for general ledger")
		return nil, fmt.Errorf("failed to load posted lines: %w", err)
	}

	linesByAccount := make(map[string][]domain.PostedLine)
	for _, line := range lines {
		linesByAccount[line.AccountID] = append(linesByAccount[line.AccountID], line)
	}

	ledgers := make([]domain.LedgerAccount, 0, len(accounts))
	for _, acc := range accounts {
		ledgers = append(ledgers, buildLedgerAccount(acc, linesByAccount[acc.AccountID]))
	}
	return ledgers, nil
}

func (s *reportingService) LedgerAccount(ctx context.Context, accountID string, from, to *time.Time) (*domain.LedgerAccount, error) {
	acc, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for ledger", slog.String("account_id", accountID))
		}
		return nil, err
	}

	lines, err := s.journalRepo.ListPostedLines(ctx, &accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load posted lines", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to load posted lines: %w", err)
	}

	ledger := buildLedgerAccount(*acc, lines)
	return &ledger, nil
}

func accountAmounts(accounts []domain.Account) ([]domain.AccountAmount, decimal.Decimal) {
	amounts := make([]domain.AccountAmount, len(accounts))
	total := decimal.Zero
	for i, acc := range accounts {
		amounts[i] = domain.AccountAmount{
			AccountID: acc.AccountID,
			Code:      acc.Code,
			Name:      acc.Name,
			Balance:   acc.Balance,
		}
		total = total.Add(acc.Balance)
	}
	return amounts, total
}

func (s *reportingService) IncomeStatement(ctx context.Context, startDate, endDate *time.Time) (*domain.IncomeStatement, error) {
	revenueAccounts, err := s.accountRepo.ListAccountsByType(ctx, domain.Revenue, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to load revenue accounts")
		return nil, fmt.Errorf("failed to load revenue accounts: %w", err)
	}
	expenseAccounts, err := s.accountRepo.ListAccountsByType(ctx, domain.Expense, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to load expense accounts")
		return nil, fmt.Errorf("failed to load expense accounts: %w", err)
	}

	revenue, totalRevenue := accountAmounts(revenueAccounts)
	expenses, totalExpenses := accountAmounts(expenseAccounts)

	return &domain.IncomeStatement{
		StartDate:     startDate,
		EndDate:       endDate,
		Revenue:       revenue,
		Expenses:      expenses,
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		NetIncome:     totalRevenue.Sub(totalExpenses),
	}, nil
}

func (s *reportingService) BalanceSheet(ctx context.Context) (*domain.BalanceSheet, error) {
	assetAccounts, err := s.accountRepo.ListAccountsByType(ctx, domain.Asset, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to load asset accounts")
		return nil, fmt.Errorf("failed to load asset accounts: %w", err)
	}
	liabilityAccounts, err := s.accountRepo.ListAccountsByType(ctx, domain.Liability, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to load liability accounts")
		return nil, fmt.Errorf("failed to load liability accounts: %w", err)
	}
	equityAccounts, err := s.accountRepo.ListAccountsByType(ctx, domain.Equity, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to load equity accounts")
		return nil, fmt.Errorf("failed to load equity accounts: %w", err)
	}

	// Section totals come from a single aggregate query over all accounts.
	totals, err := s.reportingRepo.SumBalancesByType(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum balances by account type")
		return nil, fmt.Errorf("failed to sum balances: %w", err)
	}

	assets, _ := accountAmounts(assetAccounts)
	liabilities, _ := accountAmounts(liabilityAccounts)
	equity, _ := accountAmounts(equityAccounts)
	totalAssets := totals[domain.Asset]
	totalLiabilities := totals[domain.Liability]
	totalEquity := totals[domain.Equity]
	liabilitiesAndEquity := totalLiabilities.Add(totalEquity)

	return &domain.BalanceSheet{
		Date:                      time.Now().UTC(),
		Assets:                    assets,
		Liabilities:               liabilities,
		Equity:                    equity,
		TotalAssets:               totalAssets,
		TotalLiabilities:          totalLiabilities,
		TotalEquity:               totalEquity,
		TotalLiabilitiesAndEquity: liabilitiesAndEquity,
		IsBalanced:                accounting.IsBalanced(totalAssets, liabilitiesAndEquity),
	}, nil
}
