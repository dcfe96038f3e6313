package services

import (
	"context"
	"time"

	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
)

// ReportingSvcFacade defines operations for generating financial reports
type ReportingSvcFacade interface {
	// TrialBalance generates the two-column trial balance from current
	// account balances, each presented on its normal side.
	TrialBalance(ctx context.Context) (*domain.TrialBalanceReport, error)

	// AdjustedTrialBalance generates the trial balance with the aggregate
	// effect of adjustment entries overlaid per account.
	AdjustedTrialBalance(ctx context.Context) (*domain.TrialBalanceReport, error)

	// GeneralLedger reconstructs the T-account view of every active account
	// with posted activity.
	GeneralLedger(ctx context.Context, from, to *time.Time) ([]domain.LedgerAccount, error)

	// LedgerAccount reconstructs the T-account view of a single account.
	LedgerAccount(ctx context.Context, accountID string, from, to *time.Time) (*domain.LedgerAccount, error)

	// IncomeStatement summarizes revenue and expense balances.
	IncomeStatement(ctx context.Context, startDate, endDate *time.Time) (*domain.IncomeStatement, error)

	// BalanceSheet summarizes asset, liability and equity balances.
	BalanceSheet(ctx context.Context) (*domain.BalanceSheet, error)
}

// ClosingSvcFacade defines the period close operation
type ClosingSvcFacade interface {
	// ClosePeriod zeroes all revenue and expense accounts into retained
	// earnings through closing entries, atomically.
	ClosePeriod(ctx context.Context, closeDate time.Time) (*domain.PeriodCloseResult, error)
}
