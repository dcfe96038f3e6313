package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline_backend/internal/apperrors"
	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline_backend/internal/core/ports/services"
)

// closingService performs the period close: it drains every temporary
// (revenue and expense) account into retained earnings through closing
// entries and resets their balances to zero.
type closingService struct {
	BaseService
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
}

// NewClosingService creates a new closing service.
func NewClosingService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository) portssvc.ClosingSvcFacade {
	return &closingService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.ClosingSvcFacade = (*closingService)(nil)

// closingEntry builds one closing entry draining the given accounts into
// retained earnings. A positive balance is reversed on the account's normal
// side; an abnormal negative balance lands on its normal side instead. The
// retained earnings line takes whatever nets the entry to zero.
func closingEntry(closeDate time.Time, description string, accounts []domain.Account, retainedEarningsID string, drainDebitNormal bool, now time.Time) (domain.JournalEntry, []domain.EntryLine) {
	entryID := uuid.NewString()
	audit := domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}

	lines := make([]domain.EntryLine, 0, len(accounts)+1)
	sum := decimal.Zero
	for _, acc := range accounts {
		line := domain.EntryLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   acc.AccountID,
			AuditFields: audit,
		}
		// Credit-normal accounts are drained with a debit, debit-normal
		// ones with a credit; an abnormal balance flips the side.
		drainWithDebit := !drainDebitNormal
		if acc.Balance.IsNegative() {
			drainWithDebit = !drainWithDebit
		}
		if drainWithDebit {
			line.Debit = acc.Balance.Abs()
		} else {
			line.Credit = acc.Balance.Abs()
		}
		lines = append(lines, line)
		sum = sum.Add(acc.Balance)
	}

	reLine := domain.EntryLine{
		LineID:      uuid.NewString(),
		EntryID:     entryID,
		AccountID:   retainedEarningsID,
		AuditFields: audit,
	}
	if drainDebitNormal {
		// Expenses net to a debit against retained earnings.
		if sum.IsNegative() {
			reLine.Credit = sum.Abs()
		} else {
			reLine.Debit = sum
		}
	} else {
		if sum.IsNegative() {
			reLine.Debit = sum.Abs()
		} else {
			reLine.Credit = sum
		}
	}
	if !reLine.Debit.IsZero() || !reLine.Credit.IsZero() {
		lines = append(lines, reLine)
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   closeDate,
		Description: description,
		IsPosted:    true,
		Reference:   domain.ClosingReference,
		AuditFields: audit,
	}
	return entry, lines
}

func (s *closingService) ClosePeriod(ctx context.Context, closeDate time.Time) (*domain.PeriodCloseResult, error) {
	revenueAccounts, err := s.accountRepo.ListAccountsByType(ctx, domain.Revenue, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to load revenue accounts for close")
		return nil, fmt.Errorf("failed to load revenue accounts: %w", err)
	}
	expenseAccounts, err := s.accountRepo.ListAccountsByType(ctx, domain.Expense, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to load expense accounts for close")
		return nil, fmt.Errorf("failed to load expense accounts: %w", err)
	}

	retained, err := s.accountRepo.FindAccountByCode(ctx, domain.CodeRetainedEarnings)
	if err != nil {
		s.LogError(ctx, err, "Retained earnings account lookup failed", slog.String("code", domain.CodeRetainedEarnings))
		return nil, fmt.Errorf("%w: retained earnings account %s is missing from the chart of accounts", apperrors.ErrConfiguration, domain.CodeRetainedEarnings)
	}

	totalRevenue := decimal.Zero
	for _, acc := range revenueAccounts {
		totalRevenue = totalRevenue.Add(acc.Balance)
	}
	totalExpenses := decimal.Zero
	for _, acc := range expenseAccounts {
		totalExpenses = totalExpenses.Add(acc.Balance)
	}
	netIncome := totalRevenue.Sub(totalExpenses)

	now := time.Now().UTC()
	batch := portsrepo.ClosingBatch{
		Lines:              make(map[string][]domain.EntryLine),
		RetainedEarningsID: retained.AccountID,
		NetIncome:          netIncome,
	}

	if len(revenueAccounts) > 0 {
		entry, lines := closingEntry(closeDate, "Close revenue accounts to retained earnings", revenueAccounts, retained.AccountID, false, now)
		batch.Entries = append(batch.Entries, entry)
		batch.Lines[entry.EntryID] = lines
		for _, acc := range revenueAccounts {
			batch.ResetAccountIDs = append(batch.ResetAccountIDs, acc.AccountID)
		}
	}
	if len(expenseAccounts) > 0 {
		entry, lines := closingEntry(closeDate, "Close expense accounts to retained earnings", expenseAccounts, retained.AccountID, true, now)
		batch.Entries = append(batch.Entries, entry)
		batch.Lines[entry.EntryID] = lines
		for _, acc := range expenseAccounts {
			batch.ResetAccountIDs = append(batch.ResetAccountIDs, acc.AccountID)
		}
	}

	result := &domain.PeriodCloseResult{
		NetIncome:      netIncome,
		ClosingEntries: []domain.JournalEntry{},
	}
	if len(batch.Entries) == 0 {
		s.LogInfo(ctx, "Period close found nothing to close")
		return result, nil
	}

	if err := s.journalRepo.SaveClosingEntries(ctx, batch); err != nil {
		s.LogError(ctx, err, "Failed to save closing entries")
		return nil, fmt.Errorf("failed to save closing entries: %w", err)
	}

	for i := range batch.Entries {
		batch.Entries[i].Lines = batch.Lines[batch.Entries[i].EntryID]
	}
	result.ClosingEntries = batch.Entries

	s.LogInfo(ctx, "Period closed",
		slog.String("net_income", netIncome.String()),
		slog.Int("closing_entries", len(batch.Entries)),
		slog.Int("accounts_reset", len(batch.ResetAccountIDs)))
	return result, nil
}
