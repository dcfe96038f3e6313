package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListEntriesFilter narrows journal entry listings.
type ListEntriesFilter struct {
	IsAdjustment   *bool
	AdjustmentType *domain.AdjustmentType
	From           *time.Time
	To             *time.Time
}

// ClosingBatch is the unit of work for a period close: the closing entries
// with their lines, the temporary accounts to reset to zero, and the net
// income to roll into retained earnings.
type ClosingBatch struct {
	Entries            []domain.JournalEntry
	Lines              map[string][]domain.EntryLine // keyed by entry ID
	ResetAccountIDs    []string
	RetainedEarningsID string
	NetIncome          decimal.Decimal
}

// JournalRepository defines persistence operations for journal entries and
// their lines. All multi-row writes are atomic: either the entry, its lines,
// and every affected balance land together, or nothing does.
type JournalRepository interface {
	// SaveEntry persists a journal entry with its lines and applies the net
	// balance deltas to the referenced accounts in a single transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine, balanceChanges map[string]decimal.Decimal) error
	// SaveEntryInTx is SaveEntry using an externally managed transaction, so
	// callers (the inventory repository) can bundle the posting with their
	// own writes into one atomic unit.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.EntryLine, balanceChanges map[string]decimal.Decimal) error

	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error)
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error)
	ListEntries(ctx context.Context, filter ListEntriesFilter) ([]domain.JournalEntry, error)

	// ListPostedLines returns lines joined with their entry header in
	// chronological order, optionally filtered by account and date range.
	ListPostedLines(ctx context.Context, accountID *string, from, to *time.Time) ([]domain.PostedLine, error)
	// AdjustmentTotalsByAccount aggregates the debit/credit effect of all
	// adjustment entries per account.
	AdjustmentTotalsByAccount(ctx context.Context) (map[string]domain.AdjustmentTotals, error)

	// SaveClosingEntries persists the closing entries, zeroes the involved
	// revenue/expense balances, and rolls net income into retained earnings,
	// all in one transaction.
	SaveClosingEntries(ctx context.Context, batch ClosingBatch) error
}
