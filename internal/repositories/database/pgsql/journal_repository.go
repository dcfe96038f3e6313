package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline_backend/internal/apperrors"
	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_backend/internal/core/ports/repositories"
	"github.com/ledgerline/ledgerline_backend/internal/models"
	"github.com/ledgerline/ledgerline_backend/internal/utils/accounting"
	"github.com/ledgerline/ledgerline_backend/internal/utils/mapping"
)

const entryColumns = `entry_id, entry_date, description, is_adjustment, adjustment_type, is_posted, reference, created_at, last_updated_at`
const lineColumns = `line_id, entry_id, account_id, debit, credit, running_balance, created_at, last_updated_at`

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepository) portsrepo.JournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.Description,
		&m.IsAdjustment,
		&m.AdjustmentType,
		&m.IsPosted,
		&m.Reference,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func scanLine(row pgx.Row) (models.EntryLine, error) {
	var m models.EntryLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.Debit,
		&m.Credit,
		&m.RunningBalance,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func collectLines(rows pgx.Rows) ([]domain.EntryLine, error) {
	defer rows.Close()
	lines := []domain.EntryLine{}
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry line row: %w", err)
		}
		lines = append(lines, mapping.ToDomainEntryLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry line rows: %w", err)
	}
	return lines, nil
}

// SaveEntry persists the entry with its lines and applies the balance deltas
// in a single database transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.SaveEntryInTx(ctx, tx, entry, lines, balanceChanges); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveEntryInTx is the posting write path: insert the entry, lock the
// affected accounts, apply the balance deltas and insert the lines with
// their running balances, all on the caller's transaction.
func (r *PgxJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.EntryLine, balanceChanges map[string]decimal.Decimal) error {
	m := mapping.ToModelJournalEntry(entry)

	entryQuery := `
		INSERT INTO journal_entries (entry_id, entry_date, description, is_adjustment, adjustment_type, is_posted, reference, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.EntryDate,
		m.Description,
		m.IsAdjustment,
		m.AdjustmentType,
		m.IsPosted,
		m.Reference,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, entry.LastUpdatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	if err := insertLines(ctx, tx, lines, lockedAccounts); err != nil {
		return err
	}
	return nil
}

// insertLines batch-inserts entry lines, computing each line's running
// balance from the account balance as locked before this entry applied.
func insertLines(ctx context.Context, tx pgx.Tx, lines []domain.EntryLine, lockedAccounts map[string]domain.Account) error {
	lineQuery := `
		INSERT INTO entry_lines (line_id, entry_id, account_id, debit, credit, running_balance, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	currentRunningBalances := make(map[string]decimal.Decimal, len(lockedAccounts))
	for accID, acc := range lockedAccounts {
		currentRunningBalances[accID] = acc.Balance
	}

	sorted := make([]domain.EntryLine, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LineID < sorted[j].LineID
	})

	batch := &pgx.Batch{}
	for _, line := range sorted {
		acc, ok := lockedAccounts[line.AccountID]
		if !ok {
			return apperrors.NewAppError(500, "internal error: locked account "+line.AccountID+" not found during line processing", nil)
		}

		delta, err := accounting.LineDelta(line, acc.AccountType)
		if err != nil {
			return apperrors.NewAppError(500, "failed to compute balance delta for line "+line.LineID, err)
		}
		running := currentRunningBalances[line.AccountID].Add(delta)
		currentRunningBalances[line.AccountID] = running

		ml := mapping.ToModelEntryLine(line)
		ml.RunningBalance = running

		batch.Queue(lineQuery,
			ml.LineID,
			ml.EntryID,
			ml.AccountID,
			ml.Debit,
			ml.Credit,
			ml.RunningBalance,
			ml.CreatedAt,
			ml.LastUpdatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute entry line batch", err)
	}
	return nil
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindLinesByEntryID retrieves the lines of one entry ordered by line ID.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error) {
	query := `SELECT ` + lineColumns + ` FROM entry_lines WHERE entry_id = $1 ORDER BY line_id;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	return collectLines(rows)
}

// FindLinesByEntryIDs retrieves lines for multiple entries keyed by entry ID.
func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.EntryLine{}, nil
	}

	query := `SELECT ` + lineColumns + ` FROM entry_lines WHERE entry_id = ANY($1) ORDER BY line_id;`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entries: %w", err)
	}

	lines, err := collectLines(rows)
	if err != nil {
		return nil, err
	}
	linesByEntry := make(map[string][]domain.EntryLine)
	for _, line := range lines {
		linesByEntry[line.EntryID] = append(linesByEntry[line.EntryID], line)
	}
	return linesByEntry, nil
}

// ListEntries retrieves entry headers matching the filter, newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter portsrepo.ListEntriesFilter) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE ($1::boolean IS NULL OR is_adjustment = $1)
		  AND ($2::text IS NULL OR adjustment_type = $2)
		  AND ($3::timestamptz IS NULL OR entry_date >= $3)
		  AND ($4::timestamptz IS NULL OR entry_date <= $4)
		ORDER BY entry_date DESC, created_at DESC;
	`

	var adjType *string
	if filter.AdjustmentType != nil {
		s := string(*filter.AdjustmentType)
		adjType = &s
	}

	rows, err := r.Pool.Query(ctx, query, filter.IsAdjustment, adjType, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}
	return entries, nil
}

// ListPostedLines returns lines joined with their entry header in
// chronological order for ledger reconstruction.
func (r *PgxJournalRepository) ListPostedLines(ctx context.Context, accountID *string, from, to *time.Time) ([]domain.PostedLine, error) {
	query := `
		SELECT l.account_id, e.entry_date, e.description, COALESCE(e.reference, ''), l.debit, l.credit
		FROM entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.is_posted = TRUE
		  AND ($1::text IS NULL OR l.account_id = $1)
		  AND ($2::timestamptz IS NULL OR e.entry_date >= $2)
		  AND ($3::timestamptz IS NULL OR e.entry_date <= $3)
		ORDER BY e.entry_date, e.created_at, l.line_id;
	`

	rows, err := r.Pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted lines: %w", err)
	}
	defer rows.Close()

	lines := []domain.PostedLine{}
	for rows.Next() {
		var line domain.PostedLine
		if err := rows.Scan(&line.AccountID, &line.Date, &line.Description, &line.Reference, &line.Debit, &line.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan posted line row: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posted line rows: %w", err)
	}
	return lines, nil
}

// AdjustmentTotalsByAccount aggregates the debit/credit effect of all
// adjustment entries per account.
func (r *PgxJournalRepository) AdjustmentTotalsByAccount(ctx context.Context) (map[string]domain.AdjustmentTotals, error) {
	query := `
		SELECT l.account_id, COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.is_adjustment = TRUE
		GROUP BY l.account_id;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustment totals: %w", err)
	}
	defer rows.Close()

	totals := map[string]domain.AdjustmentTotals{}
	for rows.Next() {
		var accountID string
		var t domain.AdjustmentTotals
		if err := rows.Scan(&accountID, &t.Debit, &t.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan adjustment totals row: %w", err)
		}
		totals[accountID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating adjustment totals rows: %w", err)
	}
	return totals, nil
}

// SaveClosingEntries persists the closing entries, zeroes the drained
// account balances and rolls net income into retained earnings, all in one
// transaction.
func (r *PgxJournalRepository) SaveClosingEntries(ctx context.Context, batch portsrepo.ClosingBatch) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockIDs := make([]string, 0, len(batch.ResetAccountIDs)+1)
	lockIDs = append(lockIDs, batch.ResetAccountIDs...)
	lockIDs = append(lockIDs, batch.RetainedEarningsID)

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, lockIDs)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return apperrors.NewAppError(500, "failed to lock accounts for period close", err)
	}

	entryQuery := `
		INSERT INTO journal_entries (entry_id, entry_date, description, is_adjustment, adjustment_type, is_posted, reference, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, entry := range batch.Entries {
		m := mapping.ToModelJournalEntry(entry)
		_, err := tx.Exec(ctx, entryQuery,
			m.EntryID,
			m.EntryDate,
			m.Description,
			m.IsAdjustment,
			m.AdjustmentType,
			m.IsPosted,
			m.Reference,
			m.CreatedAt,
			m.LastUpdatedAt,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert closing entry "+m.EntryID, err)
		}

		if err := insertLines(ctx, tx, batch.Lines[entry.EntryID], lockedAccounts); err != nil {
			return err
		}
		// Subsequent closing entries see balances as if earlier ones applied.
		for _, line := range batch.Lines[entry.EntryID] {
			acc := lockedAccounts[line.AccountID]
			delta, err := accounting.LineDelta(line, acc.AccountType)
			if err != nil {
				return apperrors.NewAppError(500, "failed to compute closing delta", err)
			}
			acc.Balance = acc.Balance.Add(delta)
			lockedAccounts[line.AccountID] = acc
		}
	}

	now := time.Now().UTC()
	if len(batch.ResetAccountIDs) > 0 {
		_, err = tx.Exec(ctx,
			`UPDATE accounts SET balance = 0, last_updated_at = $2 WHERE account_id = ANY($1);`,
			batch.ResetAccountIDs, now)
		if err != nil {
			return apperrors.NewAppError(500, "failed to reset closed account balances", err)
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE accounts SET balance = COALESCE(balance, 0) + $2, last_updated_at = $3 WHERE account_id = $1;`,
		batch.RetainedEarningsID, batch.NetIncome, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update retained earnings", err)
	}

	return r.Commit(ctx, tx)
}
