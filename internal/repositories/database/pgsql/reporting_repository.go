package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_backend/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for report queries.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// ListAccountsWithActivity returns active accounts ordered by code, keeping
// zero-balance accounts only when they have posted lines.
func (r *PgxReportingRepository) ListAccountsWithActivity(ctx context.Context) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts a
		WHERE is_active = TRUE
		  AND (balance <> 0 OR EXISTS (SELECT 1 FROM entry_lines l WHERE l.account_id = a.account_id))
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts with activity: %w", err)
	}
	return collectAccounts(rows)
}

// SumBalancesByType returns the summed balance per account type across all
// active accounts.
func (r *PgxReportingRepository) SumBalancesByType(ctx context.Context) (map[domain.AccountType]decimal.Decimal, error) {
	query := `
		SELECT account_type, COALESCE(SUM(balance), 0)
		FROM accounts
		WHERE is_active = TRUE
		GROUP BY account_type;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance sums by type: %w", err)
	}
	defer rows.Close()

	sums := map[domain.AccountType]decimal.Decimal{}
	for rows.Next() {
		var accountType string
		var sum decimal.Decimal
		if err := rows.Scan(&accountType, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan balance sum row: %w", err)
		}
		sums[domain.AccountType(accountType)] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance sum rows: %w", err)
	}
	return sums, nil
}
