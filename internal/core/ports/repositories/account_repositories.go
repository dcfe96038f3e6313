package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountRepository defines persistence operations for ledger accounts.
//
// Balance mutation only happens through UpdateAccountBalancesInTx (called by
// the journal repository inside its posting transaction) and the closing
// repository path; SaveAccount/UpdateAccount never write the balance column
// other than the initial zero.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	// FindAccountsByCodes resolves control accounts. The returned map may be
	// missing codes that do not exist; callers decide whether that is fatal.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
	// ListAccountsByType returns active accounts of the given type ordered by
	// code, optionally restricted to accounts with a nonzero balance.
	ListAccountsByType(ctx context.Context, accountType domain.AccountType, nonZeroOnly bool) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
	DeleteAccount(ctx context.Context, accountID string) error
	// HasEntryLines reports whether any journal line references the account.
	HasEntryLines(ctx context.Context, accountID string) (bool, error)

	// FindAccountsByIDsForUpdate locks the account rows inside tx. Every
	// requested ID must be found or the call fails with ErrNotFound.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
	// UpdateAccountBalancesInTx applies signed balance deltas inside tx.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error
}
