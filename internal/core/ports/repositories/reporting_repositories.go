package repositories

import (
	"context"

	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines the read-only aggregate queries behind the
// financial reports. Everything here is derived from accounts and posted
// journal lines; nothing writes.
type ReportingRepository interface {
	// ListAccountsWithActivity returns active accounts ordered by code,
	// keeping zero-balance accounts only when they have posted lines.
	ListAccountsWithActivity(ctx context.Context) ([]domain.Account, error)
	// SumBalancesByType returns the summed balance per account type across
	// all active accounts.
	SumBalancesByType(ctx context.Context) (map[domain.AccountType]decimal.Decimal, error)
}
