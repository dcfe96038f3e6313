package dto

import "time"

// LedgerParams defines query parameters for reconstructing a ledger account.
type LedgerParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// IncomeStatementParams defines query parameters for the income statement.
// The range is echoed back on the report; balances are point-in-time.
type IncomeStatementParams struct {
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
}

// ClosePeriodRequest defines the data needed to close the accounting period.
type ClosePeriodRequest struct {
	CloseDate time.Time `json:"closeDate" binding:"required"`
}
