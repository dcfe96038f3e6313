package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsDebitNormal reports whether the account type carries a normal debit
// balance (debits increase it, credits decrease it).
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account represents a ledger account within the core domain.
// Balance is a materialized aggregate: it is only ever mutated by the posting
// engine (and the period-close reset), never set directly.
type Account struct {
	AccountID   string          `json:"accountID"`   // Primary Key (UUID)
	Code        string          `json:"code"`        // Chart-of-accounts code, unique (e.g. "1200")
	Name        string          `json:"name"`        // User-defined name
	AccountType AccountType     `json:"accountType"` // ASSET, LIABILITY, etc.
	Description string          `json:"description"` // Nullable user description
	Balance     decimal.Decimal `json:"balance"`     // Net effect of all posted lines, per sign convention
	IsActive    bool            `json:"isActive"`    // Soft-deactivation flag
	AuditFields
}

// Control account codes. Inventory transactions and the period close resolve
// these by code at posting time; a missing one is a configuration error.
const (
	CodeAccountsReceivable = "1100"
	CodeInventory          = "1200"
	CodeAccountsPayable    = "2000"
	CodeRetainedEarnings   = "3200"
	CodeSalesRevenue       = "4000"
	CodeSalesReturns       = "4100"
	CodeCOGS               = "5000"
	CodePurchaseReturns    = "5100"
	CodeFreightExpense     = "5200"
)

// ControlAccountCodes lists every code a fully configured chart of accounts
// must contain for inventory postings and period close to work.
var ControlAccountCodes = []string{
	CodeAccountsReceivable,
	CodeInventory,
	CodeAccountsPayable,
	CodeRetainedEarnings,
	CodeSalesRevenue,
	CodeSalesReturns,
	CodeCOGS,
	CodePurchaseReturns,
	CodeFreightExpense,
}

// IsControlAccountCode reports whether code is one of the reserved control
// account codes.
func IsControlAccountCode(code string) bool {
	for _, c := range ControlAccountCodes {
		if c == code {
			return true
		}
	}
	return false
}
