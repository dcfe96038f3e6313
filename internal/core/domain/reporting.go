package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountRef is the minimal account identification carried by report rows.
type AccountRef struct {
	AccountID   string      `json:"accountID"`
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
}

// TrialBalanceRow presents one account's balance on its normal side. An
// abnormal (contra) balance appears as an absolute value on the opposite
// column instead.
type TrialBalanceRow struct {
	Account AccountRef      `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

// TrialBalanceReport is the full two-column trial balance.
type TrialBalanceReport struct {
	Rows        []TrialBalanceRow `json:"trialBalance"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
}

// LedgerLine is one journal line in a reconstructed T-account, with the
// cumulative running balance after applying it.
type LedgerLine struct {
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	Reference      string          `json:"reference,omitempty"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerAccount is the reconstructed ledger view of a single account.
// With no date filter, Balance equals the account's stored balance.
type LedgerAccount struct {
	Account     AccountRef      `json:"account"`
	Lines       []LedgerLine    `json:"entries"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"`
}

// PostedLine is a journal line joined with its entry header, in chronological
// order, as consumed by ledger reconstruction.
type PostedLine struct {
	AccountID   string          `json:"accountID"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Reference   string          `json:"reference,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// AdjustmentTotals aggregates the debit and credit effect of all adjustment
// entries referencing one account.
type AdjustmentTotals struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// AccountAmount is an account with its balance, as listed on financial statements.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}

// IncomeStatement summarizes revenue and expense balances. The optional date
// range is echoed back but does not filter the point-in-time balances.
type IncomeStatement struct {
	StartDate     *time.Time      `json:"startDate,omitempty"`
	EndDate       *time.Time      `json:"endDate,omitempty"`
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// BalanceSheet summarizes asset, liability and equity balances.
type BalanceSheet struct {
	Date                      time.Time       `json:"date"`
	Assets                    []AccountAmount `json:"assets"`
	Liabilities               []AccountAmount `json:"liabilities"`
	Equity                    []AccountAmount `json:"equity"`
	TotalAssets               decimal.Decimal `json:"totalAssets"`
	TotalLiabilities          decimal.Decimal `json:"totalLiabilities"`
	TotalEquity               decimal.Decimal `json:"totalEquity"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"totalLiabilitiesAndEquity"`
	IsBalanced                bool            `json:"isBalanced"`
}

// PeriodCloseResult reports the outcome of a period close.
type PeriodCloseResult struct {
	NetIncome      decimal.Decimal `json:"netIncome"`
	ClosingEntries []JournalEntry  `json:"closingEntries"`
}
