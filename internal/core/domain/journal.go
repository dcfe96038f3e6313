package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentType classifies an adjusting entry.
type AdjustmentType string

const (
	AdjustmentDepreciation    AdjustmentType = "Depreciation"
	AdjustmentPrepaid         AdjustmentType = "Prepaid"
	AdjustmentUnearnedRevenue AdjustmentType = "Unearned Revenue"
	AdjustmentAccruedRevenue  AdjustmentType = "Accrued Revenue"
	AdjustmentAccruedExpense  AdjustmentType = "Accrued Expense"
	AdjustmentSupplies        AdjustmentType = "Supplies"
)

// ValidAdjustmentType reports whether t is one of the known adjustment types.
func ValidAdjustmentType(t AdjustmentType) bool {
	switch t {
	case AdjustmentDepreciation, AdjustmentPrepaid, AdjustmentUnearnedRevenue,
		AdjustmentAccruedRevenue, AdjustmentAccruedExpense, AdjustmentSupplies:
		return true
	}
	return false
}

// ClosingReference is the reference recorded on system-generated closing entries.
const ClosingReference = "CLOSING"

// JournalEntry represents a single, balanced financial event composed of at
// least two entry lines. Entries are immutable once posted: there are no
// update or delete operations.
type JournalEntry struct {
	EntryID        string          `json:"entryID"` // Primary Key (UUID)
	EntryDate      time.Time       `json:"entryDate"`
	Description    string          `json:"description"`
	Lines          []EntryLine     `json:"lines,omitempty"`
	IsAdjustment   bool            `json:"isAdjustment"`
	AdjustmentType *AdjustmentType `json:"adjustmentType,omitempty"`
	IsPosted       bool            `json:"isPosted"`
	Reference      string          `json:"reference,omitempty"` // Transaction ID or CLOSING for system entries
	AuditFields
}

// EntryLine is a single debit or credit line within a journal entry,
// affecting exactly one account. By convention exactly one of Debit/Credit is
// nonzero; both are always >= 0.
type EntryLine struct {
	LineID         string          `json:"lineID"`
	EntryID        string          `json:"entryID"`
	AccountID      string          `json:"accountID"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"` // Account balance after this line was applied
	AuditFields
}
