package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the database representation of a posted journal entry.
type JournalEntry struct {
	EntryID        string    `db:"entry_id"`
	EntryDate      time.Time `db:"entry_date"`
	Description    string    `db:"description"`
	IsAdjustment   bool      `db:"is_adjustment"`
	AdjustmentType *string   `db:"adjustment_type"` // Nullable
	IsPosted       bool      `db:"is_posted"`
	Reference      *string   `db:"reference"` // Nullable
	AuditFields
}

// EntryLine is the database representation of a single journal line.
type EntryLine struct {
	LineID         string          `db:"line_id"`
	EntryID        string          `db:"entry_id"`
	AccountID      string          `db:"account_id"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	RunningBalance decimal.Decimal `db:"running_balance"`
	AuditFields
}
