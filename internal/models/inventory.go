package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is the database representation of a stocked good.
type InventoryItem struct {
	ItemID       string          `db:"item_id"`
	SKU          string          `db:"sku"`
	Name         string          `db:"name"`
	Description  string          `db:"description"`
	Category     string          `db:"category"`
	CostPrice    decimal.Decimal `db:"cost_price"`
	SellingPrice decimal.Decimal `db:"selling_price"`
	Quantity     decimal.Decimal `db:"quantity"`
	ReorderLevel decimal.Decimal `db:"reorder_level"`
	Location     string          `db:"location"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}

// InventoryTransaction is the database representation of an inventory event.
type InventoryTransaction struct {
	TransactionID string          `db:"transaction_id"`
	TxnDate       time.Time       `db:"txn_date"`
	TxnType       string          `db:"txn_type"`
	Description   string          `db:"description"`
	Total         decimal.Decimal `db:"total"`
	Reference     *string         `db:"reference"` // Nullable
	EntryID       *string         `db:"entry_id"`  // Nullable, set once the journal entry exists
	AuditFields
}

// TransactionItem is the database representation of an inventory
// transaction line.
type TransactionItem struct {
	TransactionItemID string          `db:"transaction_item_id"`
	TransactionID     string          `db:"transaction_id"`
	ItemID            string          `db:"item_id"`
	Quantity          decimal.Decimal `db:"quantity"`
	UnitPrice         decimal.Decimal `db:"unit_price"`
	Total             decimal.Decimal `db:"total"`
}
