package repositories

import (
	"context"
	"time"

	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListItemsFilter narrows inventory item listings.
type ListItemsFilter struct {
	Category *string
	// LowStock restricts the listing to items at or below their reorder level.
	LowStock bool
}

// ListTransactionsFilter narrows inventory transaction listings.
type ListTransactionsFilter struct {
	TxnType *domain.TransactionType
	From    *time.Time
	To      *time.Time
}

// InventoryRepository defines persistence operations for inventory items and
// inventory transactions.
type InventoryRepository interface {
	SaveItem(ctx context.Context, item domain.InventoryItem) error
	FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)
	FindItemBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error)
	FindItemsByIDs(ctx context.Context, itemIDs []string) (map[string]domain.InventoryItem, error)
	ListItems(ctx context.Context, filter ListItemsFilter) ([]domain.InventoryItem, error)
	UpdateItem(ctx context.Context, item domain.InventoryItem) error
	DeleteItem(ctx context.Context, itemID string) error
	// HasTransactions reports whether any transaction line references the item.
	HasTransactions(ctx context.Context, itemID string) (bool, error)

	// SaveTransaction atomically persists the transaction with its items,
	// applies the quantity deltas (aborting on underflow), posts the derived
	// journal entry with its balance effects, and links the entry back onto
	// the transaction. One database transaction covers all of it. A nil entry
	// means the transaction has no monetary effect and no journal work is done.
	SaveTransaction(ctx context.Context, txn domain.InventoryTransaction, items []domain.TransactionItem, quantityDeltas map[string]decimal.Decimal, entry *domain.JournalEntry, lines []domain.EntryLine, balanceChanges map[string]decimal.Decimal) error

	FindTransactionByID(ctx context.Context, transactionID string) (*domain.InventoryTransaction, error)
	FindTransactionItems(ctx context.Context, transactionID string) ([]domain.TransactionItem, error)
	ListTransactions(ctx context.Context, filter ListTransactionsFilter) ([]domain.InventoryTransaction, error)
}
