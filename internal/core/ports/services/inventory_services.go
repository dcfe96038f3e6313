package services

import (
	"context"

	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	"github.com/ledgerline/ledgerline_backend/internal/core/ports/repositories"
	"github.com/ledgerline/ledgerline_backend/internal/dto"
)

// InventoryItemSvc defines operations on the item catalog
type InventoryItemSvc interface {
	// CreateItem persists a new inventory item with zero quantity.
	CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest) (*domain.InventoryItem, error)

	// GetItemByID retrieves a specific item.
	GetItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)

	// GetItemBySKU retrieves a specific item by its SKU.
	GetItemBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error)

	// ListItems retrieves items, optionally filtered by category or low stock.
	ListItems(ctx context.Context, filter repositories.ListItemsFilter) ([]domain.InventoryItem, error)

	// UpdateItem updates item details. Quantity is not updatable here.
	UpdateItem(ctx context.Context, itemID string, req dto.UpdateInventoryItemRequest) (*domain.InventoryItem, error)

	// DeleteItem removes an item, refusing items referenced by transactions.
	DeleteItem(ctx context.Context, itemID string) error
}

// InventoryTransactionSvc defines operations on inventory transactions
type InventoryTransactionSvc interface {
	// CreateTransaction records an inventory transaction: it validates the
	// items, applies quantity deltas, derives the double-entry journal
	// entry for the transaction type and posts everything atomically.
	CreateTransaction(ctx context.Context, req dto.CreateInventoryTransactionRequest) (*domain.InventoryTransaction, error)

	// GetTransactionByID retrieves a transaction with its item lines.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.InventoryTransaction, error)

	// ListTransactions retrieves transactions matching the filter.
	ListTransactions(ctx context.Context, filter repositories.ListTransactionsFilter) ([]domain.InventoryTransaction, error)
}

// InventorySvcFacade combines all inventory-related service interfaces
// This is a facade for clients that need access to all operations
type InventorySvcFacade interface {
	InventoryItemSvc
	InventoryTransactionSvc
}
