package dto

import (
	"time"

	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest defines the data needed to create an inventory item.
type CreateInventoryItemRequest struct {
	SKU          string          `json:"sku" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	ReorderLevel decimal.Decimal `json:"reorderLevel"`
	Location     string          `json:"location"`
}

// UpdateInventoryItemRequest defines the data allowed for updating an item.
// Quantity is deliberately absent; it only moves through transactions.
type UpdateInventoryItemRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Category     *string          `json:"category"`
	CostPrice    *decimal.Decimal `json:"costPrice"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
	ReorderLevel *decimal.Decimal `json:"reorderLevel"`
	Location     *string          `json:"location"`
	IsActive     *bool            `json:"isActive"`
}

// InventoryItemResponse defines the data returned for an inventory item.
type InventoryItemResponse struct {
	ItemID        string          `json:"itemID"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReorderLevel  decimal.Decimal `json:"reorderLevel"`
	Location      string          `json:"location"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ListInventoryItemsParams defines query parameters for listing items.
type ListInventoryItemsParams struct {
	Category *string `form:"category"`
	LowStock bool    `form:"lowStock,default=false"`
}

// ListInventoryItemsResponse wraps the list of inventory items.
type ListInventoryItemsResponse struct {
	Items []InventoryItemResponse `json:"items"`
}

// CreateTransactionItemRequest is one item line of an inventory transaction request.
type CreateTransactionItemRequest struct {
	ItemID    string          `json:"itemID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CreateInventoryTransactionRequest defines the data needed to record an
// inventory transaction. The journal entry is derived, never supplied.
type CreateInventoryTransactionRequest struct {
	TxnDate     time.Time                      `json:"txnDate" binding:"required"`
	TxnType     domain.TransactionType         `json:"txnType" binding:"required,txntype"`
	Description string                         `json:"description"`
	Reference   string                         `json:"reference"`
	Items       []CreateTransactionItemRequest `json:"items" binding:"required,min=1,dive"`
}

// TransactionItemResponse defines the data returned for a transaction item line.
type TransactionItemResponse struct {
	TransactionItemID string          `json:"transactionItemID"`
	ItemID            string          `json:"itemID"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	Total             decimal.Decimal `json:"total"`
}

// InventoryTransactionResponse defines the data returned for an inventory transaction.
type InventoryTransactionResponse struct {
	TransactionID string                    `json:"transactionID"`
	TxnDate       time.Time                 `json:"txnDate"`
	TxnType       domain.TransactionType    `json:"txnType"`
	Description   string                    `json:"description"`
	Reference     string                    `json:"reference,omitempty"`
	Total         decimal.Decimal           `json:"total"`
	EntryID       *string                   `json:"entryID,omitempty"`
	Items         []TransactionItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time                 `json:"createdAt"`
}

// ListInventoryTransactionsParams defines query parameters for listing transactions.
type ListInventoryTransactionsParams struct {
	TxnType *string    `form:"txnType"`
	From    *time.Time `form:"from" time_format:"2006-01-02"`
	To      *time.Time `form:"to" time_format:"2006-01-02"`
}

// ListInventoryTransactionsResponse wraps the list of inventory transactions.
type ListInventoryTransactionsResponse struct {
	Transactions []InventoryTransactionResponse `json:"transactions"`
}

// ToInventoryItemResponse converts a domain.InventoryItem to its response DTO.
func ToInventoryItemResponse(item *domain.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ItemID:        item.ItemID,
		SKU:           item.SKU,
		Name:          item.Name,
		Description:   item.Description,
		Category:      item.Category,
		CostPrice:     item.CostPrice,
		SellingPrice:  item.SellingPrice,
		Quantity:      item.Quantity,
		ReorderLevel:  item.ReorderLevel,
		Location:      item.Location,
		IsActive:      item.IsActive,
		CreatedAt:     item.CreatedAt,
		LastUpdatedAt: item.LastUpdatedAt,
	}
}

// ToListInventoryItemsResponse converts a slice of domain.InventoryItem to the list DTO.
func ToListInventoryItemsResponse(items []domain.InventoryItem) ListInventoryItemsResponse {
	responses := make([]InventoryItemResponse, len(items))
	for i, item := range items {
		responses[i] = ToInventoryItemResponse(&item)
	}
	return ListInventoryItemsResponse{Items: responses}
}

// ToTransactionItemResponses converts a slice of domain.TransactionItem to response DTOs.
func ToTransactionItemResponses(items []domain.TransactionItem) []TransactionItemResponse {
	responses := make([]TransactionItemResponse, len(items))
	for i, item := range items {
		responses[i] = TransactionItemResponse{
			TransactionItemID: item.TransactionItemID,
			ItemID:            item.ItemID,
			Quantity:          item.Quantity,
			UnitPrice:         item.UnitPrice,
			Total:             item.Total,
		}
	}
	return responses
}

// ToInventoryTransactionResponse converts a domain.InventoryTransaction to its response DTO.
func ToInventoryTransactionResponse(txn *domain.InventoryTransaction) InventoryTransactionResponse {
	return InventoryTransactionResponse{
		TransactionID: txn.TransactionID,
		TxnDate:       txn.TxnDate,
		TxnType:       txn.TxnType,
		Description:   txn.Description,
		Reference:     txn.Reference,
		Total:         txn.Total,
		EntryID:       txn.EntryID,
		Items:         ToTransactionItemResponses(txn.Items),
		CreatedAt:     txn.CreatedAt,
	}
}

// ToListInventoryTransactionsResponse converts a slice of domain.InventoryTransaction to the list DTO.
func ToListInventoryTransactionsResponse(txns []domain.InventoryTransaction) ListInventoryTransactionsResponse {
	responses := make([]InventoryTransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToInventoryTransactionResponse(&txn)
	}
	return ListInventoryTransactionsResponse{Transactions: responses}
}
