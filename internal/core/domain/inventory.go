package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a stocked good identified by SKU. Quantity is mutated only
// as a side effect of inventory transactions and never goes negative.
type InventoryItem struct {
	ItemID       string          `json:"itemID"` // Primary Key (UUID)
	SKU          string          `json:"sku"`    // Unique stock keeping unit
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderLevel decimal.Decimal `json:"reorderLevel"`
	Location     string          `json:"location"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// TransactionType classifies a physical inventory event.
type TransactionType string

const (
	TxnPurchase          TransactionType = "purchase"
	TxnPurchaseReturn    TransactionType = "purchase-return"
	TxnPurchaseAllowance TransactionType = "purchase-allowance"
	TxnPurchaseDiscount  TransactionType = "purchase-discount"
	TxnInboundFreight    TransactionType = "inbound-freight"
	TxnSale              TransactionType = "sale"
	TxnSaleReturn        TransactionType = "sale-return"
	TxnSaleAllowance     TransactionType = "sale-allowance"
	TxnSaleDiscount      TransactionType = "sale-discount"
	TxnOutboundFreight   TransactionType = "outbound-freight"
)

// ValidTransactionType reports whether t is one of the ten known types.
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TxnPurchase, TxnPurchaseReturn, TxnPurchaseAllowance, TxnPurchaseDiscount,
		TxnInboundFreight, TxnSale, TxnSaleReturn, TxnSaleAllowance,
		TxnSaleDiscount, TxnOutboundFreight:
		return true
	}
	return false
}

// QuantityEffect returns the direction an item quantity moves for this
// transaction type: +1 inbound, -1 outbound, 0 no effect.
func (t TransactionType) QuantityEffect() int {
	switch t {
	case TxnPurchase, TxnSaleReturn:
		return 1
	case TxnSale, TxnPurchaseReturn:
		return -1
	}
	return 0
}

// InventoryTransaction records a physical inventory event together with the
// journal entry it generated. Immutable once created.
type InventoryTransaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (UUID)
	TxnDate       time.Time         `json:"txnDate"`
	TxnType       TransactionType   `json:"txnType"`
	Description   string            `json:"description"`
	Items         []TransactionItem `json:"items,omitempty"`
	Total         decimal.Decimal   `json:"total"`
	Reference     string            `json:"reference,omitempty"`
	EntryID       *string           `json:"entryID,omitempty"` // Generated journal entry
	AuditFields
}

// TransactionItem is a single line of an inventory transaction.
type TransactionItem struct {
	TransactionItemID string          `json:"transactionItemID"`
	TransactionID     string          `json:"transactionID"`
	ItemID            string          `json:"itemID"`
	Quantity          decimal.Decimal `json:"quantity"`  // > 0
	UnitPrice         decimal.Decimal `json:"unitPrice"` // >= 0
	Total             decimal.Decimal `json:"total"`     // quantity * unitPrice
}
