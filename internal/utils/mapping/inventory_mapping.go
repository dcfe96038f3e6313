package mapping

import (
	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	"github.com/ledgerline/ledgerline_backend/internal/models"
)

// ToModelInventoryItem converts a domain InventoryItem to its model form.
func ToModelInventoryItem(d domain.InventoryItem) models.InventoryItem {
	return models.InventoryItem{
		ItemID:       d.ItemID,
		SKU:          d.SKU,
		Name:         d.Name,
		Description:  d.Description,
		Category:     d.Category,
		CostPrice:    d.CostPrice,
		SellingPrice: d.SellingPrice,
		Quantity:     d.Quantity,
		ReorderLevel: d.ReorderLevel,
		Location:     d.Location,
		IsActive:     d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToDomainInventoryItem converts a model InventoryItem to its domain form.
func ToDomainInventoryItem(m models.InventoryItem) domain.InventoryItem {
	return domain.InventoryItem{
		ItemID:       m.ItemID,
		SKU:          m.SKU,
		Name:         m.Name,
		Description:  m.Description,
		Category:     m.Category,
		CostPrice:    m.CostPrice,
		SellingPrice: m.SellingPrice,
		Quantity:     m.Quantity,
		ReorderLevel: m.ReorderLevel,
		Location:     m.Location,
		IsActive:     m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// ToModelInventoryTransaction converts a domain InventoryTransaction to its
// model form. Items are mapped separately.
func ToModelInventoryTransaction(d domain.InventoryTransaction) models.InventoryTransaction {
	m := models.InventoryTransaction{
		TransactionID: d.TransactionID,
		TxnDate:       d.TxnDate,
		TxnType:       string(d.TxnType),
		Description:   d.Description,
		Total:         d.Total,
		EntryID:       d.EntryID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
	if d.Reference != "" {
		ref := d.Reference
		m.Reference = &ref
	}
	return m
}

// ToDomainInventoryTransaction converts a model InventoryTransaction to its
// domain form.
func ToDomainInventoryTransaction(m models.InventoryTransaction) domain.InventoryTransaction {
	d := domain.InventoryTransaction{
		TransactionID: m.TransactionID,
		TxnDate:       m.TxnDate,
		TxnType:       domain.TransactionType(m.TxnType),
		Description:   m.Description,
		Total:         m.Total,
		EntryID:       m.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
	if m.Reference != nil {
		d.Reference = *m.Reference
	}
	return d
}

// ToModelTransactionItem converts a domain TransactionItem to its model form.
func ToModelTransactionItem(d domain.TransactionItem) models.TransactionItem {
	return models.TransactionItem{
		TransactionItemID: d.TransactionItemID,
		TransactionID:     d.TransactionID,
		ItemID:            d.ItemID,
		Quantity:          d.Quantity,
		UnitPrice:         d.UnitPrice,
		Total:             d.Total,
	}
}

// ToDomainTransactionItem converts a model TransactionItem to its domain form.
func ToDomainTransactionItem(m models.TransactionItem) domain.TransactionItem {
	return domain.TransactionItem{
		TransactionItemID: m.TransactionItemID,
		TransactionID:     m.TransactionID,
		ItemID:            m.ItemID,
		Quantity:          m.Quantity,
		UnitPrice:         m.UnitPrice,
		Total:             m.Total,
	}
}
