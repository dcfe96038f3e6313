package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline_backend/internal/apperrors"
	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/ledgerline_backend/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_backend/internal/dto"
)

var (
	ErrBadTransactionType = errors.New("unknown transaction type")
	ErrItemNotFound       = errors.New("inventory item not found")
	ErrInactiveItem       = errors.New("inventory item is inactive")
)

// controlLine is one debit or credit of the skeleton entry derived for a
// transaction type: an account code paired with an amount, before account
// resolution.
type controlLine struct {
	code   string
	debit  decimal.Decimal
	credit decimal.Decimal
}

// entryBuilders maps each transaction type to the double-entry lines it
// generates. total is the transaction value (quantity times unit price summed
// over items); costBasis is the same sum at item cost price, used only by the
// sale pair which books both the revenue side and the cost side.
var entryBuilders = map[domain.TransactionType]func(total, costBasis decimal.Decimal) []controlLine{
	domain.TxnPurchase: func(total, _ decimal.Decimal) []controlLine {
		return []controlLine{
			{code: domain.CodeInventory, debit: total},
			{code: domain.CodeAccountsPayable, credit: total},
		}
	},
	domain.TxnInboundFreight: func(total, _ decimal.Decimal) []controlLine {
		return []controlLine{
			{code: domain.CodeInventory, debit: total},
			{code: domain.CodeAccountsPayable, credit: total},
		}
	},
	domain.TxnPurchaseReturn: func(total, _ decimal.Decimal) []controlLine {
		return []controlLine{
			{code: domain.CodeAccountsPayable, debit: total},
			{code: domain.CodeInventory, credit: total},
		}
	},
	domain.TxnPurchaseAllowance: func(total, _ decimal.Decimal) []controlLine {
		return []controlLine{
			{code: domain.CodeAccountsPayable, debit: total},
			{code: domain.CodeInventory, credit: total},
		}
	},
	domain.TxnPurchaseDiscount: func(total, _ decimal.Decimal) []controlLine {
		return []controlLine{
			{code: domain.CodeAccountsPayable, debit: total},
			{code: domain.CodeInventory, credit: total},
		}
	},
	domain.TxnOutboundFreight: func(total, _ decimal.Decimal) []controlLine {
		return []controlLine{
			{code: domain.CodeFreightExpense, debit: total},
			{code: domain.CodeAccountsPayable, credit: total},
		}
	},
	domain.TxnSale: func(total, costBasis decimal.Decimal) []controlLine {
		return []controlLine{
			{code: domain.CodeAccountsReceivable, debit: total},
			{code: domain.CodeSalesRevenue, credit: total},
			{code: domain.CodeCOGS, debit: costBasis},
			{code: domain.CodeInventory, credit: costBasis},
		}
	},
	domain.TxnSaleReturn: func(total, costBasis decimal.Decimal) []controlLine {
		return []controlLine{
			{code: domain.CodeSalesReturns, debit: total},
			{code: domain.CodeAccountsReceivable, credit: total},
			{code: domain.CodeInventory, debit: costBasis},
			{code: domain.CodeCOGS, credit: costBasis},
		}
	},
	domain.TxnSaleAllowance: func(total, _ decimal.Decimal) []controlLine {
		return []controlLine{
			{code: domain.CodeSalesReturns, debit: total},
			{code: domain.CodeAccountsReceivable, credit: total},
		}
	},
	domain.TxnSaleDiscount: func(total, _ decimal.Decimal) []controlLine {
		return []controlLine{
			{code: domain.CodeSalesReturns, debit: total},
			{code: domain.CodeAccountsReceivable, credit: total},
		}
	},
}

// inventoryService manages the item catalog and translates inventory
// transactions into posted journal entries.
type inventoryService struct {
	BaseService
	inventoryRepo portsrepo.InventoryRepository
	accountRepo   portsrepo.AccountRepository
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepository, accountRepo portsrepo.AccountRepository) portssvc.InventorySvcFacade {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

func (s *inventoryService) CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest) (*domain.InventoryItem, error) {
	if req.CostPrice.IsNegative() || req.SellingPrice.IsNegative() || req.ReorderLevel.IsNegative() {
		return nil, fmt.Errorf("%w: prices and reorder level cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	item := domain.InventoryItem{
		ItemID:       uuid.NewString(),
		SKU:          req.SKU,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		Quantity:     decimal.Zero,
		ReorderLevel: req.ReorderLevel,
		Location:     req.Location,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.inventoryRepo.SaveItem(ctx, item); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: SKU %s already exists", apperrors.ErrDuplicate, req.SKU)
		}
		s.LogError(ctx, err, "Failed to save inventory item", slog.String("sku", req.SKU))
		return nil, fmt.Errorf("failed to save inventory item: %w", err)
	}

	s.LogInfo(ctx, "Inventory item created", slog.String("item_id", item.ItemID), slog.String("sku", item.SKU))
	return &item, nil
}

func (s *inventoryService) GetItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find inventory item", slog.String("item_id", itemID))
		}
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) GetItemBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.FindItemBySKU(ctx, sku)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find inventory item", slog.String("sku", sku))
		}
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) ListItems(ctx context.Context, filter portsrepo.ListItemsFilter) ([]domain.InventoryItem, error) {
	items, err := s.inventoryRepo.ListItems(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list inventory items")
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	if items == nil {
		return []domain.InventoryItem{}, nil
	}
	return items, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, itemID string, req dto.UpdateInventoryItemRequest) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.CostPrice != nil {
		if req.CostPrice.IsNegative() {
			return nil, fmt.Errorf("%w: cost price cannot be negative", apperrors.ErrValidation)
		}
		item.CostPrice = *req.CostPrice
	}
	if req.SellingPrice != nil {
		if req.SellingPrice.IsNegative() {
			return nil, fmt.Errorf("%w: selling price cannot be negative", apperrors.ErrValidation)
		}
		item.SellingPrice = *req.SellingPrice
	}
	if req.ReorderLevel != nil {
		if req.ReorderLevel.IsNegative() {
			return nil, fmt.Errorf("%w: reorder level cannot be negative", apperrors.ErrValidation)
		}
		item.ReorderLevel = *req.ReorderLevel
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	item.LastUpdatedAt = time.Now().UTC()

	if err := s.inventoryRepo.UpdateItem(ctx, *item); err != nil {
		s.LogError(ctx, err, "Failed to update inventory item", slog.String("item_id", itemID))
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	s.LogInfo(ctx, "Inventory item updated", slog.String("item_id", itemID))
	return item, nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, itemID string) error {
	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return err
	}

	referenced, err := s.inventoryRepo.HasTransactions(ctx, itemID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check transactions for item", slog.String("item_id", itemID))
		return fmt.Errorf("failed to check item references: %w", err)
	}
	if referenced {
		return fmt.Errorf("%w: item %s is referenced by transactions and cannot be deleted", apperrors.ErrConflict, item.SKU)
	}

	if err := s.inventoryRepo.DeleteItem(ctx, itemID); err != nil {
		s.LogError(ctx, err, "Failed to delete inventory item", slog.String("item_id", itemID))
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	s.LogInfo(ctx, "Inventory item deleted", slog.String("item_id", itemID), slog.String("sku", item.SKU))
	return nil
}

// CreateTransaction records an inventory transaction. The journal entry is
// derived from the transaction type, never supplied by the caller: totals and
// cost basis are computed server-side, control accounts resolved by code, and
// the transaction, quantity deltas, entry and balance changes are persisted
// as one atomic unit by the repository.
func (s *inventoryService) CreateTransaction(ctx context.Context, req dto.CreateInventoryTransactionRequest) (*domain.InventoryTransaction, error) {
	if !domain.ValidTransactionType(req.TxnType) {
		return nil, fmt.Errorf("%w: %s %q", apperrors.ErrValidation, ErrBadTransactionType, req.TxnType)
	}

	buildLines, ok := entryBuilders[req.TxnType]
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", apperrors.ErrValidation, ErrBadTransactionType, req.TxnType)
	}

	items, err := s.resolveTransactionItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	transactionID := uuid.NewString()
	audit := domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}

	total := decimal.Zero
	costBasis := decimal.Zero
	txnItems := make([]domain.TransactionItem, len(req.Items))
	quantityDeltas := make(map[string]decimal.Decimal)
	effect := req.TxnType.QuantityEffect()

	for i, itemReq := range req.Items {
		item := items[itemReq.ItemID]
		lineTotal := itemReq.Quantity.Mul(itemReq.UnitPrice)
		txnItems[i] = domain.TransactionItem{
			TransactionItemID: uuid.NewString(),
			TransactionID:     transactionID,
			ItemID:            itemReq.ItemID,
			Quantity:          itemReq.Quantity,
			UnitPrice:         itemReq.UnitPrice,
			Total:             lineTotal,
		}
		total = total.Add(lineTotal)
		costBasis = costBasis.Add(item.CostPrice.Mul(itemReq.Quantity))

		if effect != 0 {
			delta := itemReq.Quantity
			if effect < 0 {
				delta = delta.Neg()
				if item.Quantity.Add(quantityDeltas[itemReq.ItemID]).Add(delta).IsNegative() {
					return nil, fmt.Errorf("%w: item %s has quantity %s, cannot remove %s",
						apperrors.ErrInsufficientQuantity, item.SKU, item.Quantity, itemReq.Quantity)
				}
			}
			quantityDeltas[itemReq.ItemID] = quantityDeltas[itemReq.ItemID].Add(delta)
		}
	}

	if req.Description == "" {
		req.Description = fmt.Sprintf("Inventory %s", req.TxnType)
	}

	entry, lines, balanceChanges, err := s.buildJournalEntry(ctx, req, transactionID, buildLines(total, costBasis), now)
	if err != nil {
		return nil, err
	}

	txn := domain.InventoryTransaction{
		TransactionID: transactionID,
		TxnDate:       req.TxnDate,
		TxnType:       req.TxnType,
		Description:   req.Description,
		Total:         total,
		Reference:     req.Reference,
		AuditFields:   audit,
	}
	entryID := ""
	if entry != nil {
		entryID = entry.EntryID
		txn.EntryID = &entry.EntryID
	}

	if err := s.inventoryRepo.SaveTransaction(ctx, txn, txnItems, quantityDeltas, entry, lines, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to save inventory transaction",
			slog.String("transaction_id", transactionID), slog.String("txn_type", string(req.TxnType)))
		return nil, fmt.Errorf("failed to save inventory transaction: %w", err)
	}

	s.LogInfo(ctx, "Inventory transaction recorded",
		slog.String("transaction_id", transactionID),
		slog.String("txn_type", string(req.TxnType)),
		slog.String("entry_id", entryID))
	txn.Items = txnItems
	return &txn, nil
}

// resolveTransactionItems validates the request item lines and fetches their
// catalog records. Every item must exist and be active; quantities must be
// positive and unit prices non-negative.
func (s *inventoryService) resolveTransactionItems(ctx context.Context, reqItems []dto.CreateTransactionItemRequest) (map[string]domain.InventoryItem, error) {
	itemIDs := make([]string, 0, len(reqItems))
	seen := make(map[string]bool, len(reqItems))
	for _, itemReq := range reqItems {
		if itemReq.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: quantity must be positive for item %s", apperrors.ErrValidation, itemReq.ItemID)
		}
		if itemReq.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price cannot be negative for item %s", apperrors.ErrValidation, itemReq.ItemID)
		}
		if !seen[itemReq.ItemID] {
			seen[itemReq.ItemID] = true
			itemIDs = append(itemIDs, itemReq.ItemID)
		}
	}

	items, err := s.inventoryRepo.FindItemsByIDs(ctx, itemIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch items for transaction")
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	for _, id := range itemIDs {
		item, found := items[id]
		if !found {
			return nil, fmt.Errorf("%w: %s: ID %s", apperrors.ErrValidation, ErrItemNotFound, id)
		}
		if !item.IsActive {
			return nil, fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrInactiveItem, item.SKU)
		}
	}
	return items, nil
}

// buildJournalEntry resolves the control accounts referenced by the skeleton
// lines and assembles the journal entry with its balance changes. Zero-amount
// skeleton lines (a sale of zero-cost items has an empty cost side) are
// dropped before assembly; when every line drops out, as with a transaction
// priced entirely at zero, no entry is produced and the returned entry is nil.
func (s *inventoryService) buildJournalEntry(ctx context.Context, req dto.CreateInventoryTransactionRequest, transactionID string, skeleton []controlLine, now time.Time) (*domain.JournalEntry, []domain.EntryLine, map[string]decimal.Decimal, error) {
	live := make([]controlLine, 0, len(skeleton))
	for _, cl := range skeleton {
		if cl.debit.IsZero() && cl.credit.IsZero() {
			continue
		}
		live = append(live, cl)
	}
	if len(live) == 0 {
		return nil, nil, nil, nil
	}

	codes := make([]string, 0, len(live))
	for _, cl := range live {
		codes = append(codes, cl.code)
	}

	accountsByCode, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve control accounts")
		return nil, nil, nil, fmt.Errorf("failed to resolve control accounts: %w", err)
	}
	for _, code := range codes {
		if _, found := accountsByCode[code]; !found {
			return nil, nil, nil, fmt.Errorf("%w: control account %s is missing from the chart of accounts", apperrors.ErrConfiguration, code)
		}
	}

	entryID := uuid.NewString()
	audit := domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}

	lines := make([]domain.EntryLine, 0, len(live))
	accountsByID := make(map[string]domain.Account, len(accountsByCode))
	for _, cl := range live {
		account := accountsByCode[cl.code]
		accountsByID[account.AccountID] = account
		lines = append(lines, domain.EntryLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   account.AccountID,
			Debit:       cl.debit,
			Credit:      cl.credit,
			AuditFields: audit,
		})
	}

	balanceChanges, err := computeBalanceChanges(lines, accountsByID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("internal error computing balance changes: %w", err)
	}

	entry := &domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   req.TxnDate,
		Description: req.Description,
		IsPosted:    true,
		Reference:   transactionID,
		AuditFields: audit,
	}
	return entry, lines, balanceChanges, nil
}

func (s *inventoryService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.InventoryTransaction, error) {
	txn, err := s.inventoryRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find inventory transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	items, err := s.inventoryRepo.FindTransactionItems(ctx, transactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch transaction items", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to fetch transaction items: %w", err)
	}
	txn.Items = items
	return txn, nil
}

func (s *inventoryService) ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter) ([]domain.InventoryTransaction, error) {
	if filter.TxnType != nil && !domain.ValidTransactionType(*filter.TxnType) {
		return nil, fmt.Errorf("%w: %s %q", apperrors.ErrValidation, ErrBadTransactionType, *filter.TxnType)
	}

	txns, err := s.inventoryRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list inventory transactions")
		return nil, fmt.Errorf("failed to list inventory transactions: %w", err)
	}
	if txns == nil {
		return []domain.InventoryTransaction{}, nil
	}
	return txns, nil
}
