package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/ledgerline_backend/internal/apperrors"
	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/ledgerline_backend/internal/core/ports/repositories"
	"github.com/ledgerline/ledgerline_backend/internal/models"
	"github.com/ledgerline/ledgerline_backend/internal/utils/mapping"
)

const itemColumns = `item_id, sku, name, description, category, cost_price, selling_price, quantity, reorder_level, location, is_active, created_at, last_updated_at`
const txnColumns = `transaction_id, txn_date, txn_type, description, total, reference, entry_id, created_at, last_updated_at`

type PgxInventoryRepository struct {
	BaseRepository
	journalRepo portsrepo.JournalRepository
}

// newPgxInventoryRepository creates a new repository for inventory data. The
// journal repository dependency lets SaveTransaction post the derived entry
// on the same database transaction.
func newPgxInventoryRepository(pool *pgxpool.Pool, journalRepo portsrepo.JournalRepository) portsrepo.InventoryRepository {
	return &PgxInventoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		journalRepo:    journalRepo,
	}
}

var _ portsrepo.InventoryRepository = (*PgxInventoryRepository)(nil)

func scanItem(row pgx.Row) (models.InventoryItem, error) {
	var m models.InventoryItem
	err := row.Scan(
		&m.ItemID,
		&m.SKU,
		&m.Name,
		&m.Description,
		&m.Category,
		&m.CostPrice,
		&m.SellingPrice,
		&m.Quantity,
		&m.ReorderLevel,
		&m.Location,
		&m.IsActive,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func collectItems(rows pgx.Rows) ([]domain.InventoryItem, error) {
	defer rows.Close()
	items := []domain.InventoryItem{}
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item row: %w", err)
		}
		items = append(items, mapping.ToDomainInventoryItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory item rows: %w", err)
	}
	return items, nil
}

func scanTransaction(row pgx.Row) (models.InventoryTransaction, error) {
	var m models.InventoryTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.TxnDate,
		&m.TxnType,
		&m.Description,
		&m.Total,
		&m.Reference,
		&m.EntryID,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveItem inserts a new inventory item.
func (r *PgxInventoryRepository) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	m := mapping.ToModelInventoryItem(item)

	query := `
		INSERT INTO inventory_items (item_id, sku, name, description, category, cost_price, selling_price, quantity, reorder_level, location, is_active, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ItemID,
		m.SKU,
		m.Name,
		m.Description,
		m.Category,
		m.CostPrice,
		m.SellingPrice,
		m.Quantity,
		m.ReorderLevel,
		m.Location,
		m.IsActive,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: SKU %s already exists", apperrors.ErrDuplicate, m.SKU)
		}
		return fmt.Errorf("failed to save inventory item %s: %w", m.ItemID, err)
	}
	return nil
}

// FindItemByID retrieves an inventory item by its ID.
func (r *PgxInventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE item_id = $1;`

	m, err := scanItem(r.Pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory item %s: %w", itemID, err)
	}
	item := mapping.ToDomainInventoryItem(m)
	return &item, nil
}

// FindItemBySKU retrieves an inventory item by its SKU.
func (r *PgxInventoryRepository) FindItemBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE sku = $1;`

	m, err := scanItem(r.Pool.QueryRow(ctx, query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory item by SKU %s: %w", sku, err)
	}
	item := mapping.ToDomainInventoryItem(m)
	return &item, nil
}

// FindItemsByIDs retrieves multiple items by ID. IDs with no matching item
// are absent from the returned map.
func (r *PgxInventoryRepository) FindItemsByIDs(ctx context.Context, itemIDs []string) (map[string]domain.InventoryItem, error) {
	if len(itemIDs) == 0 {
		return map[string]domain.InventoryItem{}, nil
	}

	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE item_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory items by IDs: %w", err)
	}

	items, err := collectItems(rows)
	if err != nil {
		return nil, err
	}
	itemsMap := make(map[string]domain.InventoryItem, len(items))
	for _, item := range items {
		itemsMap[item.ItemID] = item
	}
	return itemsMap, nil
}

// ListItems retrieves active items ordered by SKU, optionally filtered by
// category or restricted to items at or below their reorder level.
func (r *PgxInventoryRepository) ListItems(ctx context.Context, filter portsrepo.ListItemsFilter) ([]domain.InventoryItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM inventory_items
		WHERE is_active = TRUE
		  AND ($1::text IS NULL OR category = $1)
		  AND (NOT $2 OR quantity <= reorder_level)
		ORDER BY sku;
	`
	rows, err := r.Pool.Query(ctx, query, filter.Category, filter.LowStock)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory items: %w", err)
	}
	return collectItems(rows)
}

// UpdateItem updates the mutable item columns. Quantity is deliberately
// excluded; it only moves inside SaveTransaction.
func (r *PgxInventoryRepository) UpdateItem(ctx context.Context, item domain.InventoryItem) error {
	m := mapping.ToModelInventoryItem(item)
	query := `
		UPDATE inventory_items
		SET name = $2, description = $3, category = $4, cost_price = $5, selling_price = $6, reorder_level = $7, location = $8, is_active = $9, last_updated_at = $10
		WHERE item_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query,
		m.ItemID, m.Name, m.Description, m.Category, m.CostPrice, m.SellingPrice, m.ReorderLevel, m.Location, m.IsActive, m.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update inventory item %s: %w", m.ItemID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteItem removes an item row. The service layer refuses items that are
// referenced by transactions before calling this.
func (r *PgxInventoryRepository) DeleteItem(ctx context.Context, itemID string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM inventory_items WHERE item_id = $1;`, itemID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // FK violation
			return fmt.Errorf("%w: item %s is referenced by transactions", apperrors.ErrConflict, itemID)
		}
		return fmt.Errorf("failed to delete inventory item %s: %w", itemID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// HasTransactions reports whether any transaction line references the item.
func (r *PgxInventoryRepository) HasTransactions(ctx context.Context, itemID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM transaction_items WHERE item_id = $1);`, itemID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check transactions for item %s: %w", itemID, err)
	}
	return exists, nil
}

// SaveTransaction persists the transaction, its items, the quantity deltas
// and the derived journal entry as one database transaction. An underflow on
// any item aborts everything. A nil entry skips the journal posting entirely.
func (r *PgxInventoryRepository) SaveTransaction(ctx context.Context, txn domain.InventoryTransaction, items []domain.TransactionItem, quantityDeltas map[string]decimal.Decimal, entry *domain.JournalEntry, lines []domain.EntryLine, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if entry != nil {
		if err := r.journalRepo.SaveEntryInTx(ctx, tx, *entry, lines, balanceChanges); err != nil {
			return err
		}
	}

	m := mapping.ToModelInventoryTransaction(txn)
	txnQuery := `
		INSERT INTO inventory_transactions (transaction_id, txn_date, txn_type, description, total, reference, entry_id, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, txnQuery,
		m.TransactionID,
		m.TxnDate,
		m.TxnType,
		m.Description,
		m.Total,
		m.Reference,
		m.EntryID,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert inventory transaction "+m.TransactionID, err)
	}

	itemQuery := `
		INSERT INTO transaction_items (transaction_item_id, transaction_id, item_id, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, item := range items {
		mi := mapping.ToModelTransactionItem(item)
		batch.Queue(itemQuery, mi.TransactionItemID, mi.TransactionID, mi.ItemID, mi.Quantity, mi.UnitPrice, mi.Total)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute transaction item batch", err)
	}

	if err := r.applyQuantityDeltas(ctx, tx, quantityDeltas, txn); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// applyQuantityDeltas locks the affected item rows, re-checks quantities
// under the locks and applies the deltas, aborting on underflow.
func (r *PgxInventoryRepository) applyQuantityDeltas(ctx context.Context, tx pgx.Tx, quantityDeltas map[string]decimal.Decimal, txn domain.InventoryTransaction) error {
	if len(quantityDeltas) == 0 {
		return nil
	}

	itemIDs := make([]string, 0, len(quantityDeltas))
	for itemID := range quantityDeltas {
		itemIDs = append(itemIDs, itemID)
	}
	sort.Strings(itemIDs)

	rows, err := tx.Query(ctx, `SELECT item_id, sku, quantity FROM inventory_items WHERE item_id = ANY($1) ORDER BY item_id FOR UPDATE;`, itemIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock inventory items", err)
	}
	type lockedItem struct {
		sku      string
		quantity decimal.Decimal
	}
	locked := make(map[string]lockedItem, len(itemIDs))
	for rows.Next() {
		var id string
		var li lockedItem
		if err := rows.Scan(&id, &li.sku, &li.quantity); err != nil {
			rows.Close()
			return apperrors.NewAppError(500, "failed to scan locked inventory item", err)
		}
		locked[id] = li
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating locked inventory items", err)
	}

	updateQuery := `UPDATE inventory_items SET quantity = quantity + $2, last_updated_at = $3 WHERE item_id = $1;`
	batch := &pgx.Batch{}
	for _, itemID := range itemIDs {
		li, found := locked[itemID]
		if !found {
			return fmt.Errorf("%w: inventory item %s", apperrors.ErrNotFound, itemID)
		}
		delta := quantityDeltas[itemID]
		if li.quantity.Add(delta).IsNegative() {
			return fmt.Errorf("%w: item %s has quantity %s, cannot apply change of %s",
				apperrors.ErrInsufficientQuantity, li.sku, li.quantity, delta)
		}
		batch.Queue(updateQuery, itemID, delta, txn.LastUpdatedAt)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute quantity delta batch", err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction header by its ID.
func (r *PgxInventoryRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.InventoryTransaction, error) {
	query := `SELECT ` + txnColumns + ` FROM inventory_transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory transaction %s: %w", transactionID, err)
	}
	txn := mapping.ToDomainInventoryTransaction(m)
	return &txn, nil
}

// FindTransactionItems retrieves the item lines of one transaction.
func (r *PgxInventoryRepository) FindTransactionItems(ctx context.Context, transactionID string) ([]domain.TransactionItem, error) {
	query := `
		SELECT transaction_item_id, transaction_id, item_id, quantity, unit_price, total
		FROM transaction_items
		WHERE transaction_id = $1
		ORDER BY transaction_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	items := []domain.TransactionItem{}
	for rows.Next() {
		var m models.TransactionItem
		if err := rows.Scan(&m.TransactionItemID, &m.TransactionID, &m.ItemID, &m.Quantity, &m.UnitPrice, &m.Total); err != nil {
			return nil, fmt.Errorf("failed to scan transaction item row: %w", err)
		}
		items = append(items, mapping.ToDomainTransactionItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction item rows: %w", err)
	}
	return items, nil
}

// ListTransactions retrieves transaction headers matching the filter, newest
// first.
func (r *PgxInventoryRepository) ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter) ([]domain.InventoryTransaction, error) {
	query := `
		SELECT ` + txnColumns + `
		FROM inventory_transactions
		WHERE ($1::text IS NULL OR txn_type = $1)
		  AND ($2::timestamptz IS NULL OR txn_date >= $2)
		  AND ($3::timestamptz IS NULL OR txn_date <= $3)
		ORDER BY txn_date DESC, created_at DESC;
	`

	var txnType *string
	if filter.TxnType != nil {
		s := string(*filter.TxnType)
		txnType = &s
	}

	rows, err := r.Pool.Query(ctx, query, txnType, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.InventoryTransaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainInventoryTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory transaction rows: %w", err)
	}
	return txns, nil
}
