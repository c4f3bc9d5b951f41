package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"merchant-api/internal/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// SQLiteStore is the SQLite-backed implementation of Store.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const itemColumns = "id, name, description, unit_price, merchant_id, created_at, updated_at"

func scanItem(row interface{ Scan(...interface{}) error }) (*models.Item, error) {
	var item models.Item
	var price, createdAt, updatedAt string

	err := row.Scan(&item.ID, &item.Name, &item.Description, &price, &item.MerchantID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	item.UnitPrice, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse unit price: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		item.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		item.UpdatedAt = t
	}

	return &item, nil
}

func scanMerchant(row interface{ Scan(...interface{}) error }) (*models.Merchant, error) {
	var merchant models.Merchant
	var createdAt, updatedAt string

	err := row.Scan(&merchant.ID, &merchant.Name, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		merchant.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		merchant.UpdatedAt = t
	}

	return &merchant, nil
}

// ListMerchants lists all merchants ordered by id.
func (s *SQLiteStore) ListMerchants(ctx context.Context) ([]models.Merchant, error) {
	query := `SELECT id, name, created_at, updated_at FROM merchants ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list merchants: %w", err)
	}
	defer rows.Close()

	merchants := make([]models.Merchant, 0)
	for rows.Next() {
		merchant, err := scanMerchant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan merchant: %w", err)
		}
		merchants = append(merchants, *merchant)
	}

	return merchants, rows.Err()
}

// FindMerchant finds a merchant by id.
func (s *SQLiteStore) FindMerchant(ctx context.Context, id int64) (*models.Merchant, error) {
	query := `SELECT id, name, created_at, updated_at FROM merchants WHERE id = ?`

	merchant, err := scanMerchant(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMerchantNotFound
		}
		return nil, fmt.Errorf("failed to find merchant: %w", err)
	}

	return merchant, nil
}

// SearchMerchants returns all merchants whose name contains the fragment,
// case-insensitive, ordered ascending by name. An empty fragment matches
// every merchant.
func (s *SQLiteStore) SearchMerchants(ctx context.Context, name string) ([]models.Merchant, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM merchants
		WHERE LOWER(name) LIKE '%' || LOWER(?) || '%'
		ORDER BY name COLLATE NOCASE, id
	`

	rows, err := s.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search merchants: %w", err)
	}
	defer rows.Close()

	merchants := make([]models.Merchant, 0)
	for rows.Next() {
		merchant, err := scanMerchant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan merchant: %w", err)
		}
		merchants = append(merchants, *merchant)
	}

	return merchants, rows.Err()
}

// ListMerchantItems lists all items belonging to a merchant. Returns
// ErrMerchantNotFound when the merchant does not exist, distinguishing it
// from a merchant with no items.
func (s *SQLiteStore) ListMerchantItems(ctx context.Context, merchantID int64) ([]models.Item, error) {
	if _, err := s.FindMerchant(ctx, merchantID); err != nil {
		return nil, err
	}

	query := `SELECT ` + itemColumns + ` FROM items WHERE merchant_id = ? ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, merchantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list merchant items: %w", err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

// ListItems lists all items ordered by id.
func (s *SQLiteStore) ListItems(ctx context.Context) ([]models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

// FindItem finds an item by id.
func (s *SQLiteStore) FindItem(ctx context.Context, id int64) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}

	return item, nil
}

// CreateItem inserts a new item and fills in its generated id and timestamps.
// The referenced merchant must exist.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	if _, err := s.FindMerchant(ctx, item.MerchantID); err != nil {
		return err
	}

	query := `
		INSERT INTO items (name, description, unit_price, merchant_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, query,
		item.Name, item.Description, item.UnitPrice.String(), item.MerchantID,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get item id: %w", err)
	}

	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

// UpdateItem writes the item's current field values back to the store. The
// referenced merchant must exist.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *models.Item) error {
	if _, err := s.FindMerchant(ctx, item.MerchantID); err != nil {
		return err
	}

	query := `
		UPDATE items
		SET name = ?, description = ?, unit_price = ?, merchant_id = ?, updated_at = ?
		WHERE id = ?
	`

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, query,
		item.Name, item.Description, item.UnitPrice.String(), item.MerchantID,
		now.Format(time.RFC3339), item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	item.UpdatedAt = now
	return nil
}

// DeleteItem removes an item and cascades through its invoice lines inside a
// single transaction: the item's own lines are always removed, and any
// invoice left with zero lines afterwards is removed as well. Either the
// whole cascade completes or none of it does.
func (s *SQLiteStore) DeleteItem(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM items WHERE id = ?`, id).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to find item: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `SELECT DISTINCT invoice_id FROM invoice_lines WHERE item_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to collect invoices: %w", err)
	}
	invoiceIDs := make([]int64, 0)
	for rows.Next() {
		var invoiceID int64
		if err := rows.Scan(&invoiceID); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan invoice id: %w", err)
		}
		invoiceIDs = append(invoiceIDs, invoiceID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("failed to iterate invoices: %w", err)
	}
	rows.Close()

	if _, err := tx.ExecContext(ctx, `DELETE FROM invoice_lines WHERE item_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete invoice lines: %w", err)
	}

	for _, invoiceID := range invoiceIDs {
		var remaining int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoice_lines WHERE invoice_id = ?`, invoiceID).Scan(&remaining); err != nil {
			return fmt.Errorf("failed to count invoice lines: %w", err)
		}
		if remaining == 0 {
			if _, err := tx.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, invoiceID); err != nil {
				return fmt.Errorf("failed to delete invoice: %w", err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return tx.Commit()
}

// FirstItemByName returns the first item whose name contains the fragment,
// case-insensitive, in ascending case-insensitive name order. An empty
// fragment matches every item. Returns ErrItemNotFound when nothing matches.
func (s *SQLiteStore) FirstItemByName(ctx context.Context, name string) (*models.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE LOWER(name) LIKE '%' || LOWER(?) || '%'
		ORDER BY name COLLATE NOCASE, id
		LIMIT 1
	`

	item, err := scanItem(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	return item, nil
}

// FirstItemInPriceRange returns the first item, in ascending case-insensitive
// name order, whose unit price satisfies the given bounds. Either bound may
// be nil. Prices are compared as exact decimals, not floats, so a bound of
// 7.99 matches a stored 7.99. Returns ErrItemNotFound when nothing matches.
func (s *SQLiteStore) FirstItemInPriceRange(ctx context.Context, min, max *decimal.Decimal) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY name COLLATE NOCASE, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if min != nil && item.UnitPrice.Cmp(*min) < 0 {
			continue
		}
		if max != nil && item.UnitPrice.Cmp(*max) > 0 {
			continue
		}
		return item, nil
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return nil, ErrItemNotFound
}

// Seed helpers below are used by external seeding and by tests. Invoices,
// invoice lines and customers are never created through the API.

func (s *SQLiteStore) CreateMerchant(ctx context.Context, merchant *models.Merchant) error {
	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO merchants (name, created_at, updated_at) VALUES (?, ?, ?)`,
		merchant.Name, now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create merchant: %w", err)
	}

	merchant.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get merchant id: %w", err)
	}
	merchant.CreatedAt = now
	merchant.UpdatedAt = now
	return nil
}

func (s *SQLiteStore) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO customers (first_name, last_name) VALUES (?, ?)`,
		customer.FirstName, customer.LastName,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	customer.ID, err = result.LastInsertId()
	return err
}

func (s *SQLiteStore) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO invoices (customer_id, merchant_id, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		invoice.CustomerID, invoice.MerchantID, invoice.Status,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	invoice.ID, err = result.LastInsertId()
	return err
}

func (s *SQLiteStore) CreateInvoiceLine(ctx context.Context, line *models.InvoiceLine) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO invoice_lines (invoice_id, item_id, quantity, unit_price) VALUES (?, ?, ?, ?)`,
		line.InvoiceID, line.ItemID, line.Quantity, line.UnitPrice.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to create invoice line: %w", err)
	}

	line.ID, err = result.LastInsertId()
	return err
}

func (s *SQLiteStore) CountInvoices(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&count)
	return count, err
}

func (s *SQLiteStore) CountInvoiceLines(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoice_lines`).Scan(&count)
	return count, err
}

func (s *SQLiteStore) CountItems(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&count)
	return count, err
}
