package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the SQLite database and initializes the schema. Foreign keys are
// enforced; the cascading item delete relies on them staying consistent.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// initSchema creates the database schema
func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS merchants (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		CHECK(length(name) > 0)
	);

	CREATE TABLE IF NOT EXISTS customers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		unit_price TEXT NOT NULL,
		merchant_id INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (merchant_id) REFERENCES merchants(id),
		CHECK(length(name) > 0),
		CHECK(length(description) > 0)
	);

	CREATE TABLE IF NOT EXISTS invoices (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		customer_id INTEGER NOT NULL,
		merchant_id INTEGER NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (customer_id) REFERENCES customers(id),
		FOREIGN KEY (merchant_id) REFERENCES merchants(id),
		CHECK(status IN ('shipped', 'cancelled', 'in_progress'))
	);

	CREATE TABLE IF NOT EXISTS invoice_lines (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		invoice_id INTEGER NOT NULL,
		item_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		unit_price TEXT NOT NULL,
		FOREIGN KEY (invoice_id) REFERENCES invoices(id),
		FOREIGN KEY (item_id) REFERENCES items(id),
		CHECK(quantity > 0)
	);

	CREATE INDEX IF NOT EXISTS idx_items_merchant_id ON items(merchant_id);
	CREATE INDEX IF NOT EXISTS idx_items_name ON items(name COLLATE NOCASE);
	CREATE INDEX IF NOT EXISTS idx_invoices_merchant_id ON invoices(merchant_id);
	CREATE INDEX IF NOT EXISTS idx_invoice_lines_invoice_id ON invoice_lines(invoice_id);
	CREATE INDEX IF NOT EXISTS idx_invoice_lines_item_id ON invoice_lines(item_id);
	`

	_, err := db.Exec(schema)
	return err
}
