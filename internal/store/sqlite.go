// ABOUTME: SQLite implementation of the order Ledger using modernc.org/sqlite
// ABOUTME: Orders are append-only rows with automatic schema creation on open

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteLedger implements the Ledger interface using SQLite
type SQLiteLedger struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteLedger creates a new SQLite ledger at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteLedger(path string) (*SQLiteLedger, error) {
	logger := slog.Default().With("component", "ledger")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	l := &SQLiteLedger{
		db:     db,
		logger: logger,
	}

	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite ledger initialized", "path", path)
	return l, nil
}

// createSchema creates the orders table if it doesn't exist.
// Column order matches the historical ledger row layout
// (name, phone, address, product, quantity) consumed by downstream tooling.
func (l *SQLiteLedger) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			customer_name TEXT NOT NULL,
			customer_phone TEXT NOT NULL,
			customer_address TEXT NOT NULL,
			product_name TEXT NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			placed_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_orders_placed_at ON orders(placed_at);
	`

	_, err := l.db.Exec(schema)
	return err
}

// Close closes the database connection
func (l *SQLiteLedger) Close() error {
	l.logger.Info("closing SQLite ledger")
	return l.db.Close()
}

// AppendOrder durably appends an order to the ledger.
// It returns ErrDuplicateOrder if an order with the same ID already exists.
// A Receipt is only returned once the row is committed.
func (l *SQLiteLedger) AppendOrder(ctx context.Context, order *Order) (*Receipt, error) {
	query := `
		INSERT INTO orders (id, customer_name, customer_phone, customer_address, product_name, quantity, placed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := l.db.ExecContext(ctx, query,
		order.ID,
		order.CustomerName,
		order.CustomerPhone,
		order.CustomerAddress,
		order.ProductName,
		order.Quantity,
		order.PlacedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return nil, ErrDuplicateOrder
		}
		return nil, fmt.Errorf("inserting order: %w", err)
	}

	seq, err := result.LastInsertId()
	if err != nil {
		// The row is committed; a missing sequence number is not a failure.
		seq = 0
	}

	l.logger.Debug("order appended", "id", order.ID, "product", order.ProductName, "quantity", order.Quantity)
	return &Receipt{OrderID: order.ID, Seq: seq}, nil
}

// ListOrders returns the most recent orders, newest first.
func (l *SQLiteLedger) ListOrders(ctx context.Context, limit int) ([]*Order, error) {
	query := `
		SELECT id, customer_name, customer_phone, customer_address, product_name, quantity, placed_at
		FROM orders
		ORDER BY placed_at DESC, rowid DESC
		LIMIT ?
	`

	rows, err := l.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var order Order
		var placedAtStr string

		if err := rows.Scan(
			&order.ID,
			&order.CustomerName,
			&order.CustomerPhone,
			&order.CustomerAddress,
			&order.ProductName,
			&order.Quantity,
			&placedAtStr,
		); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}

		order.PlacedAt, err = time.Parse(time.RFC3339, placedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing placed_at: %w", err)
		}

		orders = append(orders, &order)
	}

	return orders, rows.Err()
}

// isConstraintViolation checks if the error is a SQLite UNIQUE constraint violation
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "constraint failed")
}
