// ABOUTME: Tests for the SQLite order ledger
// ABOUTME: Verifies append-only semantics, duplicate rejection, and round-trips

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestLedger(t *testing.T) *SQLiteLedger {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "orders.db")
	l, err := NewSQLiteLedger(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func testOrder() *Order {
	return &Order{
		ID:              uuid.New().String(),
		CustomerName:    "Alice",
		CustomerPhone:   "0891234567",
		CustomerAddress: "123 Main St",
		ProductName:     "Monstera",
		Quantity:        3,
		PlacedAt:        time.Now(),
	}
}

func TestSQLiteLedger_AppendOrder(t *testing.T) {
	ledger := createTestLedger(t)
	ctx := context.Background()

	order := testOrder()
	receipt, err := ledger.AppendOrder(ctx, order)
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, order.ID, receipt.OrderID)
}

func TestSQLiteLedger_AppendOrder_Duplicate(t *testing.T) {
	ledger := createTestLedger(t)
	ctx := context.Background()

	order := testOrder()
	_, err := ledger.AppendOrder(ctx, order)
	require.NoError(t, err)

	_, err = ledger.AppendOrder(ctx, order)
	assert.ErrorIs(t, err, ErrDuplicateOrder)

	// The duplicate attempt must not have produced a second row.
	orders, err := ledger.ListOrders(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestSQLiteLedger_RoundTrip(t *testing.T) {
	ledger := createTestLedger(t)
	ctx := context.Background()

	order := testOrder()
	_, err := ledger.AppendOrder(ctx, order)
	require.NoError(t, err)

	orders, err := ledger.ListOrders(ctx, 10)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	got := orders[0]
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, "Alice", got.CustomerName)
	assert.Equal(t, "0891234567", got.CustomerPhone)
	assert.Equal(t, "123 Main St", got.CustomerAddress)
	assert.Equal(t, "Monstera", got.ProductName)
	assert.Equal(t, 3, got.Quantity)
	assert.WithinDuration(t, order.PlacedAt, got.PlacedAt, time.Second)
}

func TestSQLiteLedger_ListOrders_NewestFirst(t *testing.T) {
	ledger := createTestLedger(t)
	ctx := context.Background()

	first := testOrder()
	first.ProductName = "Snake Plant"
	first.PlacedAt = time.Now().Add(-time.Hour)
	second := testOrder()
	second.ProductName = "Monstera"

	_, err := ledger.AppendOrder(ctx, first)
	require.NoError(t, err)
	_, err = ledger.AppendOrder(ctx, second)
	require.NoError(t, err)

	orders, err := ledger.ListOrders(ctx, 10)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Monstera", orders[0].ProductName)
	assert.Equal(t, "Snake Plant", orders[1].ProductName)
}

func TestSQLiteLedger_RejectsNonPositiveQuantity(t *testing.T) {
	ledger := createTestLedger(t)
	ctx := context.Background()

	order := testOrder()
	order.Quantity = 0
	_, err := ledger.AppendOrder(ctx, order)
	assert.Error(t, err)
}

func TestSQLiteLedger_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "orders.db")
	ledger, err := NewSQLiteLedger(dbPath)
	require.NoError(t, err)

	order := testOrder()
	_, err = ledger.AppendOrder(context.Background(), order)
	require.NoError(t, err)
	require.NoError(t, ledger.Close())

	reopened, err := NewSQLiteLedger(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	orders, err := reopened.ListOrders(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}
