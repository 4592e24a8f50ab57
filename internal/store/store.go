// ABOUTME: Ledger interface and data types for orderdesk persistence
// ABOUTME: Defines the write-once Order record and the append-only Ledger contract

package store

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateOrder is returned when an order with the same ID has already
// been appended to the ledger.
var ErrDuplicateOrder = errors.New("order already exists")

// Order is a finalized order. It is written exactly once on a successful
// commit and never mutated or deleted afterwards.
type Order struct {
	ID              string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	ProductName     string
	Quantity        int
	PlacedAt        time.Time
}

// Receipt is the ledger's acknowledgment of a durable append.
type Receipt struct {
	OrderID string
	Seq     int64
}

// Ledger is the durable append-only store of committed orders.
// AppendOrder must only return a Receipt once the order is durably recorded.
type Ledger interface {
	AppendOrder(ctx context.Context, order *Order) (*Receipt, error)
	ListOrders(ctx context.Context, limit int) ([]*Order, error)
	Close() error
}
