// Package store provides the durable order ledger.
//
// The ledger is strictly append-only: a committed order is never updated or
// deleted by this system. AppendOrder returns a Receipt only after the row is
// durably recorded, which is what lets the conversation engine treat
// "ledger append succeeded" as the point of no return for an order.
package store
