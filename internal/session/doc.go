// Package session is the working memory of the conversation engine.
//
// # Store
//
// The Store keeps at most one live Session per user identity and provides
// the concurrency discipline the engine relies on:
//
//   - Do(userID, fn): fn runs with exclusive access to that user's session,
//     so one inbound event is fully processed (including any ledger or
//     notification I/O) before the next event for the same user is applied.
//   - Distinct users never block each other.
//
// # Expiry
//
// A session idle past the configured TTL is treated as cancelled: Do hides
// it from callers and a janitor goroutine evicts it. Sessions live only in
// memory; on restart an in-flight conversation simply starts over, which is
// acceptable data loss — a corrupted or duplicated order is not.
package session
