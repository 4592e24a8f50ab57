// Package engine implements the order-intake conversation state machine.
//
// # Overview
//
// The engine is transport-agnostic: the channel adapter normalizes inbound
// transport messages into Browse/Selection/Text/Cancel events, and the
// engine answers with a list of outbound Actions the adapter renders back
// onto the channel.
//
// # State machine
//
// One session per user, created by a valid Selection:
//
//	(no session) --Selection--> AwaitingQuantity
//	AwaitingQuantity --integer > 0--> AwaitingName
//	AwaitingName    --non-empty-->  AwaitingPhone
//	AwaitingPhone   --non-empty-->  AwaitingAddress
//	AwaitingAddress --non-empty-->  committed (terminal, session removed)
//	any state       --Cancel-->     cancelled (terminal, session removed)
//
// Rejected input re-prompts the same state and never advances; there is no
// retry limit. A Selection while a session is live overwrites it
// (last-selection-wins). Text or Cancel with no live session is answered
// neutrally or ignored and never creates a session.
//
// # Commit ordering
//
// Completion is side-effect-then-transition: the order is appended to the
// ledger, the operator is notified, the user is told, and only then is the
// session removed. A failed append leaves the session at the address step
// so the user can retry; a failed notification does not undo a durable
// order.
package engine
