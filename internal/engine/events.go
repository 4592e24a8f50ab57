// ABOUTME: Abstract inbound events and outbound actions for the conversation engine
// ABOUTME: The channel adapter normalizes transport messages to these types and back

package engine

import "github.com/workee/orderdesk/internal/catalog"

// Event is an inbound event normalized by the channel adapter.
type Event interface {
	// User returns the stable channel identity the event belongs to.
	User() string
}

// Browse asks for the current catalog page.
type Browse struct {
	UserID string
}

// Selection picks a product by its ordinal index in the catalog snapshot,
// starting (or restarting) an order conversation.
type Selection struct {
	UserID       string
	ProductIndex int
}

// Text is a free-form reply to whatever the current prompt is.
type Text struct {
	UserID string
	Body   string
}

// Cancel aborts the in-progress conversation, if any.
type Cancel struct {
	UserID string
}

func (e Browse) User() string    { return e.UserID }
func (e Selection) User() string { return e.UserID }
func (e Text) User() string      { return e.UserID }
func (e Cancel) User() string    { return e.UserID }

// ActionKind identifies the kind of outbound action.
type ActionKind string

const (
	// ActionPrompt asks the user for the next piece of order information.
	ActionPrompt ActionKind = "prompt"

	// ActionValidationError tells the user their input was rejected and
	// re-states the expected format. The conversation does not advance.
	ActionValidationError ActionKind = "validation_error"

	// ActionOrderConfirmed tells the user their order was durably recorded.
	ActionOrderConfirmed ActionKind = "order_confirmed"

	// ActionOrderCancelled acknowledges a cancellation.
	ActionOrderCancelled ActionKind = "order_cancelled"

	// ActionCatalogPage carries the product listing for rendering.
	ActionCatalogPage ActionKind = "catalog_page"

	// ActionNotice is a neutral reply: stale events, catalog unavailable,
	// or a retryable commit failure.
	ActionNotice ActionKind = "notice"
)

// Action is an outbound instruction for the channel adapter.
type Action struct {
	Kind     ActionKind
	UserID   string
	Text     string
	Products []catalog.Product // set for ActionCatalogPage
}
