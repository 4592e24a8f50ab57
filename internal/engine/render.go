// ABOUTME: User-facing prompt text and the operator order summary
// ABOUTME: Kept in the engine so the channel adapter stays a dumb transport

package engine

import (
	"fmt"

	"github.com/workee/orderdesk/internal/catalog"
	"github.com/workee/orderdesk/internal/store"
)

func promptQuantity(p catalog.Product) string {
	return fmt.Sprintf("**%s** it is! How many units would you like? Reply with a number.", p.Name)
}

const (
	promptName    = "What's your name?"
	promptPhone   = "What's your phone number?"
	promptAddress = "What's your delivery address?"

	rejectQuantity = "Please enter a whole number greater than 0."
	rejectName     = "Please tell me your name."
	rejectPhone    = "Please send a phone number."
	rejectAddress  = "Please send a delivery address."

	confirmedText = "Thanks! Your order has been placed."
	cancelledText = "Order cancelled."

	noticeNothingInProgress = "There's no order in progress. Send /shop to browse the catalog."
	noticeCatalogDown       = "The catalog is unavailable right now, please try again later."
	noticeLedgerRetry       = "Sorry, your order couldn't be saved just now. Please send your address again."
	noticeBadSelection      = "That item isn't available. Send /shop to see the catalog."
)

// renderOperatorSummary builds the human-readable order summary delivered to
// the operator channel.
func renderOperatorSummary(order *store.Order) string {
	return fmt.Sprintf(
		"**New order**\n\nName: %s\nPhone: %s\nAddress: %s\nProduct: **%s**\nQuantity: %d",
		order.CustomerName,
		order.CustomerPhone,
		order.CustomerAddress,
		order.ProductName,
		order.Quantity,
	)
}
