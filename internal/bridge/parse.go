// ABOUTME: Parses raw channel messages into abstract engine events
// ABOUTME: Commands use the catalog's 1-based display numbering; the engine is 0-based

package bridge

import (
	"strconv"
	"strings"

	"github.com/workee/orderdesk/internal/engine"
)

// parseEvent normalizes a message body into an engine event. Unrecognized
// command-like input falls through as Text so the current step's validation
// can reject it with a useful message.
func parseEvent(userID, body string) engine.Event {
	trimmed := strings.TrimSpace(body)

	switch {
	case trimmed == "/shop", trimmed == "/catalog", trimmed == "/start":
		return engine.Browse{UserID: userID}

	case trimmed == "/cancel":
		return engine.Cancel{UserID: userID}

	case strings.HasPrefix(trimmed, "/order"):
		arg := strings.TrimSpace(strings.TrimPrefix(trimmed, "/order"))
		n, err := strconv.Atoi(arg)
		if err != nil {
			// Malformed index: the engine rejects it like any other
			// out-of-range selection.
			return engine.Selection{UserID: userID, ProductIndex: -1}
		}
		return engine.Selection{UserID: userID, ProductIndex: n - 1}

	default:
		return engine.Text{UserID: userID, Body: body}
	}
}
