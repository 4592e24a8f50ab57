// ABOUTME: Pure validation rules for each conversation step
// ABOUTME: Total functions - any input yields accept or reject, never a panic

package engine

import (
	"strconv"
	"strings"
)

// ValidateQuantity parses raw as an order quantity. It accepts base-10
// integers strictly greater than zero and rejects everything else
// (non-numeric, zero, negative, decimal).
func ValidateQuantity(raw string) (int, bool) {
	trimmed := strings.TrimSpace(raw)
	n, err := strconv.Atoi(trimmed)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// ValidateNonEmpty trims raw and accepts it if anything remains. Used for
// the name, phone, and address steps; stricter per-field checks can slot in
// here without changing the state machine shape.
func ValidateNonEmpty(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	return trimmed, trimmed != ""
}
