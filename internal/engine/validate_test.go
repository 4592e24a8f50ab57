// ABOUTME: Tests for the pure per-step validation rules
// ABOUTME: Quantity accepts exactly the base-10 integers greater than zero

package engine

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateQuantity_PositiveIntegers(t *testing.T) {
	// Every non-negative integer rendered as a string is accepted iff > 0.
	for q := 0; q <= 100; q++ {
		n, ok := ValidateQuantity(strconv.Itoa(q))
		if q > 0 {
			assert.True(t, ok, "quantity %d should be accepted", q)
			assert.Equal(t, q, n)
		} else {
			assert.False(t, ok, "quantity %d should be rejected", q)
		}
	}
}

func TestValidateQuantity_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"negative", "-5"},
		{"zero", "0"},
		{"decimal", "1.5"},
		{"non-numeric", "three"},
		{"mixed", "3 plants"},
		{"overflow-ish garbage", "99999999999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ValidateQuantity(tt.input)
			assert.False(t, ok)
		})
	}
}

func TestValidateQuantity_TrimsWhitespace(t *testing.T) {
	n, ok := ValidateQuantity("  3 ")
	assert.True(t, ok)
	assert.Equal(t, 3, n)
}

func TestValidateNonEmpty(t *testing.T) {
	got, ok := ValidateNonEmpty("  Alice ")
	assert.True(t, ok)
	assert.Equal(t, "Alice", got)

	_, ok = ValidateNonEmpty("   ")
	assert.False(t, ok)

	_, ok = ValidateNonEmpty("")
	assert.False(t, ok)
}
