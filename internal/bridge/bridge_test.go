// ABOUTME: Tests for channel message parsing and action rendering
// ABOUTME: Pure functions only - no homeserver required

package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workee/orderdesk/internal/catalog"
	"github.com/workee/orderdesk/internal/engine"
)

func TestParseEvent_Browse(t *testing.T) {
	for _, cmd := range []string{"/shop", "/catalog", "/start", "  /shop  "} {
		ev := parseEvent("@u:example.com", cmd)
		browse, ok := ev.(engine.Browse)
		require.True(t, ok, "input %q", cmd)
		assert.Equal(t, "@u:example.com", browse.UserID)
	}
}

func TestParseEvent_Order(t *testing.T) {
	ev := parseEvent("@u:example.com", "/order 2")
	sel, ok := ev.(engine.Selection)
	require.True(t, ok)
	assert.Equal(t, 1, sel.ProductIndex, "display numbering is 1-based")
}

func TestParseEvent_Order_Malformed(t *testing.T) {
	for _, cmd := range []string{"/order", "/order two", "/order 1.5"} {
		ev := parseEvent("@u:example.com", cmd)
		sel, ok := ev.(engine.Selection)
		require.True(t, ok, "input %q", cmd)
		assert.Equal(t, -1, sel.ProductIndex, "input %q must map to an invalid index", cmd)
	}
}

func TestParseEvent_Cancel(t *testing.T) {
	ev := parseEvent("@u:example.com", "/cancel")
	_, ok := ev.(engine.Cancel)
	assert.True(t, ok)
}

func TestParseEvent_Text(t *testing.T) {
	ev := parseEvent("@u:example.com", "123 Main St")
	text, ok := ev.(engine.Text)
	require.True(t, ok)
	assert.Equal(t, "123 Main St", text.Body)

	// Unknown slash commands fall through as text.
	ev = parseEvent("@u:example.com", "/help")
	_, ok = ev.(engine.Text)
	assert.True(t, ok)
}

func TestRenderCatalogPage(t *testing.T) {
	md := renderCatalogPage([]catalog.Product{
		{ID: 0, Name: "Monstera", Price: 350, Description: "Split-leaf monstera", ImageRef: "https://example.com/m.jpg"},
		{ID: 1, Name: "Snake Plant", Price: 120},
	})

	assert.Contains(t, md, "1. **Monstera**")
	assert.Contains(t, md, "350.00")
	assert.Contains(t, md, "Split-leaf monstera")
	assert.Contains(t, md, "https://example.com/m.jpg")
	assert.Contains(t, md, "/order 1")
	assert.Contains(t, md, "2. **Snake Plant**")
	assert.Contains(t, md, "/order 2")
	assert.Contains(t, md, "/cancel")
}

func TestRenderCatalogPage_Empty(t *testing.T) {
	md := renderCatalogPage(nil)
	assert.Contains(t, md, "empty")
}

func TestMarkdownToHTML(t *testing.T) {
	html := markdownToHTML("**New order**")
	assert.Contains(t, html, "<strong>New order</strong>")
}
