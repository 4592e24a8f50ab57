// ABOUTME: Renders engine actions into Matrix message content
// ABOUTME: Catalog pages and summaries are Markdown, converted to HTML via goldmark

package bridge

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/workee/orderdesk/internal/catalog"
)

// renderCatalogPage builds the Markdown product listing shown to users.
// Products are numbered from 1 to match the /order command.
func renderCatalogPage(products []catalog.Product) string {
	if len(products) == 0 {
		return "The shop is empty right now, check back later."
	}

	var b strings.Builder
	b.WriteString("**Catalog**\n\n")
	for i, p := range products {
		fmt.Fprintf(&b, "%d. **%s** (%.2f ฿)\n", i+1, p.Name, p.Price)
		if p.Description != "" {
			fmt.Fprintf(&b, "   %s\n", p.Description)
		}
		if p.ImageRef != "" {
			fmt.Fprintf(&b, "   [photo](%s)\n", p.ImageRef)
		}
		fmt.Fprintf(&b, "   Order with `/order %d`\n\n", i+1)
	}
	b.WriteString("Cancel anytime with `/cancel`.")
	return b.String()
}

// markdownToHTML converts Markdown to the HTML body used for formatted
// Matrix messages. On a render failure the raw text is returned so the
// message still goes out.
func markdownToHTML(md string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return md
	}
	return strings.TrimSpace(buf.String())
}
