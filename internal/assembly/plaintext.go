package assembly

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelectors are the elements treated as paragraph-level units when
// flattening HTML to text.
const blockSelectors = "h1, h2, h3, h4, h5, h6, p, li, blockquote, td"

// PlainText flattens assembled email HTML into a readable text rendering.
// Markup, images and link targets are discarded; only visible copy survives.
// Deterministic and one-way.
func PlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}

	doc.Find("script, style, head, img").Remove()

	var lines []string
	doc.Find(blockSelectors).Each(func(_ int, sel *goquery.Selection) {
		// Nested blocks (a td holding a p) would duplicate text; keep only
		// the innermost block elements.
		if sel.Find(blockSelectors).Length() > 0 {
			return
		}
		text := collapseWhitespace(sel.Text())
		if text != "" {
			lines = append(lines, text)
		}
	})

	if len(lines) == 0 {
		return collapseWhitespace(doc.Find("body").Text())
	}

	return strings.Join(lines, "\n\n")
}

// collapseWhitespace squeezes runs of whitespace into single spaces.
func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
