package assembly

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText_StripsMarkup(t *testing.T) {
	html := `<html><body>
<h1>Launch this weekend</h1>
<p>It takes <strong>one afternoon</strong>.</p>
<a href="https://sitesmith.io/builder">Start building</a>
</body></html>`

	text := PlainText(html)

	assert.Contains(t, text, "Launch this weekend")
	assert.Contains(t, text, "It takes one afternoon.")
	assert.NotContains(t, text, "<")
	assert.NotContains(t, text, "https://sitesmith.io/builder")
}

func TestPlainText_DropsImagesAndStyles(t *testing.T) {
	html := `<html><head><style>p { color: red; }</style></head><body>
<p>Visible copy</p>
<img src="https://cdn.example.com/logo.png" alt="logo">
<script>var x = 1;</script>
</body></html>`

	text := PlainText(html)

	assert.Contains(t, text, "Visible copy")
	assert.NotContains(t, text, "logo.png")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "var x")
}

func TestPlainText_BlocksSeparatedByBlankLines(t *testing.T) {
	html := `<html><body><p>First</p><p>Second</p></body></html>`

	text := PlainText(html)

	assert.Equal(t, "First\n\nSecond", text)
}

func TestPlainText_TableLayout(t *testing.T) {
	html := `<html><body><table><tr><td><p>Cell copy</p></td></tr></table></body></html>`

	text := PlainText(html)

	assert.Equal(t, "Cell copy", text)
}

func TestPlainText_Deterministic(t *testing.T) {
	html := `<html><body><h1>Title</h1><p>Body</p></body></html>`

	assert.Equal(t, PlainText(html), PlainText(html))
}

func TestPlainText_NoBlocks_FallsBackToBodyText(t *testing.T) {
	html := `<html><body><span>Inline only</span></body></html>`

	text := PlainText(html)

	assert.Equal(t, "Inline only", text)
}
