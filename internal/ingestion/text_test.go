package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_PreserveMarkdownHeadings(t *testing.T) {
	input := "# Title\n## Subtitle\nContent here"
	result := CleanText(input)

	assert.Contains(t, result, "# Title")
	assert.Contains(t, result, "## Subtitle")
	assert.Contains(t, result, "Content here")
}

func TestCleanText_PreserveBulletLists(t *testing.T) {
	input := "- Item 1\n- Item 2\n* Item 3"
	result := CleanText(input)

	assert.Contains(t, result, "- Item 1")
	assert.Contains(t, result, "- Item 2")
	assert.Contains(t, result, "* Item 3")
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	input := "Line    with    multiple    spaces"
	result := CleanText(input)

	assert.Contains(t, result, "Line with multiple spaces")
	assert.NotContains(t, result, "    ")
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	input := "Line 1\n\n\n\n\nLine 2"
	result := CleanText(input)

	// Should have max 2 consecutive newlines
	assert.NotContains(t, result, "\n\n\n\n")
	// But should preserve up to 2
	assert.Contains(t, result, "\n\n")
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	input := "Line 1\r\nLine 2\rLine 3\nLine 4"
	result := CleanText(input)

	assert.NotContains(t, result, "\r\n")
	assert.NotContains(t, result, "\r")
	assert.Contains(t, result, "\n")
}

func TestCleanText_DeterministicOutput(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"

	result1 := CleanText(input)
	result2 := CleanText(input)

	assert.Equal(t, result1, result2)
}

func TestCleanText_Empty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   \n\n  \t "))
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantBody  string
	}{
		{
			name:      "short first line becomes title",
			input:     "Launch your site this weekend\n\nIt takes less time than you think.",
			wantTitle: "Launch your site this weekend",
			wantBody:  "It takes less time than you think.",
		},
		{
			name:      "markdown heading prefix stripped",
			input:     "# Launch your site\n\nBody text here.",
			wantTitle: "Launch your site",
			wantBody:  "Body text here.",
		},
		{
			name:      "long first line stays in body",
			input:     "This opening sentence runs on far too long to plausibly be a headline, it reads like the first paragraph of the post itself and should stay there.\n\nSecond paragraph.",
			wantTitle: "",
		},
		{
			name:      "single line has no body to yield",
			input:     "Just one line of text",
			wantTitle: "",
			wantBody:  "Just one line of text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, body := deriveTitle(tt.input)
			assert.Equal(t, tt.wantTitle, title)
			if tt.wantBody != "" {
				assert.Contains(t, body, tt.wantBody)
			}
		})
	}
}

func TestFromText(t *testing.T) {
	blog, metadata, err := FromText("A post title\n\nFirst paragraph.\n\nSecond paragraph.", "")
	require.NoError(t, err)

	assert.Equal(t, "A post title", blog.Title)
	assert.Contains(t, blog.Text, "First paragraph.")
	assert.Contains(t, blog.Text, "Second paragraph.")
	assert.Equal(t, SourceKindText, metadata.SourceKind)
	assert.NotEmpty(t, metadata.Hash)
}

func TestFromText_Empty(t *testing.T) {
	_, _, err := FromText("   \n  ", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "post.txt")
	content := "Why small sites win\n\nA fast one-pager beats a slow brochure site."
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	blog, metadata, err := FromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Why small sites win", blog.Title)
	assert.Contains(t, blog.Text, "one-pager")
	assert.Equal(t, SourceKindFile, metadata.SourceKind)
}

func TestFromFile_NotFound(t *testing.T) {
	_, _, err := FromFile("/nonexistent/post.txt")
	assert.Error(t, err)
}

func TestWriteOutput(t *testing.T) {
	tmpDir := t.TempDir()

	blog, metadata, err := FromText("Title line\n\nBody paragraph.", "")
	require.NoError(t, err)

	require.NoError(t, WriteOutput(tmpDir, blog, metadata))

	text, err := os.ReadFile(filepath.Join(tmpDir, "blog_post.cleaned.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(text), "Title line")
	assert.Contains(t, string(text), "Body paragraph.")

	_, err = os.Stat(filepath.Join(tmpDir, "blog_post.meta.json"))
	assert.NoError(t, err)
}
