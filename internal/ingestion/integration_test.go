package ingestion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndToEnd_TextFile(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "post.txt")
	testContent := "# Launch your site this weekend\n\n## Why it works\n- One page is enough\n- Templates do the layout"
	err := os.WriteFile(testFile, []byte(testContent), 0644)
	require.NoError(t, err)

	blog, metadata, err := FromFile(testFile)
	require.NoError(t, err)

	assert.Equal(t, "Launch your site this weekend", blog.Title)
	assert.Contains(t, blog.Text, "Why it works")
	assert.Contains(t, blog.Text, "- One page is enough")
	assert.NotNil(t, metadata)
	assert.NotEmpty(t, metadata.Timestamp)
	assert.NotEmpty(t, metadata.Hash)
	assert.Equal(t, SourceKindFile, metadata.SourceKind)
}

func TestEndToEnd_URL_MockServer(t *testing.T) {
	htmlContent := `<!DOCTYPE html>
<html>
<head><title>Launch your site this weekend | Sitesmith Blog</title></head>
<body>
<nav>Nav</nav>
<main>
<article>
<h1>Launch your site this weekend</h1>
<h2>Why it works</h2>
<ul>
<li>One page is enough</li>
<li>Templates do the layout</li>
</ul>
</article>
</main>
<footer>Footer</footer>
</body>
</html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(htmlContent))
	}))
	defer server.Close()

	blog, metadata, err := FromURL(context.Background(), server.URL, nil)
	require.NoError(t, err)

	assert.Equal(t, "Launch your site this weekend", blog.Title)
	assert.Contains(t, blog.Text, "Why it works")
	assert.NotContains(t, blog.Text, "Nav")
	assert.NotContains(t, blog.Text, "Footer")
	assert.NotNil(t, metadata)
	assert.Equal(t, server.URL, metadata.URL)
}

func TestMetadata_ValidJSON(t *testing.T) {
	metadata := NewMetadata("Test content", "https://blog.example.com/post", SourceKindURL)

	metaJSON, err := metadata.ToJSON()
	require.NoError(t, err)

	var unmarshaled Metadata
	err = json.Unmarshal(metaJSON, &unmarshaled)
	require.NoError(t, err)
	assert.Equal(t, metadata.URL, unmarshaled.URL)
	assert.Equal(t, metadata.Timestamp, unmarshaled.Timestamp)
	assert.Equal(t, metadata.Hash, unmarshaled.Hash)
}
