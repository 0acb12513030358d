package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		want    string
	}{
		{"simple", "Launch this weekend", "launch-this-weekend"},
		{"punctuation collapses", "Don't wait -- start now!", "don-t-wait-start-now"},
		{"leading and trailing junk trimmed", "  ...Big news...  ", "big-news"},
		{"unicode drops to hyphens", "Café ☕ time", "caf-time"},
		{"digits kept", "3 steps to launch", "3-steps-to-launch"},
		{"empty yields fallback", "", "email"},
		{"only punctuation yields fallback", "!!!", "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.subject))
		})
	}
}

func TestSlug_Capped(t *testing.T) {
	subject := strings.Repeat("very long subject ", 10)
	slug := Slug(subject)

	assert.LessOrEqual(t, len(slug), 60)
	assert.False(t, strings.HasSuffix(slug, "-"))
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	result, err := Write(dir, "Launch this weekend", start, "<html>hi</html>", "hi")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "launch-this-weekend-20260314-092653.html"), result.HTMLPath)
	assert.Equal(t, filepath.Join(dir, "launch-this-weekend-20260314-092653.txt"), result.TextPath)

	html, err := os.ReadFile(result.HTMLPath)
	require.NoError(t, err)
	assert.Equal(t, "<html>hi</html>", string(html))

	text, err := os.ReadFile(result.TextPath)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(text))
}

func TestWrite_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	_, err := Write(dir, "Subject", time.Now(), "<html></html>", "")
	require.NoError(t, err)

	_, err = os.Stat(dir)
	assert.NoError(t, err)
}

func TestWrite_TimestampIsUTC(t *testing.T) {
	dir := t.TempDir()
	// A zone ahead of UTC must not leak local time into the name
	loc := time.FixedZone("ahead", 5*3600)
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, loc)

	result, err := Write(dir, "subject", start, "x", "y")
	require.NoError(t, err)

	assert.Contains(t, result.HTMLPath, "20260314-040000")
}
