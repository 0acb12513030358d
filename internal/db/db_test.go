package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestArtifactStepConstants(t *testing.T) {
	// Verify step constants are defined
	steps := []string{
		StepBlogContent,
		StepContentMetadata,
		StepStructureDecision,
		StepRawPlan,
		StepEmailPlan,
		StepEmailHTML,
		StepEmailText,
	}

	for _, step := range steps {
		assert.NotEmpty(t, step, "step constant should not be empty")
	}
}

func TestRunType(t *testing.T) {
	// Verify Run struct can be instantiated
	run := Run{
		Title:     "How to launch a site in a weekend",
		SourceURL: "https://example.com/post",
		Status:    "running",
	}

	assert.Equal(t, "How to launch a site in a weekend", run.Title)
	assert.Equal(t, "https://example.com/post", run.SourceURL)
	assert.Equal(t, "running", run.Status)
	assert.Nil(t, run.CompletedAt)
}

func TestFetchedPageFreshness(t *testing.T) {
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	fresh := FetchedPage{ExpiresAt: &future}
	assert.True(t, fresh.IsFresh())
	assert.False(t, fresh.IsExpired())

	expired := FetchedPage{ExpiresAt: &past}
	assert.False(t, expired.IsFresh())
	assert.True(t, expired.IsExpired())

	// No expiry means always stale
	noExpiry := FetchedPage{}
	assert.True(t, noExpiry.IsExpired())
}

func TestHashPageContent(t *testing.T) {
	h1 := HashPageContent("<html>a</html>")
	h2 := HashPageContent("<html>a</html>")
	h3 := HashPageContent("<html>b</html>")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)
}
