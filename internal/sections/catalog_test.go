package sections

import (
	"testing"

	"github.com/sitesmith/email-composer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ContainsStructuralSections(t *testing.T) {
	ids := IDs()
	assert.Contains(t, ids, types.SectionHero)
	assert.Contains(t, ids, types.SectionSignature)
	assert.Contains(t, ids, types.SectionFooter)
	assert.Equal(t, types.SectionHero, ids[0], "hero is always described first")
}

func TestLookup(t *testing.T) {
	entry, ok := Lookup(types.SectionSummaryCards)
	require.True(t, ok)
	assert.Equal(t, CategoryEducational, entry.Category)
	assert.True(t, entry.Dynamic)

	_, ok = Lookup("no-such-section")
	assert.False(t, ok)
}

func TestIsDynamic(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"hero is dynamic", types.SectionHero, true},
		{"simple-body is dynamic", types.SectionSimpleBody, true},
		{"six-summary-cards is dynamic", types.SectionSummaryCards, true},
		{"footer is static", types.SectionFooter, false},
		{"testimonial is static", types.SectionTestimonial, false},
		{"unknown id is not dynamic", "mystery", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDynamic(tt.id))
		})
	}
}

func TestPromptText_OnlyListsAvailableSections(t *testing.T) {
	text := PromptText([]string{types.SectionHero, types.SectionFooter})

	assert.Contains(t, text, "- hero (General):")
	assert.Contains(t, text, "- footer (General):")
	assert.NotContains(t, text, "six-summary-cards")
	assert.NotContains(t, text, "testimonial")
}
