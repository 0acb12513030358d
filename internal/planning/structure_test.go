package planning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitesmith/email-composer/internal/llm"
	"github.com/sitesmith/email-composer/internal/sections"
	"github.com/sitesmith/email-composer/internal/types"
)

const validStructureJSON = `{
	"sequence": ["hero", "simple_body", "book_a_call", "signature", "footer"],
	"email_goal": "book consultation calls",
	"use_summary_cards": false,
	"reasoning": "The post is a service announcement; a booking ask fits."
}`

func TestDecodeStructure_ValidOutput(t *testing.T) {
	dec, warnings, err := DecodeStructure(validStructureJSON, sections.IDs())
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, types.SectionHero, dec.Sequence[0])
	assert.Equal(t, types.SectionFooter, dec.Sequence[len(dec.Sequence)-1])
	assert.Contains(t, dec.Sequence, types.SectionBookACall)
	assert.Equal(t, "book consultation calls", dec.EmailGoal)
}

func TestDecodeStructure_NotJSON(t *testing.T) {
	_, _, err := DecodeStructure("section order: hero then footer", sections.IDs())
	require.Error(t, err)

	var malformed *MalformedOutputError
	assert.ErrorAs(t, err, &malformed)
}

func TestDecodeStructure_MissingFields(t *testing.T) {
	_, _, err := DecodeStructure(`{"sequence": ["hero"]}`, sections.IDs())
	require.Error(t, err)

	var malformed *MalformedOutputError
	assert.ErrorAs(t, err, &malformed)
}

func TestDecodeStructure_OrderingCorrected(t *testing.T) {
	raw := `{
		"sequence": ["footer", "simple_body", "hero"],
		"email_goal": "educate",
		"use_summary_cards": false,
		"reasoning": ""
	}`
	dec, warnings, err := DecodeStructure(raw, sections.IDs())
	require.NoError(t, err)

	assert.NotEmpty(t, warnings)
	assert.Equal(t, []string{types.SectionHero, types.SectionSimpleBody, types.SectionSignature, types.SectionFooter}, dec.Sequence)
}

func TestGenerateStructure_UsesStandardTier(t *testing.T) {
	client := &stubClient{response: validStructureJSON}

	dec, _, err := GenerateStructure(context.Background(), client, testInput())
	require.NoError(t, err)
	assert.Equal(t, "book consultation calls", dec.EmailGoal)

	require.Len(t, client.tiers, 1)
	assert.Equal(t, llm.TierStandard, client.tiers[0])

	// The prompt carries the post and the catalog
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Launch Week Recap")
	assert.Contains(t, client.prompts[0], "hero")
}

func TestGenerateStructure_ProviderErrorPassedThrough(t *testing.T) {
	client := &stubClient{err: assert.AnError}

	_, _, err := GenerateStructure(context.Background(), client, testInput())
	assert.ErrorIs(t, err, assert.AnError)
}
