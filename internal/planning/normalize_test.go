package planning

import (
	"encoding/json"
	"testing"

	"github.com/sitesmith/email-composer/internal/sections"
	"github.com/sitesmith/email-composer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allSections() []string {
	return sections.IDs()
}

func sixCards() []types.SummaryCard {
	return []types.SummaryCard{
		{Title: "One", Description: "First point", Emoji: "1️⃣"},
		{Title: "Two", Description: "Second point", Emoji: "2️⃣"},
		{Title: "Three", Description: "Third point", Emoji: "3️⃣"},
		{Title: "Four", Description: "Fourth point", Emoji: "4️⃣"},
		{Title: "Five", Description: "Fifth point", Emoji: "5️⃣"},
		{Title: "Six", Description: "Sixth point", Emoji: "6️⃣"},
	}
}

func TestCanonicalID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple_body maps to hyphen form", "simple_body", "simple-body"},
		{"six_summary_cards maps to hyphen form", "six_summary_cards", "six-summary-cards"},
		{"book_a_call maps to hyphen form", "book_a_call", "book-a-call"},
		{"selling points maps to hyphen form", "selling_points_what_you_get", "selling-points-what-you-get"},
		{"already canonical id passes through", "simple-body", "simple-body"},
		{"single-word id passes through", "hero", "hero"},
		{"unknown key passes through", "mystery_section", "mystery_section"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalID(tt.in))
		})
	}
}

func TestNormalizePlan_ValidPlanUnchanged(t *testing.T) {
	slots := types.SlotMap{}
	require.NoError(t, slots.Set(types.SectionHero, types.HeroSlot{Title: "T", Subtitle: "S", CTAText: "Go", CTAURL: "https://sitesmith.io"}))
	require.NoError(t, slots.Set(types.SectionSimpleBody, []types.BodyBlock{{HTML: "<p>a</p>"}}))
	require.NoError(t, slots.Set(types.SectionSummaryCards, sixCards()))
	slots[types.SectionBookACall] = json.RawMessage("{}")
	slots[types.SectionContact] = json.RawMessage("{}")
	slots[types.SectionSignature] = json.RawMessage("{}")
	slots[types.SectionFooter] = json.RawMessage("{}")

	plan := &types.EmailPlan{
		Subject:  "Subject",
		Preview:  "Preview",
		Sequence: []string{"hero", "simple-body", "six-summary-cards", "signature", "footer"},
		Slots:    slots,
	}

	before, err := json.Marshal(plan)
	require.NoError(t, err)

	warnings := NormalizePlan(plan, allSections())

	after, err := json.Marshal(plan)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after), "an already-valid plan must come back unchanged")
	assert.Empty(t, warnings)
}

func TestNormalizePlan_HeroAlwaysFirst(t *testing.T) {
	tests := []struct {
		name     string
		sequence []string
	}{
		{"hero last", []string{"footer", "simple-body", "hero"}},
		{"hero in the middle", []string{"simple-body", "hero", "footer"}},
		{"hero missing", []string{"simple-body", "footer"}},
		{"hero duplicated", []string{"hero", "simple-body", "hero", "footer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &types.EmailPlan{
				Subject:  "S",
				Preview:  "P",
				Sequence: tt.sequence,
				Slots:    types.SlotMap{},
			}

			NormalizePlan(plan, allSections())

			require.NotEmpty(t, plan.Sequence)
			assert.Equal(t, types.SectionHero, plan.Sequence[0])
			assert.Equal(t, 1, countID(plan.Sequence, types.SectionHero), "exactly one hero")
		})
	}
}

func TestNormalizePlan_FooterLastSignatureBeforeFooter(t *testing.T) {
	permutations := [][]string{
		{"hero", "simple-body", "signature", "footer"},
		{"footer", "signature", "simple-body", "hero"},
		{"signature", "footer", "hero", "simple-body"},
		{"simple-body", "footer", "signature", "hero"},
		{"footer", "hero", "simple-body"},
		{"hero", "simple-body"},
	}

	for _, seq := range permutations {
		plan := &types.EmailPlan{
			Subject:  "S",
			Preview:  "P",
			Sequence: append([]string{}, seq...),
			Slots:    types.SlotMap{},
		}

		NormalizePlan(plan, allSections())

		last := len(plan.Sequence) - 1
		assert.Equal(t, types.SectionFooter, plan.Sequence[last], "input %v", seq)

		sigIdx := indexID(plan.Sequence, types.SectionSignature)
		require.GreaterOrEqual(t, sigIdx, 0, "signature present, input %v", seq)
		assert.Less(t, sigIdx, last, "signature strictly before footer, input %v", seq)
	}
}

func TestNormalizePlan_SignatureKeepsItsPlace(t *testing.T) {
	plan := &types.EmailPlan{
		Subject:  "S",
		Preview:  "P",
		Sequence: []string{"hero", "signature", "simple-body", "footer"},
		Slots:    types.SlotMap{},
	}

	warnings := NormalizePlan(plan, allSections())

	assert.Equal(t, []string{"hero", "signature", "simple-body", "footer"}, plan.Sequence,
		"a signature already before the footer is not moved")
	assert.Empty(t, warnings)
}

func TestNormalizePlan_SummaryCardsPlacement(t *testing.T) {
	tests := []struct {
		name     string
		sequence []string
		cards    []types.SummaryCard
		want     []string
	}{
		{
			name:     "wanted cards move immediately after simple-body",
			sequence: []string{"six-summary-cards", "hero", "simple-body", "footer"},
			cards:    sixCards(),
			want:     []string{"hero", "simple-body", "six-summary-cards", "signature", "footer"},
		},
		{
			name:     "wanted but absent cards are inserted",
			sequence: []string{"hero", "simple-body", "footer"},
			cards:    sixCards(),
			want:     []string{"hero", "simple-body", "six-summary-cards", "signature", "footer"},
		},
		{
			name:     "empty payload removes the section",
			sequence: []string{"hero", "simple-body", "six-summary-cards", "footer"},
			cards:    nil,
			want:     []string{"hero", "simple-body", "signature", "footer"},
		},
		{
			name:     "no simple-body anchor leaves the sequence alone",
			sequence: []string{"hero", "six-summary-cards", "testimonial", "footer"},
			cards:    sixCards(),
			want:     []string{"hero", "six-summary-cards", "testimonial", "signature", "footer"},
		},
		{
			name:     "already placed correctly stays put",
			sequence: []string{"hero", "simple-body", "six-summary-cards", "signature", "footer"},
			cards:    sixCards(),
			want:     []string{"hero", "simple-body", "six-summary-cards", "signature", "footer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := types.SlotMap{}
			if tt.cards != nil {
				require.NoError(t, slots.Set(types.SectionSummaryCards, tt.cards))
			} else {
				slots[types.SectionSummaryCards] = json.RawMessage("[]")
			}

			plan := &types.EmailPlan{
				Subject:  "S",
				Preview:  "P",
				Sequence: tt.sequence,
				Slots:    slots,
			}

			NormalizePlan(plan, allSections())
			assert.Equal(t, tt.want, plan.Sequence)
		})
	}
}

func TestNormalizePlan_UnknownSectionsDropped(t *testing.T) {
	plan := &types.EmailPlan{
		Subject:  "S",
		Preview:  "P",
		Sequence: []string{"hero", "hallucinated-section", "simple-body", "footer"},
		Slots:    types.SlotMap{},
	}

	NormalizePlan(plan, allSections())

	assert.NotContains(t, plan.Sequence, "hallucinated-section")
	assert.Contains(t, plan.Sequence, types.SectionSimpleBody)
}

func TestNormalizePlan_UnavailableSectionsDropped(t *testing.T) {
	available := []string{"hero", "simple-body", "signature", "footer"}
	plan := &types.EmailPlan{
		Subject:  "S",
		Preview:  "P",
		Sequence: []string{"hero", "testimonial", "simple-body", "footer"},
		Slots:    types.SlotMap{},
	}

	NormalizePlan(plan, available)

	assert.NotContains(t, plan.Sequence, "testimonial", "sections without a template are dropped")
}

func TestNormalizePlan_SlotDefaulting(t *testing.T) {
	plan := &types.EmailPlan{
		Subject:  "S",
		Preview:  "P",
		Sequence: []string{"hero", "footer"},
		Slots:    types.SlotMap{},
	}

	NormalizePlan(plan, allSections())

	assert.JSONEq(t, "{}", string(plan.Slots[types.SectionHero]))
	assert.JSONEq(t, "[]", string(plan.Slots[types.SectionSimpleBody]))
	assert.JSONEq(t, "[]", string(plan.Slots[types.SectionSummaryCards]))
	assert.JSONEq(t, "{}", string(plan.Slots[types.SectionBookACall]))
	assert.JSONEq(t, "{}", string(plan.Slots[types.SectionContact]))
	assert.JSONEq(t, "{}", string(plan.Slots[types.SectionSignature]))
	assert.JSONEq(t, "{}", string(plan.Slots[types.SectionFooter]))
}

func TestNormalizePlan_UnderscoreKeysCanonicalized(t *testing.T) {
	var slots types.SlotMap
	require.NoError(t, json.Unmarshal([]byte(`{
		"simple_body": [{"html": "<p>a</p>"}],
		"six_summary_cards": []
	}`), &slots))

	plan := &types.EmailPlan{
		Subject:  "S",
		Preview:  "P",
		Sequence: []string{"hero", "simple_body", "footer"},
		Slots:    slots,
	}

	NormalizePlan(plan, allSections())

	assert.Contains(t, plan.Sequence, "simple-body")
	assert.NotContains(t, plan.Sequence, "simple_body")

	blocks, err := plan.Slots.BodyBlocks()
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "<p>a</p>", blocks[0].HTML, "payload values ride along unchanged")

	assert.False(t, plan.Slots.Has("simple_body"))
	assert.False(t, plan.Slots.Has("six_summary_cards"))
	assert.True(t, plan.Slots.Has(types.SectionSummaryCards))
}

func TestNormalizePlan_UnknownSlotKeysPassThrough(t *testing.T) {
	var slots types.SlotMap
	require.NoError(t, json.Unmarshal([]byte(`{"experimental-banner": {"color": "red"}}`), &slots))

	plan := &types.EmailPlan{
		Subject:  "S",
		Preview:  "P",
		Sequence: []string{"hero", "footer"},
		Slots:    slots,
	}

	NormalizePlan(plan, allSections())

	assert.JSONEq(t, `{"color": "red"}`, string(plan.Slots["experimental-banner"]))
}

func TestNormalizePlan_MalformedCardPayloadTreatedAsEmpty(t *testing.T) {
	var slots types.SlotMap
	require.NoError(t, json.Unmarshal([]byte(`{"six-summary-cards": {"not": "a list"}}`), &slots))

	plan := &types.EmailPlan{
		Subject:  "S",
		Preview:  "P",
		Sequence: []string{"hero", "simple-body", "six-summary-cards", "footer"},
		Slots:    slots,
	}

	warnings := NormalizePlan(plan, allSections())

	assert.NotContains(t, plan.Sequence, types.SectionSummaryCards)
	assert.JSONEq(t, "[]", string(plan.Slots[types.SectionSummaryCards]), "garbage payload is forced to an empty list")
	assert.NotEmpty(t, warnings)
}

func TestNormalizePlan_Idempotent(t *testing.T) {
	var slots types.SlotMap
	require.NoError(t, json.Unmarshal([]byte(`{
		"hero": {"title": "T", "subtitle": "S", "cta_text": "Go", "cta_url": "https://sitesmith.io"},
		"simple_body": [{"html": "<p>a</p>"}]
	}`), &slots))

	plan := &types.EmailPlan{
		Subject:  "S",
		Preview:  "P",
		Sequence: []string{"footer", "simple_body", "hero", "unknown-thing"},
		Slots:    slots,
	}

	NormalizePlan(plan, allSections())
	once, err := json.Marshal(plan)
	require.NoError(t, err)

	warnings := NormalizePlan(plan, allSections())
	twice, err := json.Marshal(plan)
	require.NoError(t, err)

	assert.JSONEq(t, string(once), string(twice), "normalizing a normalized plan changes nothing")
	assert.Empty(t, warnings)
}

func TestNormalizeStructure(t *testing.T) {
	tests := []struct {
		name string
		dec  types.StructureDecision
		want []string
	}{
		{
			name: "flag on inserts cards after simple-body",
			dec: types.StructureDecision{
				Sequence:        []string{"hero", "simple_body", "footer"},
				UseSummaryCards: true,
			},
			want: []string{"hero", "simple-body", "six-summary-cards", "signature", "footer"},
		},
		{
			name: "flag off removes cards",
			dec: types.StructureDecision{
				Sequence:        []string{"hero", "simple-body", "six-summary-cards", "signature", "footer"},
				UseSummaryCards: false,
			},
			want: []string{"hero", "simple-body", "signature", "footer"},
		},
		{
			name: "flag on without anchor leaves sequence alone",
			dec: types.StructureDecision{
				Sequence:        []string{"hero", "testimonial", "footer"},
				UseSummaryCards: true,
			},
			want: []string{"hero", "testimonial", "signature", "footer"},
		},
		{
			name: "full reorder",
			dec: types.StructureDecision{
				Sequence:        []string{"footer", "book_a_call", "hero"},
				UseSummaryCards: false,
			},
			want: []string{"hero", "book-a-call", "signature", "footer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			NormalizeStructure(&tt.dec, allSections())
			assert.Equal(t, tt.want, tt.dec.Sequence)
		})
	}
}

func TestNormalizeStructure_ValidDecisionNoWarnings(t *testing.T) {
	dec := types.StructureDecision{
		Sequence:        []string{"hero", "simple-body", "signature", "footer"},
		EmailGoal:       "educate",
		UseSummaryCards: false,
	}

	warnings := NormalizeStructure(&dec, allSections())

	assert.Equal(t, []string{"hero", "simple-body", "signature", "footer"}, dec.Sequence)
	assert.Empty(t, warnings)
}

func countID(seq []string, id string) int {
	n := 0
	for _, s := range seq {
		if s == id {
			n++
		}
	}
	return n
}

func indexID(seq []string, id string) int {
	for i, s := range seq {
		if s == id {
			return i
		}
	}
	return -1
}
