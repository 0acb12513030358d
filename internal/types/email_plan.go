// Package types provides type definitions for structured data used throughout the email-composer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// Section identifiers shared by the catalog, the planner, the slot map and the
// on-disk template names. The planner only ever emits ids from this closed set.
const (
	SectionHero          = "hero"
	SectionSimpleBody    = "simple-body"
	SectionSummaryCards  = "six-summary-cards"
	SectionSellingPoints = "selling-points-what-you-get"
	SectionTestimonial   = "testimonial"
	SectionBookACall     = "book-a-call"
	SectionContact       = "contact"
	SectionSignature     = "signature"
	SectionFooter        = "footer"
)

// StructureDecision represents the lightweight planning output: section order and intent, no copy
type StructureDecision struct {
	Sequence        []string `json:"sequence" validate:"required,min=1"`
	EmailGoal       string   `json:"email_goal"`
	UseSummaryCards bool     `json:"use_summary_cards"`
	Reasoning       string   `json:"reasoning"`
}

// EmailPlan represents the full content plan: subject line, inbox preview, section order and per-section copy
type EmailPlan struct {
	Subject  string   `json:"subject" validate:"required"`
	Preview  string   `json:"preview" validate:"required"`
	Sequence []string `json:"sequence" validate:"required,min=1"`
	Slots    SlotMap  `json:"slots" validate:"required"`
}

// HeroSlot represents the copy for the hero section
type HeroSlot struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTAText  string `json:"cta_text"`
	CTAURL   string `json:"cta_url"`
}

// IsEmpty reports whether no hero copy was generated at all.
func (h HeroSlot) IsEmpty() bool {
	return h.Title == "" && h.Subtitle == "" && h.CTAText == "" && h.CTAURL == ""
}

// BodyBlock represents one paragraph-level HTML block inside the simple-body section
type BodyBlock struct {
	HTML string `json:"html"`
}

// SummaryCard represents one cell of the six-summary-cards grid
type SummaryCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
}

// SlotMap holds per-section copy payloads keyed by section id. Known sections
// decode into their typed variants on demand; unknown keys are carried through
// untouched so payloads for future sections survive a round trip.
type SlotMap map[string]json.RawMessage

// Hero decodes the hero slot. A missing or empty key yields the zero value.
func (s SlotMap) Hero() (HeroSlot, error) {
	var h HeroSlot
	raw, ok := s[SectionHero]
	if !ok || len(raw) == 0 {
		return h, nil
	}
	if err := json.Unmarshal(raw, &h); err != nil {
		return HeroSlot{}, err
	}
	return h, nil
}

// BodyBlocks decodes the simple-body slot. A missing key yields an empty list.
func (s SlotMap) BodyBlocks() ([]BodyBlock, error) {
	raw, ok := s[SectionSimpleBody]
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	var blocks []BodyBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// SummaryCards decodes the six-summary-cards slot. A missing key yields an empty list.
func (s SlotMap) SummaryCards() ([]SummaryCard, error) {
	raw, ok := s[SectionSummaryCards]
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	var cards []SummaryCard
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// Set marshals payload into the slot for the given section id.
func (s SlotMap) Set(id string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	s[id] = raw
	return nil
}

// Has reports whether any payload exists for the given section id.
func (s SlotMap) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Validate checks the upstream shape contract on a decoded plan. A failure here
// is a fatal model-contract violation, not a recoverable irregularity.
func (p *EmailPlan) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// Validate checks the upstream shape contract on a decoded decision.
func (d *StructureDecision) Validate() error {
	validate := validator.New()
	return validate.Struct(d)
}
