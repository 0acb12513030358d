// Package assembly splices generated copy into section templates and
// concatenates them into the final email HTML.
package assembly

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sitesmith/email-composer/internal/sections"
	"github.com/sitesmith/email-composer/internal/types"
)

// summaryCardCount is how many cells the six-summary-cards grid renders.
const summaryCardCount = 6

// Assemble renders a normalized plan against the template store. Sections are
// emitted in plan order: dynamic sections with a non-empty slot get their copy
// spliced in, everything else passes through verbatim. A template whose
// expected sub-elements are missing falls back to the raw fragment with a
// warning; only undecodable slot payloads abort.
func Assemble(plan *types.EmailPlan, store *sections.Store) (string, []string, error) {
	var warnings []string
	var sb strings.Builder

	sb.WriteString(store.WrapperOpen())

	for _, id := range plan.Sequence {
		fragment, ok := store.Fragment(id)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("no template for section %q, skipped", id))
			continue
		}

		rendered := fragment
		if sections.IsDynamic(id) {
			var warns []string
			var err error
			rendered, warns, err = renderDynamic(id, fragment, plan.Slots)
			if err != nil {
				return "", warnings, err
			}
			warnings = append(warnings, warns...)
		}

		if strings.TrimSpace(rendered) == "" {
			continue
		}
		sb.WriteString(rendered)
		if !strings.HasSuffix(rendered, "\n") {
			sb.WriteString("\n")
		}
	}

	sb.WriteString(store.WrapperClose())

	return sb.String(), warnings, nil
}

// renderDynamic dispatches to the per-section splicer. An empty slot payload
// leaves the template verbatim.
func renderDynamic(id, fragment string, slots types.SlotMap) (string, []string, error) {
	switch id {
	case types.SectionHero:
		hero, err := slots.Hero()
		if err != nil {
			return "", nil, &Error{Message: "cannot decode hero slot", Cause: err}
		}
		if hero.IsEmpty() {
			return fragment, nil, nil
		}
		return renderHero(fragment, hero)

	case types.SectionSimpleBody:
		blocks, err := slots.BodyBlocks()
		if err != nil {
			return "", nil, &Error{Message: "cannot decode simple-body slot", Cause: err}
		}
		if len(blocks) == 0 {
			return fragment, nil, nil
		}
		return renderBody(fragment, blocks)

	case types.SectionSummaryCards:
		cards, err := slots.SummaryCards()
		if err != nil {
			return "", nil, &Error{Message: "cannot decode six-summary-cards slot", Cause: err}
		}
		if len(cards) == 0 {
			return fragment, nil, nil
		}
		return renderCards(fragment, cards)
	}

	return fragment, nil, nil
}

// renderHero splices headline, subheadline and the CTA button into the hero
// template.
func renderHero(fragment string, hero types.HeroSlot) (string, []string, error) {
	doc, err := parseFragment(fragment)
	if err != nil {
		return "", nil, &Error{Message: "cannot parse hero template", Cause: err}
	}

	title := doc.Find(`[data-slot="title"]`)
	subtitle := doc.Find(`[data-slot="subtitle"]`)
	cta := doc.Find(`[data-slot="cta"]`)

	if title.Length() == 0 || subtitle.Length() == 0 || cta.Length() == 0 {
		return fragment, []string{"hero template missing expected slots, rendered verbatim"}, nil
	}

	title.SetText(hero.Title)
	subtitle.SetText(hero.Subtitle)
	cta.SetText(hero.CTAText)
	cta.SetAttr("href", hero.CTAURL)

	return fragmentHTML(doc, fragment)
}

// renderBody clones the template's block prototype once per body block and
// fills each clone with the block's HTML.
func renderBody(fragment string, blocks []types.BodyBlock) (string, []string, error) {
	doc, err := parseFragment(fragment)
	if err != nil {
		return "", nil, &Error{Message: "cannot parse simple-body template", Cause: err}
	}

	container := doc.Find(`[data-slot="body"]`)
	prototype := container.Find(`[data-slot="block"]`).First()
	if container.Length() == 0 || prototype.Length() == 0 {
		return fragment, []string{"simple-body template missing expected slots, rendered verbatim"}, nil
	}

	for _, block := range blocks {
		clone := prototype.Clone()
		clone.SetHtml(block.HTML)
		container.AppendSelection(clone)
	}
	prototype.Remove()

	return fragmentHTML(doc, fragment)
}

// renderCards fills the six grid cells in template order. Fewer cards than
// cells leaves the trailing cells empty; extra cards are dropped. Both are
// warnings, not errors.
func renderCards(fragment string, cards []types.SummaryCard) (string, []string, error) {
	doc, err := parseFragment(fragment)
	if err != nil {
		return "", nil, &Error{Message: "cannot parse six-summary-cards template", Cause: err}
	}

	cells := doc.Find(`[data-slot="card"]`)
	if cells.Length() == 0 {
		return fragment, []string{"six-summary-cards template missing expected slots, rendered verbatim"}, nil
	}

	var warnings []string
	if len(cards) < summaryCardCount {
		warnings = append(warnings, fmt.Sprintf("six-summary-cards received %d cards, trailing cells left empty", len(cards)))
	}
	if len(cards) > cells.Length() {
		warnings = append(warnings, fmt.Sprintf("six-summary-cards received %d cards, extras dropped", len(cards)))
	}

	cells.Each(func(i int, cell *goquery.Selection) {
		if i < len(cards) {
			cell.Find(`[data-slot="card-emoji"]`).SetText(cards[i].Emoji)
			cell.Find(`[data-slot="card-title"]`).SetText(cards[i].Title)
			cell.Find(`[data-slot="card-description"]`).SetText(cards[i].Description)
			return
		}
		cell.Find(`[data-slot="card-emoji"]`).SetText("")
		cell.Find(`[data-slot="card-title"]`).SetText("")
		cell.Find(`[data-slot="card-description"]`).SetText("")
	})

	html, moreWarnings, err := fragmentHTML(doc, fragment)
	return html, append(warnings, moreWarnings...), err
}

// parseFragment parses a section fragment. goquery wraps fragments in a full
// document; fragmentHTML unwraps them again.
func parseFragment(fragment string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(fragment))
}

// fragmentHTML serializes the body of a parsed fragment back to markup. On
// serialization failure the raw fragment is returned with a warning so a
// template problem never kills the run.
func fragmentHTML(doc *goquery.Document, fallback string) (string, []string, error) {
	html, err := doc.Find("body").Html()
	if err != nil {
		return fallback, []string{fmt.Sprintf("could not serialize rendered section: %v", err)}, nil
	}
	return html, nil, nil
}
