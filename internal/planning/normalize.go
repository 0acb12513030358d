// Package planning turns blog content into a validated, renderable email
// plan: it prompts the model for structure and copy, then normalizes the
// result until every ordering and slot invariant holds.
package planning

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sitesmith/email-composer/internal/sections"
	"github.com/sitesmith/email-composer/internal/types"
)

// underscoreIDs maps the underscore-style keys the model is prompted to emit
// to the hyphenated section ids used on disk. Built from the catalog so a new
// section is covered automatically.
var underscoreIDs = func() map[string]string {
	m := make(map[string]string)
	for _, id := range sections.IDs() {
		if u := strings.ReplaceAll(id, "-", "_"); u != id {
			m[u] = id
		}
	}
	return m
}()

// CanonicalID maps an underscore-style section key to its hyphenated id.
// Unknown keys pass through unchanged.
func CanonicalID(key string) string {
	if id, ok := underscoreIDs[key]; ok {
		return id
	}
	return key
}

// slotDefaults lists the slot keys every normalized plan carries, with their
// type-correct empty payloads, in a fixed order.
var slotDefaults = []struct {
	id    string
	empty string
}{
	{types.SectionHero, "{}"},
	{types.SectionSimpleBody, "[]"},
	{types.SectionSummaryCards, "[]"},
	{types.SectionBookACall, "{}"},
	{types.SectionContact, "{}"},
	{types.SectionSignature, "{}"},
	{types.SectionFooter, "{}"},
}

// NormalizeStructure heals a lightweight structure decision in place so the
// ordering invariants hold. Summary-card presence follows the decision's own
// flag since there is no payload to inspect in this mode. Returns a warning
// for every correction made; an already-valid decision comes back unchanged
// with no warnings.
func NormalizeStructure(dec *types.StructureDecision, available []string) []string {
	for i, id := range dec.Sequence {
		dec.Sequence[i] = CanonicalID(id)
	}

	seq, warnings := reconstructSequence(dec.Sequence, toSet(available), dec.UseSummaryCards)
	dec.Sequence = seq
	return warnings
}

// NormalizePlan heals a full email plan in place: slot keys are canonicalized
// first, then the sequence is rebuilt around the structural anchors, then
// every known slot is defaulted. Summary-card presence follows the payload
// shape, the single source of truth in this mode. Recoverable irregularities
// are corrected with warnings; nothing here fails.
func NormalizePlan(plan *types.EmailPlan, available []string) []string {
	var warnings []string

	// Key normalization runs before any ordering rule so the rules see
	// canonical ids everywhere.
	for i, id := range plan.Sequence {
		plan.Sequence[i] = CanonicalID(id)
	}
	if plan.Slots == nil {
		plan.Slots = types.SlotMap{}
	}
	for key, raw := range plan.Slots {
		canonical := CanonicalID(key)
		if canonical == key {
			continue
		}
		if _, exists := plan.Slots[canonical]; !exists {
			plan.Slots[canonical] = raw
		}
		delete(plan.Slots, key)
	}

	cards, err := plan.Slots.SummaryCards()
	if err != nil {
		warnings = append(warnings, "six-summary-cards payload is not a card list, treating as empty")
		cards = nil
	}
	wantCards := len(cards) > 0

	seq, seqWarnings := reconstructSequence(plan.Sequence, toSet(available), wantCards)
	plan.Sequence = seq
	warnings = append(warnings, seqWarnings...)

	if !wantCards {
		if raw, ok := plan.Slots[types.SectionSummaryCards]; ok && string(raw) != "[]" {
			plan.Slots[types.SectionSummaryCards] = json.RawMessage("[]")
		}
	}

	for _, def := range slotDefaults {
		if !plan.Slots.Has(def.id) {
			plan.Slots[def.id] = json.RawMessage(def.empty)
		}
	}

	return warnings
}

// reconstructSequence rebuilds a section sequence rather than patching it:
// unknown ids are dropped, hero is pinned first, footer last, signature kept
// (or inserted) somewhere before the footer, and the summary-cards section is
// tied to simple-body. Body sections keep their relative order throughout.
func reconstructSequence(seq []string, available map[string]bool, wantCards bool) ([]string, []string) {
	var warnings []string

	filtered := make([]string, 0, len(seq))
	for _, id := range seq {
		if available[id] {
			filtered = append(filtered, id)
		}
	}

	heroCount, footerCount := 0, 0
	body := make([]string, 0, len(filtered))
	for _, id := range filtered {
		switch id {
		case types.SectionHero:
			heroCount++
		case types.SectionFooter:
			footerCount++
		default:
			body = append(body, id)
		}
	}

	switch {
	case heroCount == 0:
		warnings = append(warnings, "hero missing from sequence, prepended")
	case heroCount > 1 || filtered[0] != types.SectionHero:
		warnings = append(warnings, "hero moved to the front of the sequence")
	}
	switch {
	case footerCount == 0:
		warnings = append(warnings, "footer missing from sequence, appended")
	case footerCount > 1 || filtered[len(filtered)-1] != types.SectionFooter:
		warnings = append(warnings, "footer moved to the end of the sequence")
	}

	body, cardWarnings := placeSummaryCards(body, available, wantCards)
	warnings = append(warnings, cardWarnings...)

	if !containsID(body, types.SectionSignature) {
		body = append(body, types.SectionSignature)
		warnings = append(warnings, "signature missing from sequence, inserted before footer")
	}

	result := make([]string, 0, len(body)+2)
	result = append(result, types.SectionHero)
	result = append(result, body...)
	result = append(result, types.SectionFooter)
	return result, warnings
}

// placeSummaryCards applies the summary-cards rule to the body sections:
// wanted cards sit immediately after simple-body, unwanted cards are removed,
// and without a simple-body anchor the body is left exactly as it came.
func placeSummaryCards(body []string, available map[string]bool, wantCards bool) ([]string, []string) {
	cardCount := 0
	cardIdx := -1
	simpleIdx := -1
	for i, id := range body {
		switch id {
		case types.SectionSummaryCards:
			cardCount++
			if cardIdx == -1 {
				cardIdx = i
			}
		case types.SectionSimpleBody:
			if simpleIdx == -1 {
				simpleIdx = i
			}
		}
	}

	if !wantCards {
		if cardCount == 0 {
			return body, nil
		}
		out := make([]string, 0, len(body)-cardCount)
		for _, id := range body {
			if id != types.SectionSummaryCards {
				out = append(out, id)
			}
		}
		return out, []string{"six-summary-cards removed from sequence (no card content)"}
	}

	if simpleIdx == -1 || !available[types.SectionSummaryCards] {
		// No anchor point, or no template to render into: leave the body alone.
		return body, nil
	}
	if cardCount == 1 && cardIdx == simpleIdx+1 {
		return body, nil
	}

	out := make([]string, 0, len(body)+1)
	inserted := false
	for _, id := range body {
		if id == types.SectionSummaryCards {
			continue
		}
		out = append(out, id)
		if !inserted && id == types.SectionSimpleBody {
			out = append(out, types.SectionSummaryCards)
			inserted = true
		}
	}

	warning := "six-summary-cards inserted immediately after simple-body"
	if cardCount > 0 {
		warning = "six-summary-cards moved immediately after simple-body"
	}
	return out, []string{warning}
}

func containsID(seq []string, id string) bool {
	for _, s := range seq {
		if s == id {
			return true
		}
	}
	return false
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// DescribeSequence renders a sequence for progress output.
func DescribeSequence(seq []string) string {
	return fmt.Sprintf("[%s]", strings.Join(seq, ", "))
}
