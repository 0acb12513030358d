// Package sections provides the static section catalog and the on-disk
// template store for the modular email blocks.
package sections

import (
	"fmt"
	"strings"

	"github.com/sitesmith/email-composer/internal/types"
)

// Category classifies a section for the planner prompt
type Category string

// Category constants define the section groupings shown to the model
const (
	CategoryGeneral     Category = "General"
	CategoryEducational Category = "Educational"
	CategoryProduct     Category = "Product"
	CategorySocialProof Category = "Social Proof"
	CategoryGeneralCTA  Category = "General CTA"
)

// Entry represents one section in the catalog
type Entry struct {
	ID       string
	Category Category
	Summary  string
	// Dynamic marks sections whose templates receive generated copy.
	// Static sections render verbatim.
	Dynamic bool
}

// catalog is the process-wide registry of every section the system knows how
// to render. Order matters: it is the order sections are described to the
// model and reported by the CLI.
var catalog = []Entry{
	{
		ID:       types.SectionHero,
		Category: CategoryGeneral,
		Summary:  "Opening banner with headline, subheadline and the primary call-to-action button. Every email starts with it.",
		Dynamic:  true,
	},
	{
		ID:       types.SectionSimpleBody,
		Category: CategoryEducational,
		Summary:  "Free-form paragraph blocks carrying the main message. The workhorse section for almost every email.",
		Dynamic:  true,
	},
	{
		ID:       types.SectionSummaryCards,
		Category: CategoryEducational,
		Summary:  "Grid of six short takeaway cards (emoji, title, one line of detail). Use only when the post breaks into crisp parallel points.",
		Dynamic:  true,
	},
	{
		ID:       types.SectionSellingPoints,
		Category: CategoryProduct,
		Summary:  "Fixed list of everything a Sitesmith subscription includes. Use for product or promotional emails.",
	},
	{
		ID:       types.SectionTestimonial,
		Category: CategorySocialProof,
		Summary:  "Customer quote with name and company. Adds credibility to promotional sends.",
	},
	{
		ID:       types.SectionBookACall,
		Category: CategoryGeneralCTA,
		Summary:  "Invitation block with a button to the consultation booking page. Use when the goal is getting readers on a call.",
	},
	{
		ID:       types.SectionContact,
		Category: CategoryGeneral,
		Summary:  "Support and contact details block.",
	},
	{
		ID:       types.SectionSignature,
		Category: CategoryGeneral,
		Summary:  "Sign-off from the Sitesmith team. Always appears before the footer.",
	},
	{
		ID:       types.SectionFooter,
		Category: CategoryGeneral,
		Summary:  "Legal footer with unsubscribe link and postal address. Every email ends with it.",
	},
}

// Catalog returns the full section registry in presentation order.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for a section id.
func Lookup(id string) (Entry, bool) {
	for _, e := range catalog {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// IDs returns every known section id in catalog order.
func IDs() []string {
	ids := make([]string, len(catalog))
	for i, e := range catalog {
		ids[i] = e.ID
	}
	return ids
}

// IsDynamic reports whether a section receives generated copy.
func IsDynamic(id string) bool {
	e, ok := Lookup(id)
	return ok && e.Dynamic
}

// PromptText renders the catalog as the block list shown to the model.
func PromptText(available []string) string {
	availableSet := make(map[string]bool, len(available))
	for _, id := range available {
		availableSet[id] = true
	}

	var sb strings.Builder
	for _, e := range catalog {
		if !availableSet[e.ID] {
			continue
		}
		sb.WriteString(fmt.Sprintf("- %s (%s): %s\n", e.ID, e.Category, e.Summary))
	}
	return sb.String()
}
