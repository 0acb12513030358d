package links

import (
	"fmt"
	"strings"

	"github.com/sitesmith/email-composer/internal/types"
)

// Enforce validates the hero CTA URL against the directory. An allow-listed
// URL passes through untouched. Anything else is replaced with a fallback
// chosen deterministically from the section sequence and the stated email
// goal; the returned warning is non-empty exactly when a substitution
// happened. Enforcement never fails: a bad link is a content bug, not a
// pipeline failure.
func Enforce(hero types.HeroSlot, sequence []string, emailGoal string) (types.HeroSlot, string) {
	if Allowed(hero.CTAURL) {
		return hero, ""
	}

	fallback := fallbackURL(sequence, emailGoal)
	warning := fmt.Sprintf("hero CTA %q is not an approved destination, replaced with %s", hero.CTAURL, fallback)
	hero.CTAURL = fallback
	return hero, warning
}

// fallbackURL picks the replacement destination. The decision order is fixed:
// booking beats builder beats blog beats homepage.
func fallbackURL(sequence []string, emailGoal string) string {
	goal := strings.ToLower(emailGoal)

	switch {
	case containsSection(sequence, types.SectionBookACall) || strings.Contains(goal, "consult"):
		return directory[KeyBookCall]
	case containsSection(sequence, types.SectionSellingPoints) ||
		strings.Contains(goal, "product") || strings.Contains(goal, "promo") || strings.Contains(goal, "sale"):
		return directory[KeyBuilder]
	case strings.Contains(goal, "educat") || strings.Contains(goal, "guide") || strings.Contains(goal, "blog"):
		return directory[KeyBlog]
	default:
		return directory[KeyHomepage]
	}
}

func containsSection(sequence []string, id string) bool {
	for _, s := range sequence {
		if s == id {
			return true
		}
	}
	return false
}
