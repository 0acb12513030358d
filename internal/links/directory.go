// Package links guarantees every generated call-to-action points at an
// approved Sitesmith destination. Only the hero CTA is enforced; links inside
// freeform body HTML rely on the generation prompt.
package links

import (
	"fmt"
	"strings"
)

// Logical destination keys in the link directory.
const (
	KeyBuilder  = "builder"
	KeyBookCall = "book_call"
	KeyHomepage = "homepage"
	KeyBlog     = "blog"
)

// directory is the fixed allow-list. Its value set is the complete set of
// URLs a CTA may carry; it never changes at runtime.
var directory = map[string]string{
	KeyBuilder:  "https://app.sitesmith.io/builder",
	KeyBookCall: "https://sitesmith.io/book-a-call",
	KeyHomepage: "https://sitesmith.io",
	KeyBlog:     "https://sitesmith.io/blog",
}

// keyOrder keeps directory listings deterministic.
var keyOrder = []string{KeyBuilder, KeyBookCall, KeyHomepage, KeyBlog}

// URL returns the destination for a logical key, or empty string for an
// unknown key.
func URL(key string) string {
	return directory[key]
}

// Allowed reports whether url is a member of the directory's value set.
func Allowed(url string) bool {
	for _, allowed := range directory {
		if url == allowed {
			return true
		}
	}
	return false
}

// AllowedURLs returns the full value set in a stable order.
func AllowedURLs() []string {
	urls := make([]string, 0, len(keyOrder))
	for _, key := range keyOrder {
		urls = append(urls, directory[key])
	}
	return urls
}

// PromptText renders the directory for the generation prompt so the model
// picks destinations from it.
func PromptText() string {
	var sb strings.Builder
	for _, key := range keyOrder {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", strings.ReplaceAll(key, "_", " "), directory[key]))
	}
	return sb.String()
}
