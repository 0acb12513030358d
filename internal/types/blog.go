// Package types provides type definitions for structured data used throughout the email-composer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// BlogContent represents a blog post normalized from any retrieval source.
// Immutable once produced; downstream stages only read it.
type BlogContent struct {
	Title     string `json:"title"`
	Text      string `json:"text"`
	SourceURL string `json:"source_url,omitempty"`
}
