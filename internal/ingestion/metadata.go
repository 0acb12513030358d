package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Source kind constants for Metadata.SourceKind
const (
	SourceKindURL    = "url"
	SourceKindText   = "text"
	SourceKindFile   = "file"
	SourceKindPrompt = "prompt"
)

// Metadata contains metadata about a retrieved blog post
type Metadata struct {
	URL        string `json:"url,omitempty"`
	Timestamp  string `json:"timestamp"`            // RFC3339 format
	Hash       string `json:"hash"`                 // SHA256 hex digest
	Platform   string `json:"platform,omitempty"`   // Detected blog platform
	SourceKind string `json:"source_kind"`          // url, text, file or prompt
	FromCache  bool   `json:"from_cache,omitempty"` // Whether the HTML came from the page cache
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content, url, sourceKind string) *Metadata {
	return &Metadata{
		URL:        url,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Hash:       computeHash(content),
		SourceKind: sourceKind,
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
