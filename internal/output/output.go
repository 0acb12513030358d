// Package output writes the final email artifacts to disk under
// deterministic, filesystem-safe names.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxSlugLen caps how much of the subject line ends up in the file name.
const maxSlugLen = 60

// timestampLayout is sortable and safe on every filesystem.
const timestampLayout = "20060102-150405"

// Result holds the paths of the written artifacts.
type Result struct {
	HTMLPath string
	TextPath string
}

// Write stores the HTML and plain-text renderings as
// <slug>-<timestamp>.html/.txt under dir. Either both files land or neither:
// if the second write fails the first is removed.
func Write(dir, subject string, startTime time.Time, html, text string) (*Result, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	base := Slug(subject) + "-" + startTime.UTC().Format(timestampLayout)
	htmlPath := filepath.Join(dir, base+".html")
	textPath := filepath.Join(dir, base+".txt")

	if err := os.WriteFile(htmlPath, []byte(html), 0644); err != nil {
		return nil, fmt.Errorf("failed to write HTML artifact: %w", err)
	}
	if err := os.WriteFile(textPath, []byte(text), 0644); err != nil {
		_ = os.Remove(htmlPath)
		return nil, fmt.Errorf("failed to write text artifact: %w", err)
	}

	return &Result{HTMLPath: htmlPath, TextPath: textPath}, nil
}

// Slug turns a subject line into a lower-case hyphenated file name stem.
// Runs of non-alphanumerics collapse into single hyphens; the result is
// trimmed and capped. An unusable subject yields "email".
func Slug(subject string) string {
	var sb strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(subject) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				sb.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.Trim(sb.String(), "-")
	if len(slug) > maxSlugLen {
		slug = strings.Trim(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		return "email"
	}
	return slug
}
