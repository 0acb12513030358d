package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sitesmith/email-composer/internal/types"
)

// maxHeuristicTitleLen bounds how long a first line can be and still read as a title
const maxHeuristicTitleLen = 100

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")

	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")

	// Max 2 consecutive blank lines
	result = removeExcessiveBlankLines(result)

	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")

	if strings.TrimSpace(line) == "" {
		return ""
	}

	// Preserve headings (Markdown # or ## etc.)
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Preserve bullet lists (Markdown - or *)
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		indent := len(line) - len(trimmed)
		if indent > 0 {
			return strings.Repeat(" ", indent) + trimmed
		}
		return trimmed
	}

	// Regular lines: collapse runs of whitespace, keep leading indentation
	leadingSpace := len(line) - len(trimmed)
	content := strings.TrimSpace(line)
	content = regexp.MustCompile(`\s+`).ReplaceAllString(content, " ")
	if leadingSpace > 0 {
		return strings.Repeat(" ", leadingSpace) + content
	}
	return content
}

// removeExcessiveBlankLines reduces consecutive blank lines to max 2
func removeExcessiveBlankLines(content string) string {
	re := regexp.MustCompile(`\n\n\n+`)
	return re.ReplaceAllString(content, "\n\n")
}

// deriveTitle pulls a title off the front of pasted text. A short first line
// reads as a headline and is consumed; anything longer stays in the body and
// the title is left empty.
func deriveTitle(text string) (title, body string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ""
	}

	firstLine := trimmed
	rest := ""
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		firstLine = strings.TrimSpace(trimmed[:idx])
		rest = strings.TrimSpace(trimmed[idx+1:])
	}

	firstLine = strings.TrimLeft(firstLine, "# ")
	if len(firstLine) > 0 && len(firstLine) <= maxHeuristicTitleLen && rest != "" {
		return firstLine, rest
	}
	return "", trimmed
}

// FromText builds blog content from pasted text
func FromText(text, sourceURL string) (*types.BlogContent, *Metadata, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, nil, fmt.Errorf("%w: text input is empty", ErrEmptyContent)
	}

	title, body := deriveTitle(cleaned)

	blog := &types.BlogContent{
		Title:     title,
		Text:      body,
		SourceURL: sourceURL,
	}
	metadata := NewMetadata(body, sourceURL, SourceKindText)
	return blog, metadata, nil
}

// FromFile reads a text file and builds blog content from it
func FromFile(path string) (*types.BlogContent, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	blog, metadata, err := FromText(string(content), "")
	if err != nil {
		return nil, nil, err
	}
	metadata.SourceKind = SourceKindFile
	return blog, metadata, nil
}

// WriteOutput writes the retrieved content and metadata to output files
func WriteOutput(outDir string, blog *types.BlogContent, metadata *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	textPath := filepath.Join(outDir, "blog_post.cleaned.txt")
	body := blog.Text
	if blog.Title != "" {
		body = blog.Title + "\n\n" + blog.Text
	}
	if err := os.WriteFile(textPath, []byte(body), 0644); err != nil {
		return fmt.Errorf("failed to write cleaned text file: %w", err)
	}

	metaPath := filepath.Join(outDir, "blog_post.meta.json")
	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}
