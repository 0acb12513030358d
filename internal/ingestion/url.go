// Package ingestion turns any supported content source (URL, pasted text,
// local file, free-text brief) into normalized blog content for planning.
package ingestion

import (
	"context"
	"fmt"
	"log"

	"github.com/sitesmith/email-composer/internal/fetch"
	"github.com/sitesmith/email-composer/internal/types"
)

var (
	// ErrHTTPRequestFailed is returned when the HTTP request fails
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when no readable article body is found
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
	// ErrEmptyContent is returned when a source yields no usable text
	ErrEmptyContent = fmt.Errorf("empty content")
)

// URLOptions controls URL retrieval behavior
type URLOptions struct {
	// UseBrowser enables the headless browser fallback for JavaScript-rendered blogs
	UseBrowser bool
	// Verbose logs detailed information about the extraction process
	Verbose bool
	// Fetcher, when set, routes the fetch through the database-backed page cache
	Fetcher *fetch.CachedFetcher
}

// FromURL fetches a blog post, extracts the readable article text, cleans it,
// and returns it with metadata. Platform detection picks selectors tuned for
// Medium, Substack and WordPress layouts.
func FromURL(ctx context.Context, urlStr string, opts *URLOptions) (*types.BlogContent, *Metadata, error) {
	if opts == nil {
		opts = &URLOptions{}
	}

	platform := fetch.DetectPlatform(urlStr)
	if opts.Verbose {
		log.Printf("[VERBOSE] URL: %s", urlStr)
		log.Printf("[VERBOSE] Detected platform: %s", platform)
	}

	html, fromCache, err := fetchHTML(ctx, urlStr, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	if opts.Verbose {
		log.Printf("[VERBOSE] Fetched HTML: %d bytes (cache: %v)", len(html), fromCache)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	textContent, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	if opts.Verbose {
		log.Printf("[VERBOSE] Extracted text: %d chars", len(textContent))
	}

	// Browser fallback for JavaScript-rendered blogs with thin static HTML
	if opts.UseBrowser && fetch.ShouldUseBrowser(textContent) {
		if opts.Verbose {
			log.Printf("[VERBOSE] Content too short (%d chars < %d), falling back to browser rendering...",
				len(textContent), fetch.MinContentLength)
		}

		browserHTML, browserErr := fetch.BrowserSimple(ctx, urlStr, opts.Verbose)
		if browserErr != nil {
			if opts.Verbose {
				log.Printf("[VERBOSE] Browser rendering failed: %v, using HTTP content", browserErr)
			}
		} else {
			rendered, extractErr := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...)
			if extractErr != nil {
				if opts.Verbose {
					log.Printf("[VERBOSE] Browser content extraction failed: %v", extractErr)
				}
			} else {
				html = browserHTML
				textContent = rendered
				if opts.Verbose {
					log.Printf("[VERBOSE] Browser extracted text: %d chars", len(textContent))
				}
			}
		}
	}

	cleanedText := CleanText(textContent)
	if cleanedText == "" {
		return nil, nil, fmt.Errorf("%w: no readable article text at %s", ErrContentExtractionFailed, urlStr)
	}

	title := fetch.ExtractTitle(html)
	if opts.Verbose {
		log.Printf("[VERBOSE] Title: %q", title)
		log.Printf("[VERBOSE] Cleaned text: %d chars", len(cleanedText))
	}

	blog := &types.BlogContent{
		Title:     title,
		Text:      cleanedText,
		SourceURL: urlStr,
	}
	metadata := NewMetadata(cleanedText, urlStr, SourceKindURL)
	metadata.Platform = string(platform)
	metadata.FromCache = fromCache

	return blog, metadata, nil
}

// fetchHTML fetches a page either directly or through the page cache.
func fetchHTML(ctx context.Context, urlStr string, opts *URLOptions) (html string, fromCache bool, err error) {
	if opts.Fetcher != nil {
		result, err := opts.Fetcher.Fetch(ctx, urlStr)
		if err != nil {
			return "", false, err
		}
		return result.HTML, result.FromCache, nil
	}

	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", false, err
	}
	return result.HTML, false, nil
}
