// Package fetch - platform.go provides blog platform detection and platform-specific selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known blogging platform.
type Platform string

const (
	// PlatformMedium is the Medium publishing platform
	PlatformMedium Platform = "medium"
	// PlatformSubstack is the Substack newsletter platform
	PlatformSubstack Platform = "substack"
	// PlatformWordPress is a WordPress-hosted blog
	PlatformWordPress Platform = "wordpress"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the blogging platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	if strings.Contains(host, "medium.com") {
		return PlatformMedium
	}

	if strings.Contains(host, "substack.com") {
		return PlatformSubstack
	}

	if strings.Contains(host, "wordpress.com") ||
		strings.Contains(host, "wp.com") {
		return PlatformWordPress
	}

	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors optimized for a specific platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformMedium:
		return []string{
			"article section", // Primary Medium selector
			"article",
			".postArticle-content",
			"main",
		}
	case PlatformSubstack:
		return []string{
			".available-content",
			".body.markup",
			".post-content",
			"article",
		}
	case PlatformWordPress:
		return []string{
			".entry-content",
			".post-content",
			"article",
			"main",
			".content",
		}
	default:
		return ArticleSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific platform.
func PlatformNoiseSelectors(platform Platform) []string {
	// Common noise selectors for all platforms
	common := []string{
		// Subscription and signup prompts
		"form",
		".subscribe-widget",
		".subscription-widget",
		".newsletter-signup",
		".signup-form",
		"[data-testid='subscribe']",

		// Comments and reactions
		".comments",
		".comments-section",
		"#comments",
		".reactions",

		// Related and recommended content
		".related-posts",
		".recommended",
		".read-more",
		".more-from",

		// Social and share buttons
		".social-share",
		".share-buttons",
		".social-links",

		// Cookie and GDPR
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",

		// Generic navigation already handled in fetch.go
	}

	// Platform-specific noise selectors
	switch platform {
	case PlatformMedium:
		return append(common,
			".speechify-ignore",
			"[data-testid='audioPlayButton']",
			"[data-testid='headerClapButton']",
			"[data-testid='responses']",
		)
	case PlatformSubstack:
		return append(common,
			".subscribe-footer",
			".paywall",
			".paywall-cta",
			".post-ufi",
		)
	case PlatformWordPress:
		return append(common,
			".sharedaddy",
			".jp-relatedposts",
			".wp-block-jetpack-subscriptions",
			"#respond",
		)
	default:
		return common
	}
}
