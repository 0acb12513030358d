package db

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DefaultPageCacheTTL is how long before a fetched blog page is considered stale
const DefaultPageCacheTTL = 7 * 24 * time.Hour

// FetchStatus constants
const (
	FetchStatusSuccess = "success"
	FetchStatusError   = "error"
)

// FetchedPage represents a cached copy of a fetched blog page
type FetchedPage struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	RawHTML     *string   `json:"-"` // Don't serialize (large)
	ContentHash *string   `json:"content_hash,omitempty"`

	// Caching
	HTTPStatus   *int       `json:"http_status,omitempty"`
	FetchStatus  string     `json:"fetch_status"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	FetchedAt    time.Time  `json:"fetched_at"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	LastAccessed time.Time  `json:"last_accessed_at"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsFresh returns true if the cached page hasn't expired
func (p *FetchedPage) IsFresh() bool {
	if p.ExpiresAt == nil {
		return false
	}
	return time.Now().Before(*p.ExpiresAt)
}

// IsExpired returns true if the cached page has expired
func (p *FetchedPage) IsExpired() bool {
	return !p.IsFresh()
}

// HashPageContent generates a SHA-256 hash of the raw HTML
func HashPageContent(html string) string {
	hash := sha256.Sum256([]byte(html))
	return hex.EncodeToString(hash[:])
}

// GetFetchedPageByURL retrieves a cached page by its URL
func (db *DB) GetFetchedPageByURL(ctx context.Context, url string) (*FetchedPage, error) {
	var p FetchedPage

	err := db.pool.QueryRow(ctx,
		`SELECT id, url, raw_html, content_hash, http_status, fetch_status,
		        error_message, fetched_at, expires_at, last_accessed_at,
		        created_at, updated_at
		 FROM fetched_pages WHERE url = $1`,
		url,
	).Scan(&p.ID, &p.URL, &p.RawHTML, &p.ContentHash, &p.HTTPStatus, &p.FetchStatus,
		&p.ErrorMessage, &p.FetchedAt, &p.ExpiresAt, &p.LastAccessed,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get fetched page: %w", err)
	}

	return &p, nil
}

// GetFreshFetchedPage retrieves a cached page only if it was fetched
// successfully and hasn't expired. Pages without an explicit expiry fall back
// to fetched_at plus the given TTL.
func (db *DB) GetFreshFetchedPage(ctx context.Context, url string, ttl time.Duration) (*FetchedPage, error) {
	page, err := db.GetFetchedPageByURL(ctx, url)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, nil
	}

	if page.FetchStatus != FetchStatusSuccess {
		return nil, nil
	}

	if page.ExpiresAt != nil {
		if page.IsExpired() {
			return nil, nil
		}
	} else if time.Now().After(page.FetchedAt.Add(ttl)) {
		return nil, nil
	}

	// Update last accessed
	_, _ = db.pool.Exec(ctx,
		"UPDATE fetched_pages SET last_accessed_at = NOW() WHERE id = $1",
		page.ID)

	return page, nil
}

// UpsertFetchedPage creates or updates a cached page and fills in its ID.
// An explicit ExpiresAt on the input is honored; otherwise the default TTL
// applies.
func (db *DB) UpsertFetchedPage(ctx context.Context, page *FetchedPage) error {
	var contentHash *string
	if page.RawHTML != nil {
		h := HashPageContent(*page.RawHTML)
		contentHash = &h
	}

	expiresAt := time.Now().Add(DefaultPageCacheTTL)
	if page.ExpiresAt != nil {
		expiresAt = *page.ExpiresAt
	}

	status := page.FetchStatus
	if status == "" {
		status = FetchStatusSuccess
	}

	err := db.pool.QueryRow(ctx,
		`INSERT INTO fetched_pages (url, raw_html, content_hash, http_status,
		                            fetch_status, fetched_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), $6)
		 ON CONFLICT (url) DO UPDATE SET
		     raw_html = $2,
		     content_hash = $3,
		     http_status = $4,
		     fetch_status = $5,
		     error_message = NULL,
		     fetched_at = NOW(),
		     expires_at = $6,
		     updated_at = NOW()
		 RETURNING id, fetched_at, expires_at, created_at, updated_at`,
		page.URL, page.RawHTML, contentHash, page.HTTPStatus, status, expiresAt,
	).Scan(&page.ID, &page.FetchedAt, &page.ExpiresAt, &page.CreatedAt, &page.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert fetched page: %w", err)
	}

	page.ContentHash = contentHash
	page.FetchStatus = status
	return nil
}

// RecordFailedFetch records a failed fetch attempt with a short retry window
func (db *DB) RecordFailedFetch(ctx context.Context, url string, httpStatus int, errorMsg string) error {
	var status *int
	if httpStatus != 0 {
		status = &httpStatus
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO fetched_pages (url, http_status, fetch_status, error_message, fetched_at, expires_at)
		 VALUES ($1, $2, 'error', $3, NOW(), NOW() + INTERVAL '1 hour')
		 ON CONFLICT (url) DO UPDATE SET
		     http_status = $2,
		     fetch_status = 'error',
		     error_message = $3,
		     fetched_at = NOW(),
		     expires_at = NOW() + INTERVAL '1 hour',
		     updated_at = NOW()`,
		url, status, errorMsg,
	)
	if err != nil {
		return fmt.Errorf("failed to record failed fetch: %w", err)
	}
	return nil
}
