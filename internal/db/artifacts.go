package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sitesmith/email-composer/internal/types"
)

// GetBlogContentByRunID loads the retrieved blog content for a run
func (db *DB) GetBlogContentByRunID(ctx context.Context, runID uuid.UUID) (*types.BlogContent, error) {
	content, err := db.GetArtifact(ctx, runID, StepBlogContent)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var blog types.BlogContent
	if err := json.Unmarshal(content, &blog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal blog content: %w", err)
	}
	return &blog, nil
}

// GetStructureDecisionByRunID loads the structure decision for a run
func (db *DB) GetStructureDecisionByRunID(ctx context.Context, runID uuid.UUID) (*types.StructureDecision, error) {
	content, err := db.GetArtifact(ctx, runID, StepStructureDecision)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var decision types.StructureDecision
	if err := json.Unmarshal(content, &decision); err != nil {
		return nil, fmt.Errorf("failed to unmarshal structure decision: %w", err)
	}
	return &decision, nil
}

// GetEmailPlanByRunID loads the normalized email plan for a run
func (db *DB) GetEmailPlanByRunID(ctx context.Context, runID uuid.UUID) (*types.EmailPlan, error) {
	content, err := db.GetArtifact(ctx, runID, StepEmailPlan)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var plan types.EmailPlan
	if err := json.Unmarshal(content, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal email plan: %w", err)
	}
	return &plan, nil
}

// GetContentMetadataByRunID loads retrieval metadata for a run.
// Returns raw JSON bytes to avoid import cycle with ingestion package
func (db *DB) GetContentMetadataByRunID(ctx context.Context, runID uuid.UUID) ([]byte, error) {
	content, err := db.GetArtifact(ctx, runID, StepContentMetadata)
	if err != nil {
		return nil, err
	}
	return content, nil
}

// GetEmailHTMLByRunID loads the assembled email HTML for a run
func (db *DB) GetEmailHTMLByRunID(ctx context.Context, runID uuid.UUID) (string, error) {
	return db.GetTextArtifact(ctx, runID, StepEmailHTML)
}

// GetEmailTextByRunID loads the plain-text rendering for a run
func (db *DB) GetEmailTextByRunID(ctx context.Context, runID uuid.UUID) (string, error) {
	return db.GetTextArtifact(ctx, runID, StepEmailText)
}
