package ingestion

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sitesmith/email-composer/internal/llm"
	"github.com/sitesmith/email-composer/internal/prompts"
	"github.com/sitesmith/email-composer/internal/types"
)

// FromPrompt asks the model to draft a short blog post from a free-text brief.
// The drafted post then flows through the pipeline exactly like fetched content.
func FromPrompt(ctx context.Context, client llm.Client, brief, brand string) (*types.BlogContent, *Metadata, error) {
	template, err := prompts.Get(prompts.FileRetrieval, "draft_post")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load draft prompt: %w", err)
	}

	prompt := prompts.Format(template, map[string]string{
		"Brief": brief,
		"Brand": brand,
	})

	response, err := client.GenerateJSONWithSchema(ctx, prompt, llm.TierStandard, llm.DraftedPostSchema())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to draft post from brief: %w", err)
	}

	var drafted struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	}
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(response)), &drafted); err != nil {
		return nil, nil, fmt.Errorf("failed to parse drafted post: %w", err)
	}

	cleaned := CleanText(drafted.Text)
	if cleaned == "" {
		return nil, nil, fmt.Errorf("%w: model drafted an empty post", ErrEmptyContent)
	}

	blog := &types.BlogContent{
		Title: drafted.Title,
		Text:  cleaned,
	}
	metadata := NewMetadata(cleaned, "", SourceKindPrompt)

	return blog, metadata, nil
}
