package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent generates text content using the specified model tier
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSON generates JSON content using the specified model tier
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSONWithSchema generates JSON constrained by a response schema
	GenerateJSONWithSchema(ctx context.Context, prompt string, tier ModelTier, schema *genai.Schema) (string, error)
	// GetModel returns the underlying provider model for a tier (for direct access if needed)
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	// case ProviderOpenAI:
	//     return NewOpenAIClient(ctx, config, apiKey)
	// case ProviderAnthropic:
	//     return NewClaudeClient(ctx, config, apiKey)
	default:
		return NewGeminiClient(ctx, config, apiKey)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateContent generates text content using the specified model tier
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.generate(ctx, prompt, tier, false, nil)
}

// GenerateJSON generates JSON content using the specified model tier
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.generate(ctx, prompt, tier, true, nil)
}

// GenerateJSONWithSchema generates JSON constrained by a Gemini response
// schema. The schema narrows the output shape but downstream validation still
// applies; the provider contract is advisory, not authoritative.
func (c *GeminiClient) GenerateJSONWithSchema(ctx context.Context, prompt string, tier ModelTier, schema *genai.Schema) (string, error) {
	return c.generate(ctx, prompt, tier, true, schema)
}

// generate runs a single model call with a bounded timeout, retrying once on
// a provider failure with the configured fallback model.
func (c *GeminiClient) generate(ctx context.Context, prompt string, tier ModelTier, jsonMode bool, schema *genai.Schema) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", &ProviderError{Model: string(tier), Message: "no model configured for tier"}
	}

	text, err := c.callModel(ctx, modelName, prompt, jsonMode, schema)
	if err == nil {
		return text, nil
	}

	fallback := c.config.Fallback
	if fallback == "" || fallback == modelName {
		return "", &ProviderError{Model: modelName, Message: "generation failed", Cause: err}
	}

	log.Printf("Warning: model %s failed (%v), retrying once with %s", modelName, err, fallback)
	text, retryErr := c.callModel(ctx, fallback, prompt, jsonMode, schema)
	if retryErr != nil {
		return "", &ProviderError{Model: fallback, Message: "generation failed after fallback retry", Cause: retryErr}
	}
	return text, nil
}

// callModel performs one request against a concrete model.
func (c *GeminiClient) callModel(ctx context.Context, modelName, prompt string, jsonMode bool, schema *genai.Schema) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.config.callTimeout())
	defer cancel()

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent output
	if jsonMode {
		model.ResponseMIMEType = "application/json"
	}
	if schema != nil {
		model.ResponseSchema = schema
	}

	resp, err := model.GenerateContent(callCtx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	if jsonMode {
		// Clean any markdown code block wrappers
		return CleanJSONBlock(text), nil
	}
	return text, nil
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
