package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiClient implements Client for Google Gemini via the genai SDK.
type GeminiClient struct {
	client      *genai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, config GeminiConfig, logger *zap.Logger) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key not configured")
	}
	if config.Model == "" {
		config.Model = "gemini-2.5-flash"
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 1000
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: config.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiClient{
		client:      client,
		model:       config.Model,
		maxTokens:   config.MaxTokens,
		temperature: config.Temperature,
		logger:      logger,
	}, nil
}

// Chat implements Client.
func (c *GeminiClient) Chat(ctx context.Context, systemPrompt, userMessage string) (*Response, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(c.temperature)),
		MaxOutputTokens: int32(c.maxTokens),
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(userMessage), cfg)
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil ||
		len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("Gemini API returned no candidates")
	}

	tokens := 0
	if result.UsageMetadata != nil {
		tokens = int(result.UsageMetadata.TotalTokenCount)
	}
	c.logger.Debug("gemini chat completed",
		zap.String("model", c.model),
		zap.Int("tokens", tokens))

	return &Response{
		Text:       result.Candidates[0].Content.Parts[0].Text,
		TokensUsed: tokens,
		Model:      c.model,
	}, nil
}
