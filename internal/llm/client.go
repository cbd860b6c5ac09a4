// Package llm provides chat-completion clients for the supported providers
// (OpenAI, Anthropic, Gemini) behind one small interface, plus the canned
// prompts used to interrogate a Reddit account summary.
package llm

import "context"

// Response is one chat completion with its usage metadata.
type Response struct {
	Text       string
	TokensUsed int
	Model      string
}

// Client is the minimal chat surface the query layer needs.
type Client interface {
	// Chat sends a system prompt and user message, returning the model's
	// reply. Token limits and temperature are fixed per client at
	// construction time.
	Chat(ctx context.Context, systemPrompt, userMessage string) (*Response, error)
}

// Probe sends a tiny request to verify credentials and connectivity before
// the interactive session starts.
func Probe(ctx context.Context, c Client) error {
	_, err := c.Chat(ctx, "", "Hello")
	return err
}
