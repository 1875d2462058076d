package chat

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/leefowlercu/text-to-cypher/internal/providers"
)

// OpenAIProvider implements ChatProvider using OpenAI's chat completions API.
// It is also the default provider for bare model identifiers.
type OpenAIProvider struct {
	apiKey      string
	catalog     providers.Catalog
	client      *openai.Client
	rateLimiter *providers.RateLimiter
}

// OpenAIOption configures the OpenAIProvider.
type OpenAIOption func(*OpenAIProvider)

// WithOpenAIAPIKey sets the API key, overriding the OPENAI_API_KEY environment variable.
func WithOpenAIAPIKey(key string) OpenAIOption {
	return func(p *OpenAIProvider) {
		p.apiKey = key
	}
}

// NewOpenAIProvider creates a new OpenAI chat provider. Construction
// performs no network I/O; the first completion does.
func NewOpenAIProvider(catalog providers.Catalog, opts ...OpenAIOption) *OpenAIProvider {
	p := &OpenAIProvider{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		catalog: catalog,
	}

	for _, opt := range opts {
		opt(p)
	}

	p.client = openai.NewClient(p.apiKey)
	p.rateLimiter = providers.NewRateLimiter(p.RateLimit())

	return p
}

// Name returns the provider's unique identifier.
func (p *OpenAIProvider) Name() string {
	return providers.ProviderOpenAI
}

// Available returns true if the provider is configured and ready.
func (p *OpenAIProvider) Available() bool {
	return p.apiKey != ""
}

// RateLimit returns the rate limit configuration.
func (p *OpenAIProvider) RateLimit() providers.RateLimitConfig {
	return providers.RateLimitConfig{
		RequestsPerMinute: 60,
		BurstSize:         10,
	}
}

// Complete performs one chat completion.
func (p *OpenAIProvider) Complete(ctx context.Context, req providers.ChatRequest) (string, error) {
	if !p.Available() {
		return "", fmt.Errorf("openai provider not available; OPENAI_API_KEY not set")
	}

	if err := p.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait failed; %w", err)
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("API request failed; %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// ListModels returns the static catalog entries for OpenAI; no I/O.
func (p *OpenAIProvider) ListModels(ctx context.Context) ([]string, error) {
	return p.catalog.Models(providers.ProviderOpenAI), nil
}
