package chat

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/leefowlercu/text-to-cypher/internal/providers"
)

const defaultOllamaURL = "http://localhost:11434"

// OllamaProvider implements ChatProvider against a local Ollama server
// through its OpenAI-compatible endpoint. Unlike the hosted providers
// its model set depends on what has been pulled locally, so ListModels
// is a live probe.
type OllamaProvider struct {
	baseURL     string
	client      *openai.Client
	rateLimiter *providers.RateLimiter
}

// OllamaOption configures the OllamaProvider.
type OllamaOption func(*OllamaProvider)

// WithOllamaURL sets the server URL, overriding TEXT2CYPHER_OLLAMA_URL.
func WithOllamaURL(url string) OllamaOption {
	return func(p *OllamaProvider) {
		if url != "" {
			p.baseURL = url
		}
	}
}

// NewOllamaProvider creates a new Ollama chat provider. Construction
// performs no network I/O.
func NewOllamaProvider(opts ...OllamaOption) *OllamaProvider {
	p := &OllamaProvider{
		baseURL: defaultOllamaURL,
	}

	if env := os.Getenv("TEXT2CYPHER_OLLAMA_URL"); env != "" {
		p.baseURL = env
	}

	for _, opt := range opts {
		opt(p)
	}

	cfg := openai.DefaultConfig("ollama") // Ollama ignores the key but the header must be present
	cfg.BaseURL = strings.TrimSuffix(p.baseURL, "/") + "/v1"
	p.client = openai.NewClientWithConfig(cfg)
	p.rateLimiter = providers.NewRateLimiter(p.RateLimit())

	return p
}

// Name returns the provider's unique identifier.
func (p *OllamaProvider) Name() string {
	return providers.ProviderOllama
}

// Available returns true; a local server needs no credentials and
// reachability is only known at call time.
func (p *OllamaProvider) Available() bool {
	return true
}

// RateLimit returns the rate limit configuration. Local inference is
// serial anyway, so the bucket is generous.
func (p *OllamaProvider) RateLimit() providers.RateLimitConfig {
	return providers.RateLimitConfig{
		RequestsPerMinute: 600,
		BurstSize:         10,
	}
}

// Complete performs one chat completion.
func (p *OllamaProvider) Complete(ctx context.Context, req providers.ChatRequest) (string, error) {
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

// ListModels probes the local server for its installed models.
// Probe failures are ModelListError, distinct from an unknown provider.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]string, error) {
	resp, err := p.client.ListModels(ctx)
	if err != nil {
		return nil, &providers.ModelListError{Provider: providers.ProviderOllama, Err: err}
	}

	models := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		models = append(models, m.ID)
	}
	return models, nil
}
