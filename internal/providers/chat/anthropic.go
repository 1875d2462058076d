package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/leefowlercu/text-to-cypher/internal/providers"
)

const (
	anthropicAPIURL     = "https://api.anthropic.com/v1/messages"
	anthropicAPIVersion = "2023-06-01"
	anthropicMaxTokens  = 4096
)

// AnthropicProvider implements ChatProvider using Anthropic's messages API.
type AnthropicProvider struct {
	apiKey      string
	catalog     providers.Catalog
	httpClient  *http.Client
	rateLimiter *providers.RateLimiter
}

// AnthropicOption configures the AnthropicProvider.
type AnthropicOption func(*AnthropicProvider)

// WithAnthropicAPIKey sets the API key, overriding the ANTHROPIC_API_KEY environment variable.
func WithAnthropicAPIKey(key string) AnthropicOption {
	return func(p *AnthropicProvider) {
		p.apiKey = key
	}
}

// WithAnthropicHTTPClient sets the HTTP client to use.
func WithAnthropicHTTPClient(client *http.Client) AnthropicOption {
	return func(p *AnthropicProvider) {
		p.httpClient = client
	}
}

// NewAnthropicProvider creates a new Anthropic chat provider.
func NewAnthropicProvider(catalog providers.Catalog, opts ...AnthropicOption) *AnthropicProvider {
	p := &AnthropicProvider{
		apiKey:     os.Getenv("ANTHROPIC_API_KEY"),
		catalog:    catalog,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}

	for _, opt := range opts {
		opt(p)
	}

	p.rateLimiter = providers.NewRateLimiter(p.RateLimit())

	return p
}

// Name returns the provider's unique identifier.
func (p *AnthropicProvider) Name() string {
	return providers.ProviderAnthropic
}

// Available returns true if the provider is configured and ready.
func (p *AnthropicProvider) Available() bool {
	return p.apiKey != ""
}

// RateLimit returns the rate limit configuration.
func (p *AnthropicProvider) RateLimit() providers.RateLimitConfig {
	return providers.RateLimitConfig{
		RequestsPerMinute: 50,
		BurstSize:         5,
	}
}

// Complete performs one chat completion. System messages are folded
// into the API's top-level system field; the messages array carries
// only user and assistant turns.
func (p *AnthropicProvider) Complete(ctx context.Context, req providers.ChatRequest) (string, error) {
	if !p.Available() {
		return "", fmt.Errorf("anthropic provider not available; ANTHROPIC_API_KEY not set")
	}

	if err := p.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait failed; %w", err)
	}

	var system []string
	var messages []map[string]any
	for _, m := range req.Messages {
		if m.Role == providers.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		messages = append(messages, map[string]any{
			"role":    m.Role,
			"content": m.Content,
		})
	}

	requestBody := map[string]any{
		"model":      req.Model,
		"max_tokens": anthropicMaxTokens,
		"messages":   messages,
	}
	if len(system) > 0 {
		requestBody["system"] = strings.Join(system, "\n\n")
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request; %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", anthropicAPIURL, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request; %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicAPIVersion)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("API request failed; %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response; %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("failed to parse response; %w", err)
	}

	for _, c := range apiResp.Content {
		if c.Type == "text" {
			return c.Text, nil
		}
	}

	return "", fmt.Errorf("no text content in response")
}

// ListModels returns the static catalog entries for Anthropic; no I/O.
func (p *AnthropicProvider) ListModels(ctx context.Context) ([]string, error) {
	return p.catalog.Models(providers.ProviderAnthropic), nil
}

// anthropicResponse represents the API response structure.
type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}
