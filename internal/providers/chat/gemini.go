package chat

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/leefowlercu/text-to-cypher/internal/providers"
)

// GeminiProvider implements ChatProvider using Google's Gemini API.
// The SDK client is created lazily so that constructing the provider
// never touches the network or credential discovery.
type GeminiProvider struct {
	apiKey      string
	rateLimiter *providers.RateLimiter

	initOnce sync.Once
	client   *genai.Client
	initErr  error
}

// GeminiOption configures the GeminiProvider.
type GeminiOption func(*GeminiProvider)

// WithGeminiAPIKey sets the API key, overriding the GEMINI_API_KEY environment variable.
func WithGeminiAPIKey(key string) GeminiOption {
	return func(p *GeminiProvider) {
		p.apiKey = key
	}
}

// NewGeminiProvider creates a new Gemini chat provider.
func NewGeminiProvider(opts ...GeminiOption) *GeminiProvider {
	p := &GeminiProvider{
		apiKey: os.Getenv("GEMINI_API_KEY"),
	}
	if p.apiKey == "" {
		p.apiKey = os.Getenv("GOOGLE_API_KEY")
	}

	for _, opt := range opts {
		opt(p)
	}

	p.rateLimiter = providers.NewRateLimiter(p.RateLimit())

	return p
}

// Name returns the provider's unique identifier.
func (p *GeminiProvider) Name() string {
	return providers.ProviderGemini
}

// Available returns true if the provider is configured and ready.
func (p *GeminiProvider) Available() bool {
	return p.apiKey != ""
}

// RateLimit returns the rate limit configuration.
func (p *GeminiProvider) RateLimit() providers.RateLimitConfig {
	return providers.RateLimitConfig{
		RequestsPerMinute: 60,
		BurstSize:         10,
	}
}

func (p *GeminiProvider) ensureClient() (*genai.Client, error) {
	p.initOnce.Do(func() {
		p.client, p.initErr = genai.NewClient(context.Background(), option.WithAPIKey(p.apiKey))
	})
	if p.initErr != nil {
		return nil, fmt.Errorf("failed to create gemini client; %w", p.initErr)
	}
	return p.client, nil
}

// Complete performs one chat completion. System messages become the
// model's system instruction; prior turns are replayed as chat
// history with the assistant role mapped to Gemini's "model" role.
func (p *GeminiProvider) Complete(ctx context.Context, req providers.ChatRequest) (string, error) {
	if !p.Available() {
		return "", fmt.Errorf("gemini provider not available; GEMINI_API_KEY not set")
	}

	if err := p.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait failed; %w", err)
	}

	client, err := p.ensureClient()
	if err != nil {
		return "", err
	}

	model := client.GenerativeModel(req.Model)

	var system []string
	var turns []providers.ChatMessage
	for _, m := range req.Messages {
		if m.Role == providers.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		turns = append(turns, m)
	}

	if len(system) > 0 {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(strings.Join(system, "\n\n"))},
		}
	}

	if len(turns) == 0 {
		return "", fmt.Errorf("no user message to send")
	}

	chat := model.StartChat()
	for _, m := range turns[:len(turns)-1] {
		role := "user"
		if m.Role == providers.RoleAssistant {
			role = "model"
		}
		chat.History = append(chat.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	resp, err := chat.SendMessage(ctx, genai.Text(turns[len(turns)-1].Content))
	if err != nil {
		return "", fmt.Errorf("API request failed; %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates in response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no text content in response")
	}

	return b.String(), nil
}

// ListModels probes the Gemini API for available generative models.
// Probe failures are ModelListError, distinct from an unknown provider.
func (p *GeminiProvider) ListModels(ctx context.Context) ([]string, error) {
	if !p.Available() {
		return nil, &providers.ModelListError{
			Provider: providers.ProviderGemini,
			Err:      fmt.Errorf("GEMINI_API_KEY not set"),
		}
	}

	client, err := p.ensureClient()
	if err != nil {
		return nil, &providers.ModelListError{Provider: providers.ProviderGemini, Err: err}
	}

	var models []string
	it := client.ListModels(ctx)
	for {
		info, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &providers.ModelListError{Provider: providers.ProviderGemini, Err: err}
		}
		name := strings.TrimPrefix(info.Name, "models/")
		if strings.HasPrefix(name, "gemini") {
			models = append(models, name)
		}
	}

	return models, nil
}
