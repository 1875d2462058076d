package providers

import (
	"context"
	"errors"
	"strings"
)

// Provider names. These form the closed set of supported providers;
// adding one means adding a ChatProvider implementation, not subclassing.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
)

// DefaultProvider handles bare model identifiers without a provider prefix.
const DefaultProvider = ProviderOpenAI

// ProviderOrder is the fixed listing order for catalog operations.
// Stable order keeps repeated ListAll calls byte-identical.
var ProviderOrder = []string{ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderOllama}

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage is a single turn in a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is a provider-agnostic chat completion request.
type ChatRequest struct {
	Model    string
	Messages []ChatMessage
}

// RateLimitConfig defines rate limiting parameters for a provider.
type RateLimitConfig struct {
	RequestsPerMinute int
	BurstSize         int
}

// ChatProvider is the contract every provider implements. Request
// shaping, authentication, and response extraction all live behind
// Complete, so callers never see provider-specific formats.
type ChatProvider interface {
	// Name returns the provider's unique identifier.
	Name() string

	// Available returns true if the provider is configured and ready.
	Available() bool

	// RateLimit returns the rate limit configuration for this provider.
	RateLimit() RateLimitConfig

	// Complete performs one chat completion and returns the model's text.
	Complete(ctx context.Context, req ChatRequest) (string, error)

	// ListModels returns the model identifiers this provider offers,
	// in stable order. Implementations backed by a static catalog do no
	// I/O; implementations that probe a live endpoint wrap failures in
	// ModelListError.
	ListModels(ctx context.Context) ([]string, error)
}

// ModelRef is a parsed model identifier: either "modelId" (default
// provider) or "provider:modelId".
type ModelRef struct {
	Provider string
	Model    string
}

// String returns the canonical provider-qualified form.
func (r ModelRef) String() string {
	return r.Provider + ":" + r.Model
}

// ErrEmptyModel is returned when a model identifier is blank.
var ErrEmptyModel = errors.New("model identifier must not be empty")

// KnownProvider reports whether name (case-insensitive) is in the supported set.
func KnownProvider(name string) bool {
	switch strings.ToLower(name) {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderOllama:
		return true
	}
	return false
}

// ParseModelRef parses a model identifier. The provider prefix is
// matched case-insensitively; an unrecognized prefix is an
// UnknownProviderError, distinct from a bare identifier the default
// provider does not know (which only surfaces at invocation time).
func ParseModelRef(s string) (ModelRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ModelRef{}, ErrEmptyModel
	}

	i := strings.Index(s, ":")
	if i < 0 {
		return ModelRef{Provider: DefaultProvider, Model: s}, nil
	}

	prefix := s[:i]
	if !KnownProvider(prefix) {
		return ModelRef{}, &UnknownProviderError{Provider: prefix}
	}

	model := s[i+1:]
	if model == "" {
		return ModelRef{}, ErrEmptyModel
	}

	return ModelRef{Provider: strings.ToLower(prefix), Model: model}, nil
}
