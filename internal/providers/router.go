package providers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Router resolves model references to providers and is the single seam
// through which every model invocation flows, regardless of provider.
// It is immutable after construction and safe for concurrent use.
type Router struct {
	providers map[string]ChatProvider
	order     []string
	logger    *slog.Logger
}

// RouterOption configures the Router.
type RouterOption func(*Router)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) RouterOption {
	return func(r *Router) {
		r.logger = logger
	}
}

// NewRouter creates a router over the given providers. Listing order
// follows the order providers are supplied in.
func NewRouter(chatProviders []ChatProvider, opts ...RouterOption) *Router {
	r := &Router{
		providers: make(map[string]ChatProvider, len(chatProviders)),
		logger:    slog.Default(),
	}

	for _, p := range chatProviders {
		name := strings.ToLower(p.Name())
		if _, exists := r.providers[name]; exists {
			continue
		}
		r.providers[name] = p
		r.order = append(r.order, name)
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Provider returns the provider for a name, matched case-insensitively.
func (r *Router) Provider(name string) (ChatProvider, error) {
	p, ok := r.providers[strings.ToLower(name)]
	if !ok {
		return nil, &UnknownProviderError{Provider: name}
	}
	return p, nil
}

// Invoke routes one chat completion to the provider named by ref.
// This is the only path by which query generation and answer synthesis
// reach a model.
func (r *Router) Invoke(ctx context.Context, ref ModelRef, messages []ChatMessage) (string, error) {
	p, err := r.Provider(ref.Provider)
	if err != nil {
		return "", err
	}

	if !p.Available() {
		return "", fmt.Errorf("provider %s not available; API key not configured", p.Name())
	}

	r.logger.Debug("invoking model", "provider", ref.Provider, "model", ref.Model, "messages", len(messages))

	text, err := p.Complete(ctx, ChatRequest{Model: ref.Model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("model invocation failed for %s; %w", ref.String(), err)
	}

	return text, nil
}

// ListByProvider returns the model identifiers for one provider.
// The name is matched case-insensitively; names outside the supported
// set fail with UnknownProviderError, and live-probe failures surface
// as ModelListError.
func (r *Router) ListByProvider(ctx context.Context, name string) ([]string, error) {
	p, err := r.Provider(name)
	if err != nil {
		return nil, err
	}
	return p.ListModels(ctx)
}

// ListAll returns the de-duplicated, order-stable concatenation of
// every provider's model list, qualified as "provider:model".
// Providers whose live probe fails are skipped with a warning so a
// stopped local engine does not hide the static catalogs.
func (r *Router) ListAll(ctx context.Context) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})

	for _, name := range r.order {
		models, err := r.providers[name].ListModels(ctx)
		if err != nil {
			r.logger.Warn("skipping provider in model listing", "provider", name, "error", err)
			continue
		}
		for _, m := range models {
			qualified := name + ":" + m
			if _, dup := seen[qualified]; dup {
				continue
			}
			seen[qualified] = struct{}{}
			all = append(all, qualified)
		}
	}

	return all, nil
}
