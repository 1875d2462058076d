// Package client exposes the public surface of the text-to-cypher
// pipeline: question conversion, schema discovery, and model listing
// behind one constructed handle.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/leefowlercu/text-to-cypher/internal/graph"
	"github.com/leefowlercu/text-to-cypher/internal/pipeline"
	"github.com/leefowlercu/text-to-cypher/internal/providers"
	"github.com/leefowlercu/text-to-cypher/internal/providers/chat"
)

const defaultTimeout = 30 * time.Second

// Options carries the required client configuration. All three fields
// must be set; construction fails fast on absence rather than
// deferring the error to the first call.
type Options struct {
	// Model selects the model used for generation and synthesis,
	// either bare (default provider) or provider-qualified.
	Model string

	// APIKey authenticates against the selected model's provider.
	APIKey string

	// FalkorDBConnection is the graph endpoint, scheme://host:port.
	FalkorDBConnection string
}

// Client is a reusable handle over the pipeline. Construction binds
// credentials and connection targets but performs no network I/O;
// one Client is safe for concurrent use across goroutines.
type Client struct {
	model    providers.ModelRef
	router   *providers.Router
	pipeline *pipeline.Pipeline
	graph    *graph.Client
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures optional client behavior.
type Option func(*clientConfig)

type clientConfig struct {
	logger        *slog.Logger
	catalog       *providers.Catalog
	timeout       time.Duration
	schemaCache   bool
	graphPassword string
	ollamaURL     string
}

// WithLogger sets the logger used by all components.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithCatalog overrides the static model catalog.
func WithCatalog(catalog providers.Catalog) Option {
	return func(c *clientConfig) {
		c.catalog = &catalog
	}
}

// WithTimeout bounds each network-backed operation. Zero keeps the
// default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithSchemaCache enables per-graph schema caching across calls.
func WithSchemaCache() Option {
	return func(c *clientConfig) {
		c.schemaCache = true
	}
}

// WithGraphPassword sets the AUTH password for the graph connection.
func WithGraphPassword(password string) Option {
	return func(c *clientConfig) {
		c.graphPassword = password
	}
}

// WithOllamaURL overrides the local Ollama endpoint.
func WithOllamaURL(url string) Option {
	return func(c *clientConfig) {
		c.ollamaURL = url
	}
}

// New validates the options, parses the model identifier and
// connection string, and wires the provider set, router, and pipeline.
// No network connection is dialed until the first operation.
func New(opts Options, options ...Option) (*Client, error) {
	if strings.TrimSpace(opts.Model) == "" {
		return nil, fmt.Errorf("model is required")
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(opts.FalkorDBConnection) == "" {
		return nil, fmt.Errorf("falkordb connection is required")
	}

	cfg := &clientConfig{
		logger:  slog.Default(),
		timeout: defaultTimeout,
	}
	for _, opt := range options {
		opt(cfg)
	}

	model, err := providers.ParseModelRef(opts.Model)
	if err != nil {
		return nil, err
	}

	catalog := providers.DefaultCatalog()
	if cfg.catalog != nil {
		catalog = *cfg.catalog
	}

	ollamaOpts := []chat.OllamaOption{}
	if cfg.ollamaURL != "" {
		ollamaOpts = append(ollamaOpts, chat.WithOllamaURL(cfg.ollamaURL))
	}

	router := providers.NewRouter([]providers.ChatProvider{
		chat.NewOpenAIProvider(catalog, chat.WithOpenAIAPIKey(opts.APIKey)),
		chat.NewAnthropicProvider(catalog, chat.WithAnthropicAPIKey(opts.APIKey)),
		chat.NewGeminiProvider(chat.WithGeminiAPIKey(opts.APIKey)),
		chat.NewOllamaProvider(ollamaOpts...),
	}, providers.WithLogger(cfg.logger))

	// Construction must surface an unknown provider prefix now, not on
	// the first invocation.
	if _, err := router.Provider(model.Provider); err != nil {
		return nil, err
	}

	graphOpts := []graph.ClientOption{graph.WithClientLogger(cfg.logger)}
	if cfg.graphPassword != "" {
		graphOpts = append(graphOpts, graph.WithPassword(cfg.graphPassword))
	}
	graphClient, err := graph.NewClient(opts.FalkorDBConnection, graphOpts...)
	if err != nil {
		return nil, err
	}

	discoverer := graph.NewDiscoverer(graphClient, graph.WithDiscovererLogger(cfg.logger))

	pipeOpts := []pipeline.Option{pipeline.WithLogger(cfg.logger)}
	if cfg.schemaCache {
		pipeOpts = append(pipeOpts, pipeline.WithSchemaCache(graph.NewSchemaCache()))
	}

	return &Client{
		model:    model,
		router:   router,
		pipeline: pipeline.New(discoverer, graphClient, router, model, pipeOpts...),
		graph:    graphClient,
		timeout:  cfg.timeout,
		logger:   cfg.logger,
	}, nil
}

// Close releases the graph connection pool.
func (c *Client) Close() error {
	return c.graph.Close()
}

// Model returns the parsed model reference the client invokes.
func (c *Client) Model() providers.ModelRef {
	return c.model
}

// ConvertAndExecute translates a question into a Cypher statement,
// executes it against the named graph, and synthesizes an answer.
func (c *Client) ConvertAndExecute(ctx context.Context, graphName, question string) (*pipeline.Response, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	return c.pipeline.Convert(ctx, graphName, question)
}

// ConvertWithHistory is ConvertAndExecute with prior conversation
// turns threaded into the generation prompt.
func (c *Client) ConvertWithHistory(ctx context.Context, graphName string, messages []providers.ChatMessage) (*pipeline.Response, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	return c.pipeline.ConvertWithHistory(ctx, graphName, messages)
}

// GenerateOnly translates a question without executing the result.
func (c *Client) GenerateOnly(ctx context.Context, graphName, question string) (*pipeline.Response, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	return c.pipeline.GenerateOnly(ctx, graphName, question)
}

// DiscoverSchema returns the named graph's schema as JSON text.
func (c *Client) DiscoverSchema(ctx context.Context, graphName string) (string, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	return c.pipeline.DiscoverSchema(ctx, graphName)
}

// ListModels returns the de-duplicated, order-stable union of every
// provider's model list, each entry provider-qualified.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	return c.router.ListAll(ctx)
}

// ListModelsByProvider returns one provider's model list. The name is
// matched case-insensitively; unknown names fail with
// UnknownProviderError.
func (c *Client) ListModelsByProvider(ctx context.Context, provider string) ([]string, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()
	return c.router.ListByProvider(ctx, provider)
}

func (c *Client) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}
