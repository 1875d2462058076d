package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/leefowlercu/text-to-cypher/internal/graph"
	"github.com/leefowlercu/text-to-cypher/internal/providers"
)

// schemaDiscoverer derives a schema from a live graph.
type schemaDiscoverer interface {
	Discover(ctx context.Context, graphName string) (*graph.Schema, error)
}

// graphExecutor runs one statement against a named graph.
type graphExecutor interface {
	Execute(ctx context.Context, graphName, statement string) (*graph.Result, error)
}

// Pipeline orchestrates the translation chain: schema discovery,
// prompt construction, query generation, validation, execution, and
// answer synthesis. Stages run strictly in order; a failed call never
// resumes partially. A Pipeline holds no per-call state and is safe
// for concurrent use; the optional schema cache is the only shared
// mutable resource.
type Pipeline struct {
	discoverer  schemaDiscoverer
	executor    graphExecutor
	router      invoker
	model       providers.ModelRef
	builder     *PromptBuilder
	generator   *Generator
	synthesizer *Synthesizer
	cache       *graph.SchemaCache
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSchemaCache enables per-graph schema caching. Cached snapshots
// are replaced whole on refresh.
func WithSchemaCache(cache *graph.SchemaCache) Option {
	return func(p *Pipeline) {
		p.cache = cache
	}
}

// WithLogger sets the logger used for stage diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a Pipeline. Construction performs no network I/O.
func New(discoverer schemaDiscoverer, executor graphExecutor, router invoker, model providers.ModelRef, opts ...Option) *Pipeline {
	p := &Pipeline{
		discoverer: discoverer,
		executor:   executor,
		router:     router,
		model:      model,
		builder:    NewPromptBuilder(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.generator = NewGenerator(router)
	p.synthesizer = NewSynthesizer(router, p.builder)

	return p
}

// Convert runs the full chain for a single question and returns the
// executed query, its rows, and a synthesized answer.
func (p *Pipeline) Convert(ctx context.Context, graphName, question string) (*Response, error) {
	if err := validateCallInput(graphName, question); err != nil {
		return nil, err
	}
	return p.run(ctx, graphName, nil, question, false), nil
}

// ConvertWithHistory runs the full chain threading prior conversation
// turns into the generation prompt. The final message carries the
// current question. Role violations fail the call itself.
func (p *Pipeline) ConvertWithHistory(ctx context.Context, graphName string, messages []providers.ChatMessage) (*Response, error) {
	if strings.TrimSpace(graphName) == "" {
		return nil, &InvalidInputError{Message: "graph name must not be empty"}
	}
	if err := ValidateMessages(messages); err != nil {
		return nil, err
	}

	history, question := splitHistory(messages)
	if strings.TrimSpace(question) == "" {
		return nil, &InvalidInputError{Message: "question must not be empty"}
	}

	return p.run(ctx, graphName, history, question, false), nil
}

// GenerateOnly runs discovery, prompt construction, and generation,
// then stops. The graph engine is never touched beyond discovery; the
// response carries only the schema and the generated query.
func (p *Pipeline) GenerateOnly(ctx context.Context, graphName, question string) (*Response, error) {
	if err := validateCallInput(graphName, question); err != nil {
		return nil, err
	}
	return p.run(ctx, graphName, nil, question, true), nil
}

// DiscoverSchema runs only the discovery stage and returns the schema
// as JSON text.
func (p *Pipeline) DiscoverSchema(ctx context.Context, graphName string) (string, error) {
	if strings.TrimSpace(graphName) == "" {
		return "", &InvalidInputError{Message: "graph name must not be empty"}
	}

	schema, err := p.discoverSchema(ctx, graphName)
	if err != nil {
		return "", err
	}
	return schema.JSON()
}

func validateCallInput(graphName, question string) error {
	if strings.TrimSpace(graphName) == "" {
		return &InvalidInputError{Message: "graph name must not be empty"}
	}
	if strings.TrimSpace(question) == "" {
		return &InvalidInputError{Message: "question must not be empty"}
	}
	return nil
}

// run drives the stage sequence. Stage failures after input
// validation become structured error responses; answer synthesis
// failure alone degrades the response without failing it.
func (p *Pipeline) run(ctx context.Context, graphName string, history []providers.ChatMessage, question string, preview bool) *Response {
	logger := p.logger.With("request_id", uuid.NewString(), "graph", graphName)
	resp := successResponse()

	schema, err := p.discoverSchema(ctx, graphName)
	if err != nil {
		logger.Error("schema discovery failed", "error", err)
		return errorResponse(resp, err)
	}

	schemaJSON, err := schema.JSON()
	if err != nil {
		return errorResponse(resp, err)
	}
	resp.Schema = stringPtr(schemaJSON)

	messages := p.builder.BuildGeneration(schema, history, question)

	generated, err := p.generator.Generate(ctx, p.model, messages)
	if err != nil {
		logger.Error("query generation failed", "error", err)
		return errorResponse(resp, err)
	}
	resp.CypherQuery = stringPtr(generated.ExtractedStatement)

	logger.Debug("query generated", "statement", generated.ExtractedStatement)

	if preview {
		return resp
	}

	if err := ValidateStatement(generated.ExtractedStatement); err != nil {
		logger.Error("query validation failed", "error", err)
		return errorResponse(resp, err)
	}

	result, err := p.executor.Execute(ctx, graphName, generated.ExtractedStatement)
	if err != nil {
		logger.Error("query execution failed", "error", err)
		return errorResponse(resp, err)
	}

	resultJSON, err := result.JSON()
	if err != nil {
		return errorResponse(resp, err)
	}
	resp.CypherResult = stringPtr(resultJSON)

	logger.Debug("query executed", "rows", len(result.Rows))

	answer, err := p.synthesizer.Synthesize(ctx, p.model, question, schema, generated.ExtractedStatement, result)
	if err != nil {
		logger.Warn("answer synthesis failed; returning results without answer", "error", err)
		return resp
	}
	resp.Answer = stringPtr(answer)

	return resp
}

// discoverSchema consults the cache before hitting the graph and
// stores fresh snapshots whole.
func (p *Pipeline) discoverSchema(ctx context.Context, graphName string) (*graph.Schema, error) {
	if p.cache != nil {
		if cached := p.cache.Get(graphName); cached != nil {
			return cached, nil
		}
	}

	schema, err := p.discoverer.Discover(ctx, graphName)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		p.cache.Put(graphName, schema)
	}
	return schema, nil
}
