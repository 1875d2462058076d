package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/leefowlercu/text-to-cypher/internal/graph"
	"github.com/leefowlercu/text-to-cypher/internal/providers"
)

// maxResultRows caps how many result rows are serialized into the
// synthesis prompt so prompt size stays bounded on large result sets.
const maxResultRows = 50

// Synthesizer turns an executed query and its rows into a
// natural-language answer via a second model invocation.
type Synthesizer struct {
	router  invoker
	builder *PromptBuilder
}

// NewSynthesizer creates a Synthesizer backed by the given router.
func NewSynthesizer(router invoker, builder *PromptBuilder) *Synthesizer {
	return &Synthesizer{router: router, builder: builder}
}

// Synthesize asks the model to answer the question from the schema,
// the executed statement, and a bounded serialization of its result
// rows.
func (s *Synthesizer) Synthesize(ctx context.Context, ref providers.ModelRef, question string, schema *graph.Schema, statement string, result *graph.Result) (string, error) {
	serialized, err := serializeRows(result, maxResultRows)
	if err != nil {
		return "", fmt.Errorf("failed to serialize result rows; %w", err)
	}

	messages := s.builder.BuildSynthesis(question, schema, statement, serialized)
	answer, err := s.router.Invoke(ctx, ref, messages)
	if err != nil {
		return "", fmt.Errorf("answer synthesis invocation failed; %w", err)
	}

	return answer, nil
}

// serializeRows renders up to limit rows as compact JSON, noting the
// omitted count when the result is larger.
func serializeRows(result *graph.Result, limit int) (string, error) {
	rows := result.Rows
	if rows == nil {
		rows = []map[string]any{}
	}

	truncated := 0
	if len(rows) > limit {
		truncated = len(rows) - limit
		rows = rows[:limit]
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}

	if truncated > 0 {
		return fmt.Sprintf("%s\n(%d additional rows omitted)", data, truncated), nil
	}
	return string(data), nil
}
