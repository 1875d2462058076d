package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/leefowlercu/text-to-cypher/internal/providers"
)

func TestExtractStatement(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantOK  bool
	}{
		{
			name:   "bare statement",
			raw:    "MATCH (n) RETURN n",
			want:   "MATCH (n) RETURN n",
			wantOK: true,
		},
		{
			name:   "fenced with language tag",
			raw:    "```cypher\nMATCH (a:Actor) RETURN a.name\n```",
			want:   "MATCH (a:Actor) RETURN a.name",
			wantOK: true,
		},
		{
			name:   "fenced without language tag",
			raw:    "```\nMATCH (n) RETURN n\n```",
			want:   "MATCH (n) RETURN n",
			wantOK: true,
		},
		{
			name:   "leading commentary",
			raw:    "Here is the query you asked for:\n\nMATCH (n) RETURN n",
			want:   "MATCH (n) RETURN n",
			wantOK: true,
		},
		{
			name:   "multiple statements takes first",
			raw:    "MATCH (n) RETURN n;\nMATCH (m) DELETE m;",
			want:   "MATCH (n) RETURN n",
			wantOK: true,
		},
		{
			name:   "semicolon inside string literal",
			raw:    "MATCH (p {name: 'a;b'}) RETURN p",
			want:   "MATCH (p {name: 'a;b'}) RETURN p",
			wantOK: true,
		},
		{
			name:   "quoted semicolon then real terminator",
			raw:    `MATCH (p) WHERE p.note = "end;" RETURN p; MATCH (q) RETURN q`,
			want:   `MATCH (p) WHERE p.note = "end;" RETURN p`,
			wantOK: true,
		},
		{
			name:   "multiline statement",
			raw:    "MATCH (a:Actor)-[:ACTED_IN]->(m:Movie)\nWHERE m.year > 2000\nRETURN a.name",
			want:   "MATCH (a:Actor)-[:ACTED_IN]->(m:Movie)\nWHERE m.year > 2000\nRETURN a.name",
			wantOK: true,
		},
		{
			name:   "lowercase clause",
			raw:    "match (n) return n",
			want:   "match (n) return n",
			wantOK: true,
		},
		{
			name:   "prose only",
			raw:    "I cannot answer that question from the schema.",
			wantOK: false,
		},
		{
			name:   "empty response",
			raw:    "",
			wantOK: false,
		},
		{
			name:   "fenced prose",
			raw:    "```\nno query here\n```",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractStatement(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (got %q)", ok, tt.wantOK, got)
			}
			if ok && got != tt.want {
				t.Errorf("statement = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateSingleInvocation(t *testing.T) {
	router := &mockRouter{responses: []string{"MATCH (n) RETURN n"}}
	g := NewGenerator(router)
	ref := providers.ModelRef{Provider: providers.ProviderOpenAI, Model: "gpt-4o-mini"}

	query, err := g.Generate(context.Background(), ref, []providers.ChatMessage{
		{Role: providers.RoleUser, Content: "show everything"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if query.RawModelText != "MATCH (n) RETURN n" {
		t.Errorf("raw = %q", query.RawModelText)
	}
	if query.ExtractedStatement != "MATCH (n) RETURN n" {
		t.Errorf("statement = %q", query.ExtractedStatement)
	}
	if len(router.calls) != 1 {
		t.Errorf("invocations = %d, want 1", len(router.calls))
	}
}

func TestGenerateInvocationFailure(t *testing.T) {
	router := &mockRouter{errs: []error{errors.New("timeout")}}
	g := NewGenerator(router)
	ref := providers.ModelRef{Provider: providers.ProviderOpenAI, Model: "gpt-4o-mini"}

	_, err := g.Generate(context.Background(), ref, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %T", err)
	}
}

func TestGenerateUnextractable(t *testing.T) {
	router := &mockRouter{responses: []string{"Sorry, I don't know."}}
	g := NewGenerator(router)
	ref := providers.ModelRef{Provider: providers.ProviderOpenAI, Model: "gpt-4o-mini"}

	_, err := g.Generate(context.Background(), ref, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %T", err)
	}
}
