package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"
)

func TestParseConnectionString(t *testing.T) {
	tests := []struct {
		name     string
		conn     string
		wantAddr string
		wantErr  bool
	}{
		{name: "falkor scheme", conn: "falkor://localhost:6379", wantAddr: "localhost:6379"},
		{name: "redis scheme", conn: "redis://db.example.com:6380", wantAddr: "db.example.com:6380"},
		{name: "missing scheme", conn: "localhost:6379", wantErr: true},
		{name: "wrong scheme", conn: "http://localhost:6379", wantErr: true},
		{name: "missing port", conn: "falkor://localhost", wantErr: true},
		{name: "missing host", conn: "falkor://:6379", wantErr: true},
		{name: "empty address", conn: "falkor://", wantErr: true},
		{name: "empty string", conn: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ParseConnectionString(tt.conn)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got addr %q", tt.conn, addr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if addr != tt.wantAddr {
				t.Errorf("addr = %q, want %q", addr, tt.wantAddr)
			}
		})
	}
}

func TestNewClientNoDial(t *testing.T) {
	// Construction must not reach the network; an unroutable address
	// only fails once a query is attempted.
	client, err := NewClient("falkor://192.0.2.1:6379")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	if client.Addr() != "192.0.2.1:6379" {
		t.Errorf("addr = %q, want %q", client.Addr(), "192.0.2.1:6379")
	}
}

func TestExecuteCancelledContext(t *testing.T) {
	client, err := NewClient("falkor://192.0.2.1:6379")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Execute(ctx, "test", "RETURN 1")
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecutionError, got %T", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected wrapped context.Canceled, got %v", execErr.Err)
	}
}

func TestExecuteAbandonsHungServer(t *testing.T) {
	// A server that accepts and then never replies; the call must
	// return when the context expires, not when the socket does.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()

	client, err := NewClient("falkor://" + ln.Addr().String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = client.Execute(ctx, "test", "RETURN 1")
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected error against unresponsive server")
	}
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected ExecutionError, got %T: %v", err, err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected wrapped context.DeadlineExceeded, got %v", err)
	}
	if elapsed > 2*time.Second {
		t.Errorf("Execute returned after %v; abandonment should track the context", elapsed)
	}
}

func TestSchemaJSON(t *testing.T) {
	schema := &Schema{
		Labels: []LabelSchema{
			{Name: "Person", Properties: []string{"name", "age"}},
			{Name: "Movie", Properties: []string{"title"}},
		},
		Relationships: []RelationshipSchema{
			{
				Name: "ACTED_IN",
				Connections: []Connection{
					{Source: "Person", Target: "Movie"},
				},
			},
		},
	}

	out, err := schema.JSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	nodes, ok := doc["nodes"].([]any)
	if !ok {
		t.Fatal("missing top-level nodes array")
	}
	if len(nodes) != 2 {
		t.Errorf("nodes count = %d, want 2", len(nodes))
	}

	rels, ok := doc["relationships"].([]any)
	if !ok {
		t.Fatal("missing top-level relationships array")
	}
	if len(rels) != 1 {
		t.Errorf("relationships count = %d, want 1", len(rels))
	}

	first := nodes[0].(map[string]any)
	if first["label"] != "Person" {
		t.Errorf("first label = %v, want Person", first["label"])
	}
}

func TestSchemaJSONEmpty(t *testing.T) {
	schema := &Schema{}

	out, err := schema.JSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if _, ok := doc["nodes"].([]any); !ok {
		t.Error("empty schema must serialize nodes as an array")
	}
	if _, ok := doc["relationships"].([]any); !ok {
		t.Error("empty schema must serialize relationships as an array")
	}
}

func TestSchemaJSONDeterministic(t *testing.T) {
	schema := &Schema{
		Labels: []LabelSchema{
			{Name: "A", Properties: []string{"x", "y"}},
			{Name: "B", Properties: []string{"z"}},
		},
		Relationships: []RelationshipSchema{
			{Name: "REL", Connections: []Connection{{Source: "A", Target: "B"}}},
		},
	}

	first, err := schema.JSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := schema.JSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("serialization differs between calls:\n%s\n%s", first, again)
		}
	}
}

func TestSchemaPromptText(t *testing.T) {
	schema := &Schema{
		Labels: []LabelSchema{
			{Name: "Person", Properties: []string{"name", "age"}},
		},
		Relationships: []RelationshipSchema{
			{Name: "KNOWS", Connections: []Connection{{Source: "Person", Target: "Person"}}},
		},
	}

	text := schema.PromptText()
	if !strings.Contains(text, "(:Person) properties: name, age") {
		t.Errorf("prompt text missing label line:\n%s", text)
	}
	if !strings.Contains(text, "(:Person)-[:KNOWS]->(:Person)") {
		t.Errorf("prompt text missing relationship line:\n%s", text)
	}

	if schema.PromptText() != text {
		t.Error("prompt text differs between calls")
	}
}

func TestSchemaPromptTextEmpty(t *testing.T) {
	schema := &Schema{}
	text := schema.PromptText()
	if !strings.Contains(text, "(none)") {
		t.Errorf("empty schema prompt text should note absence:\n%s", text)
	}
}

type mockExecutor struct {
	results map[string]*Result
	err     error
	queries []string
}

func (m *mockExecutor) Execute(ctx context.Context, graphName, statement string) (*Result, error) {
	m.queries = append(m.queries, statement)
	if m.err != nil {
		return nil, m.err
	}
	if res, ok := m.results[statement]; ok {
		return res, nil
	}
	return &Result{Columns: []string{}, Rows: []map[string]any{}}, nil
}

func singleColumn(col string, values ...string) *Result {
	rows := make([]map[string]any, 0, len(values))
	for _, v := range values {
		rows = append(rows, map[string]any{col: v})
	}
	return &Result{Columns: []string{col}, Rows: rows}
}

func TestDiscoverEmptyGraph(t *testing.T) {
	exec := &mockExecutor{results: map[string]*Result{}}
	d := NewDiscoverer(exec)

	schema, err := d.Discover(context.Background(), "empty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(schema.Labels) != 0 {
		t.Errorf("labels = %d, want 0", len(schema.Labels))
	}
	if len(schema.Relationships) != 0 {
		t.Errorf("relationships = %d, want 0", len(schema.Relationships))
	}
}

func TestDiscoverPopulatedGraph(t *testing.T) {
	exec := &mockExecutor{
		results: map[string]*Result{
			"CALL db.labels()":            singleColumn("label", "Person", "Movie"),
			"CALL db.relationshipTypes()": singleColumn("relationshipType", "ACTED_IN"),
			fmt.Sprintf("MATCH (n:`Person`) WITH n LIMIT %d UNWIND keys(n) AS key RETURN DISTINCT key", sampleLimit): singleColumn("key", "name", "age"),
			fmt.Sprintf("MATCH (n:`Movie`) WITH n LIMIT %d UNWIND keys(n) AS key RETURN DISTINCT key", sampleLimit):  singleColumn("key", "title"),
			fmt.Sprintf("MATCH (a)-[r:`ACTED_IN`]->(b) WITH a, b LIMIT %d RETURN DISTINCT head(labels(a)) AS source, head(labels(b)) AS target", sampleLimit): {
				Columns: []string{"source", "target"},
				Rows: []map[string]any{
					{"source": "Person", "target": "Movie"},
				},
			},
		},
	}
	d := NewDiscoverer(exec)

	schema, err := d.Discover(context.Background(), "movies")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(schema.Labels) != 2 {
		t.Fatalf("labels = %d, want 2", len(schema.Labels))
	}
	if schema.Labels[0].Name != "Person" {
		t.Errorf("first label = %q, want Person", schema.Labels[0].Name)
	}
	if len(schema.Labels[0].Properties) != 2 {
		t.Errorf("Person properties = %v, want 2 entries", schema.Labels[0].Properties)
	}

	if len(schema.Relationships) != 1 {
		t.Fatalf("relationships = %d, want 1", len(schema.Relationships))
	}
	rel := schema.Relationships[0]
	if rel.Name != "ACTED_IN" {
		t.Errorf("relationship = %q, want ACTED_IN", rel.Name)
	}
	if len(rel.Connections) != 1 || rel.Connections[0].Source != "Person" || rel.Connections[0].Target != "Movie" {
		t.Errorf("connections = %+v, want Person->Movie", rel.Connections)
	}
}

func TestDiscoverQuotesIdentifiers(t *testing.T) {
	exec := &mockExecutor{
		results: map[string]*Result{
			"CALL db.labels()":            singleColumn("label", "Box Office", "Weird`Label"),
			"CALL db.relationshipTypes()": singleColumn("relationshipType", "VOTED FOR"),
		},
	}
	d := NewDiscoverer(exec)

	if _, err := d.Discover(context.Background(), "awards"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	joined := strings.Join(exec.queries, "\n")
	if !strings.Contains(joined, "MATCH (n:`Box Office`)") {
		t.Errorf("label with space not quoted:\n%s", joined)
	}
	if !strings.Contains(joined, "MATCH (n:`Weird``Label`)") {
		t.Errorf("embedded backtick not doubled:\n%s", joined)
	}
	if !strings.Contains(joined, "[r:`VOTED FOR`]") {
		t.Errorf("relationship type with space not quoted:\n%s", joined)
	}
}

func TestDiscoverQueryFailure(t *testing.T) {
	exec := &mockExecutor{err: errors.New("connection refused")}
	d := NewDiscoverer(exec)

	_, err := d.Discover(context.Background(), "broken")
	if err == nil {
		t.Fatal("expected error")
	}
	var discErr *SchemaDiscoveryError
	if !errors.As(err, &discErr) {
		t.Fatalf("expected SchemaDiscoveryError, got %T", err)
	}
	if discErr.Graph != "broken" {
		t.Errorf("graph = %q, want broken", discErr.Graph)
	}
}

func TestSchemaCache(t *testing.T) {
	cache := NewSchemaCache()

	if got := cache.Get("g"); got != nil {
		t.Errorf("expected nil for missing entry, got %+v", got)
	}

	first := &Schema{Labels: []LabelSchema{{Name: "A"}}}
	cache.Put("g", first)
	if got := cache.Get("g"); got != first {
		t.Error("expected stored snapshot pointer")
	}

	second := &Schema{Labels: []LabelSchema{{Name: "B"}}}
	cache.Put("g", second)
	if got := cache.Get("g"); got != second {
		t.Error("expected replacement snapshot")
	}

	cache.Invalidate("g")
	if got := cache.Get("g"); got != nil {
		t.Errorf("expected nil after invalidation, got %+v", got)
	}
}

func TestResultJSON(t *testing.T) {
	result := &Result{
		Columns: []string{"name"},
		Rows: []map[string]any{
			{"name": "Alice"},
			{"name": "Bob"},
		},
	}

	out, err := result.JSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("rows = %d, want 2", len(rows))
	}
}

func TestResultJSONEmpty(t *testing.T) {
	result := &Result{}

	out, err := result.JSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "[]" {
		t.Errorf("empty result = %q, want []", out)
	}
}
